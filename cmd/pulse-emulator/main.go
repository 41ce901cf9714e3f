// pulse-emulator is a local stand-in for the hosted survey backend. It
// speaks the same wire contract the SDK does, keeps surveys in a SQLite
// file, and exposes an admin API to manage them.
package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/pulselabs/pulse-go/app"
	"github.com/pulselabs/pulse-go/config"
	"github.com/pulselabs/pulse-go/database"
	"github.com/pulselabs/pulse-go/httpx"
	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	bearerServer := httpx.NewBearerServer(db, cfg)

	app := app.App{
		DB:           db,
		BearerServer: bearerServer,
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
