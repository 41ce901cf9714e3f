// Package routes exposes the emulator's HTTP surface: the SDK wire contract
// on the root, survey management under /admin.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pulselabs/pulse-go/app"
	"github.com/pulselabs/pulse-go/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	// SDK-facing API, bearer API key required
	root.Group(func(r chi.Router) {
		r.Use(middlewares.APIKey(app.APIKey))

		r.Post("/triggers-check", CheckTrigger(app))
		r.Post("/responses", SubmitResponse(app))
		r.Post("/ping", Ping(app))
	})

	// management API
	root.Route("/admin", func(r chi.Router) {
		r.Post("/login", Login(app))
		r.Post("/refresh", Refresh(app))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Admin(app.TokenSecret))

			r.Post("/surveys", CreateSurvey(app))
			r.Get("/surveys", ListSurveys(app))
			r.Get("/surveys/{trigger}", GetSurveyByTrigger(app))
			r.Put("/surveys/{trigger}", UpdateSurvey(app))
			r.Delete("/surveys/{trigger}", DeleteSurvey(app))

			r.Get("/surveys/{trigger}/responses", GetSurveyResponses(app))
		})
	})

	return root
}
