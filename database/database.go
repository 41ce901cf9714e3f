package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pulselabs/pulse-go/config"
	"golang.org/x/crypto/bcrypt"
)

func Open(cfg config.Config) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", cfg.DBUrl)
	if err != nil {
		return
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return
	}

	// db tuning options
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	err = applyMigrations(db)
	if err != nil {
		db.Close()
		return
	}

	err = upsertAdmin(db, cfg.AdminPassword)
	if err != nil {
		db.Close()
		return
	}

	return
}

// upsertAdmin keeps the single admin user in sync with the configured
// password, so restarting the emulator with a new -admin-password just
// works.
func upsertAdmin(db *sql.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO user (username, password_hash) VALUES ('admin', ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`,
		hash,
	)
	return err
}
