// Package app bundles the emulator's shared dependencies for handler
// factories.
package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/pulselabs/pulse-go/config"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
}
