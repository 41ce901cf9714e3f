package routes

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pulselabs/pulse-go/app"
	"github.com/pulselabs/pulse-go/httpx"
	"github.com/pulselabs/pulse-go/log"
)

// Login trades basic auth for a bearer token, so the admin API works from
// curl without OAuth ceremony. The credentials are forwarded to the bearer
// server as a password grant.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.Status(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		grant(app, w, url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		})
	}
}

// Refresh trades an "Authorization: Refresh <token>" header for a fresh
// token pair.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "refresh") || token == "" {
			httpx.Status(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}

		grant(app, w, url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		})
	}
}

// grant runs a synthetic form-encoded request through the bearer server's
// token endpoint, which writes the token response (or its own error) to w.
func grant(app app.App, w http.ResponseWriter, form url.Values) {
	body := form.Encode()
	req, err := http.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	if err != nil {
		httpx.Internal(w, "auth.grant_request", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))

	app.UserCredentials(w, req)
}
