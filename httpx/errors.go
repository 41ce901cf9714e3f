// Package httpx holds the emulator's HTTP plumbing: error responders that
// always leave a log trace, and the admin credentials verifier.
package httpx

import (
	"fmt"
	"net/http"

	"github.com/pulselabs/pulse-go/log"
)

// Internal answers 500 with the generic status text and logs the underlying
// error under a dotted code. The error itself never reaches the client.
func Internal(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// NotFound answers 404 and records which id missed, at debug level.
func NotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// Status answers with the given status and its default text, logging only
// the dotted code.
func Status(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// Statusf is Status with a formatted message that is sent to the client as
// the response body, for validation feedback.
func Statusf(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	detail := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", detail)
	http.Error(w, detail, status)
}
