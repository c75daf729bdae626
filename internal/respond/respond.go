// Package respond writes the response envelope shared by every endpoint.
// Clients branch on the success flag; status codes are also set correctly.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"farmacore/internal/apperr"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(env)
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string, details any) {
	JSON(w, status, Envelope{Success: false, Message: message, Details: details})
}

// Err maps a typed error to its status and message. Anything untyped is a
// generic 500; the detail goes to the log, never to the client.
func Err(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		Fail(w, ae.Status, ae.Message, ae.Details)
		return
	}
	lg.Errorw("unexpected error", "error", err)
	Fail(w, http.StatusInternalServerError, "something went wrong", nil)
}
