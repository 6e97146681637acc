// internal/app/features/errors/errors.go

// Package errors renders the JSON error envelope used by every handler.
// Import it as apierrors to avoid shadowing the standard library.
//
// The envelope is {"error": "..."} with an optional "fields" map for
// validation failures. Handlers never write ad-hoc error bodies.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the wire form of every error response.
type envelope struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RenderError writes a plain error envelope with the given status.
func RenderError(w http.ResponseWriter, status int, msg string) {
	write(w, status, envelope{Error: msg})
}

// RenderNotFound writes a 404 envelope.
func RenderNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	write(w, http.StatusNotFound, envelope{Error: msg})
}

// RenderUnauthorized writes a 401 envelope.
func RenderUnauthorized(w http.ResponseWriter) {
	write(w, http.StatusUnauthorized, envelope{Error: "authentication required"})
}

// RenderForbidden writes a 403 envelope with a message.
func RenderForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "forbidden"
	}
	write(w, http.StatusForbidden, envelope{Error: msg})
}

// RenderConflict writes a 409 envelope. Used for duplicate email and
// state conflicts like reactivating a lapsed subscription.
func RenderConflict(w http.ResponseWriter, msg string) {
	write(w, http.StatusConflict, envelope{Error: msg})
}

// RenderValidation writes a 422 envelope with per-field messages.
func RenderValidation(w http.ResponseWriter, fields map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Error:  "validation failed",
		Fields: fields,
	})
}

// RenderBadRequest writes a 400 envelope. Used for malformed JSON bodies
// and unparseable identifiers.
func RenderBadRequest(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "bad request"
	}
	write(w, http.StatusBadRequest, envelope{Error: msg})
}

// RenderInternal logs the underlying error and writes an opaque 500
// envelope. The cause never reaches the client.
func RenderInternal(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	if log != nil {
		log.Error("internal error",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	write(w, http.StatusInternalServerError, envelope{Error: "internal error"})
}
