// Package httpapi exposes the services over a JSON HTTP interface.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"task-manager/internal/service"
)

// envelope is the body of every response.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, body envelope) {
	if body.Errors == nil {
		body.Errors = []string{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("cannot encode response", "error", err)
	}
}

// writeResult renders res, using status on success and the kind's status otherwise.
func writeResult[T any](log *slog.Logger, w http.ResponseWriter, status int, res service.Result[T]) {
	if !res.Success {
		writeJSON(log, w, statusFor(res.Kind), envelope{Message: res.Message, Errors: res.Errors})
		return
	}
	writeJSON(log, w, status, envelope{Success: true, Data: res.Data, Message: res.Message, Errors: res.Errors})
}

func writeError(log *slog.Logger, w http.ResponseWriter, status int, message string, errs ...string) {
	writeJSON(log, w, status, envelope{Message: message, Errors: errs})
}
