package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape for every JSON endpoint: a
// success flag, the payload or an error, and the correlation id so a
// client can quote it when reporting a problem.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error carries a machine-readable code next to the human message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON marshals the envelope before touching the ResponseWriter so
// an encoding failure never leaks a half-written success body.
func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("encode response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("write response", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message},
		RequestID: requestID,
	})
}
