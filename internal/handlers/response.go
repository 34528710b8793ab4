package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response. The body is encoded before the status
// line goes out so an encoding failure can still become a 500.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to encode JSON response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Debug("failed to write response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, logger)
}
