package helpers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body for 400 responses on the events API.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body for 500 responses on the events list API.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse is the body for unexpected failures on event creation.
// swagger:model FailureResponse
type FailureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {message} body with the given status.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}
