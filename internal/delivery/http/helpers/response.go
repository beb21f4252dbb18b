package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object returned in failure response bodies.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body for all failure responses.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes data as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an ErrorResponse with the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: APIError{Code: code, Message: message}})
}
