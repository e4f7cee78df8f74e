package response

import (
	"encoding/json"
	"net/http"

	"eduportal/errors"
	"eduportal/logger"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse sends a success response with given status code, message, and data
func SuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	response := StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	SendJSON(w, statusCode, response)
}

// ErrorResponse sends an error response with given status code and error message
func ErrorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	response := StandardResponse{
		Status: "error",
		Error:  errorMsg,
	}
	SendJSON(w, statusCode, response)
}

// Error maps a service error to its HTTP status and sends it. Internal and
// upstream failures hide their detail behind a generic message.
func Error(w http.ResponseWriter, err error) {
	kind := errors.KindOf(err)
	status := StatusFromKind(kind)

	msg := err.Error()
	var appErr *errors.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
		msg = "internal server error"
	}
	ErrorResponse(w, status, msg)
}

// StatusFromKind maps error kinds to HTTP status codes.
func StatusFromKind(kind errors.Kind) int {
	switch kind {
	case errors.NotFound:
		return http.StatusNotFound
	case errors.Invalid, errors.Conflict:
		return http.StatusBadRequest
	case errors.Unauthorized:
		return http.StatusUnauthorized
	case errors.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}
