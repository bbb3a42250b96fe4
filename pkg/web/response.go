// Package web defines common components for a web application.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	Path        string            `json:"path"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// NewError builds an error body for the given status and message.
func NewError(status int, message, path string) ErrorResponse {
	reason := "Bad request"
	if status >= http.StatusInternalServerError {
		reason = "Server error"
	}

	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     reason,
		Message:   message,
		Path:      path,
	}
}

// NewValidationError builds a 400 body carrying per field messages.
func NewValidationError(ve validator.ValidationErrors, path string) ErrorResponse {
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = GetErrorMsg(fe)
	}

	res := NewError(http.StatusBadRequest, "validation failed for the request body", path)
	res.FieldErrors = fields

	return res
}

// GetErrorMsg translates a validator field error into a short message.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "accountcategory":
		return "must be SAVINGS or CHECKING"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
