// Package response defines the JSON envelope every endpoint answers with.
// Failures carry a business code next to the HTTP status, for example
// LOGIN_FAILED, DUPLICATE_USERNAME, NO_ACCOUNTS or TRANSACTION_NOT_FOUND;
// clients branch on that code, not on the message text.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the body of every reply. Data is set on success, Error on failure.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failure. Details stays empty for internal errors.
type ErrorInfo struct {
	Code    string `json:"code"`    // e.g. "LOGIN_FAILED"
	Details string `json:"details"` // Detailed error description
}

// Success writes a successful reply; an empty message becomes "Success".
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure reply.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BindingError answers 400 for a body that could not be decoded.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// NotFound answers 404, used for empty account and transaction lists.
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, "")
}
