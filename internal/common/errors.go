package common

import "net/http"

// AppError is a domain error that knows how it renders over HTTP.
// Services return them as sentinel values; handlers unwrap them with
// errors.As and pass Code and Message straight to JSONError.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NotFound builds an AppError rendering as 404.
func NotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

// Conflict builds an AppError rendering as 409.
func Conflict(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}
