package models

import "net/http"

// AppError is a structured application error with HTTP status code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

// Error constructors.
var (
	ErrNotFound = func(msg string) *AppError {
		return &AppError{Code: "NOT_FOUND", Message: msg, Status: http.StatusNotFound}
	}
	ErrBadRequest = func(msg string) *AppError {
		return &AppError{Code: "BAD_REQUEST", Message: msg, Status: http.StatusBadRequest}
	}
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "authentication required", Status: http.StatusUnauthorized}
	ErrInternal     = func(msg string) *AppError {
		return &AppError{Code: "INTERNAL", Message: msg, Status: http.StatusInternalServerError}
	}
	ErrUpstream = func(msg string) *AppError {
		return &AppError{Code: "UPSTREAM", Message: msg, Status: http.StatusBadGateway}
	}
	ErrTooManyRequests = func(msg string) *AppError {
		return &AppError{Code: "COOLDOWN", Message: msg, Status: http.StatusTooManyRequests}
	}
	ErrNotConnected = &AppError{Code: "NOT_CONNECTED", Message: "not connected to PC", Status: http.StatusServiceUnavailable}
)

// ErrConflict is returned when an operation is already running.
var ErrConflict = func(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: http.StatusConflict}
}
