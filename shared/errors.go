package shared

import (
	"errors"
	"net/http"
)

// AppError is the error shape handlers return; the central fiber error
// handler maps it onto the response envelope.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(err error, message string) *AppError {
	if message == "" {
		message = "Bad Request"
	}
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Err: err}
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewConflictError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// GetAppError unwraps err into an *AppError when one is present in the
// chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
