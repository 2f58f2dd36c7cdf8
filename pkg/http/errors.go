package http

import (
	"fmt"
	"net/http"
)

// Error codes carried by AppError.
const (
	CodeBadRequest          = "ERR_BAD_REQUEST"
	CodeUnprocessableEntity = "ERR_UNPROCESSABLE_ENTITY"
	CodeInternal            = "ERR_INTERNAL"
	CodeBadGateway          = "ERR_BAD_GATEWAY"
)

// AppError is a failure with an HTTP status and a stable code. Err is kept
// for logs and never serialised.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// WithError attaches the cause.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// WithField names the request field at fault.
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

func BadRequestError(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

func BadRequestErrorf(format string, a ...interface{}) *AppError {
	return BadRequestError(fmt.Sprintf(format, a...))
}

// UnprocessableEntityError is for well-formed input the engine cannot resolve.
func UnprocessableEntityError(message string) *AppError {
	return &AppError{Code: CodeUnprocessableEntity, Message: message, Status: http.StatusUnprocessableEntity}
}

func InternalError(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError}
}

// BadGatewayError is for upstream (ephemeris) failures.
func BadGatewayError(message string) *AppError {
	return &AppError{Code: CodeBadGateway, Message: message, Status: http.StatusBadGateway}
}
