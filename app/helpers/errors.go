package helpers

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a failure the client is allowed to see. Status is the HTTP code
// and Message is already in Persian.
type AppError struct {
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Message: message}
}

// AsAppError unwraps err into an *AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status err would be answered with.
func StatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

const (
	MsgInternal       = "خطای داخلی سرور"
	MsgInvalidBody    = "بدنه درخواست معتبر نیست"
	MsgUnauthorized   = "ابتدا وارد حساب کاربری شوید"
	MsgForbidden      = "دسترسی غیرمجاز"
	MsgTooManyRequest = "تعداد درخواست‌ها بیش از حد مجاز است، کمی بعد دوباره تلاش کنید"
)
