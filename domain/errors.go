package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeInvalidValue      ErrorCode = "INVALID_VALUE"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"
	ErrCodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	ErrCodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	ErrCodeSoldOut           ErrorCode = "SOLD_OUT"
	ErrCodeCustomerNotFound  ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodePartnerNotFound   ErrorCode = "PARTNER_NOT_FOUND"
	ErrCodeEventNotFound     ErrorCode = "EVENT_NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal          ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// newInvalidValue reports a field-level validation failure.
func newInvalidValue(field string) *Error {
	return NewError(ErrCodeInvalidValue, "Invalid value for "+field)
}

// Common domain errors. The message strings are part of the API contract.
var (
	ErrCustomerNotFound  = NewError(ErrCodeCustomerNotFound, "Customer not found")
	ErrPartnerNotFound   = NewError(ErrCodePartnerNotFound, "Partner not found")
	ErrEventNotFound     = NewError(ErrCodeEventNotFound, "Event not found")
	ErrCustomerExists    = NewError(ErrCodeAlreadyExists, "Customer already exists")
	ErrPartnerExists     = NewError(ErrCodeAlreadyExists, "Partner already exists")
	ErrEventSoldOut      = NewError(ErrCodeSoldOut, "Event sold out")
	// ErrAlreadyRegistered keeps the historical "Email" wording even though the
	// uniqueness check is customer-id based.
	ErrAlreadyRegistered = NewError(ErrCodeAlreadyRegistered, "Email already registered")
	ErrInvalidEventDate  = NewError(ErrCodeInvalidDate, "Invalid date for Event")
	ErrUnauthorized      = NewError(ErrCodeUnauthorized, "unauthorized")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
