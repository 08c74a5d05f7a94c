// Package apperr defines the error kinds the API distinguishes and maps them
// to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is a missing or malformed request parameter.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError is returned when a mutation or lookup target does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// TransientConnectivityError marks a network-level failure that may succeed on retry.
type TransientConnectivityError struct {
	Err error
}

func (e *TransientConnectivityError) Error() string {
	return fmt.Sprintf("transient connectivity failure: %v", e.Err)
}
func (e *TransientConnectivityError) Unwrap() error { return e.Err }

// StoreUnavailableError is the terminal form of a transient failure once retries are exhausted.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return "Database connection failed after multiple attempts. Please check your internet connection."
}
func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// StoreError is any other backing-store failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}
func (e *StoreError) Unwrap() error { return e.Err }

// DisabledError is a feature that is switched off by configuration.
type DisabledError struct {
	Feature string
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// StatusCode maps an error to the HTTP status the API responds with.
func StatusCode(err error) int {
	var (
		validation  *ValidationError
		notFound    *NotFoundError
		unavailable *StoreUnavailableError
		disabled    *DisabledError
		store       *StoreError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusInternalServerError
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &store):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that is safe to put in a response body.
// Unclassified errors collapse to a generic message.
func PublicMessage(err error) string {
	var (
		validation  *ValidationError
		notFound    *NotFoundError
		unavailable *StoreUnavailableError
		disabled    *DisabledError
		store       *StoreError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Error()
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &unavailable):
		return unavailable.Error()
	case errors.As(err, &disabled):
		return disabled.Error()
	case errors.As(err, &store):
		return store.Error()
	default:
		return "Internal server error"
	}
}
