package model

import (
	"errors"
	"fmt"
)

// NotFoundError reports an entity lookup miss. Controllers translate it to a
// 404 response.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprintf("%v", id)}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError reports malformed or missing input. Controllers translate
// it to a 422 response.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NetworkFailureError reports that the weather provider stayed unreachable
// after the retry budget was exhausted. Controllers translate it to a 503.
type NetworkFailureError struct {
	Attempts int
	Err      error
}

func NewNetworkFailureError(attempts int, err error) *NetworkFailureError {
	return &NetworkFailureError{Attempts: attempts, Err: err}
}

func (e *NetworkFailureError) Error() string {
	return fmt.Sprintf("weather provider unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *NetworkFailureError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports that the provider answered with an
// unexpected shape. Distinct from a network failure: the provider was
// reachable but the payload is unusable.
type MalformedResponseError struct {
	Missing string
}

func NewMalformedResponseError(missing string) *MalformedResponseError {
	return &MalformedResponseError{Missing: missing}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: missing %q", e.Missing)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsProviderFailure reports whether err is a weather provider failure of
// either kind (network or malformed response).
func IsProviderFailure(err error) bool {
	var network *NetworkFailureError
	var malformed *MalformedResponseError
	return errors.As(err, &network) || errors.As(err, &malformed)
}
