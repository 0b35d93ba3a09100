package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no upstream knows the requested entity.
	ErrNotFound = errors.New("entity not found")

	// ErrUpstreamUnavailable covers network failures, non-2xx answers and undecodable bodies.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCapabilityUnsupported is returned when an upstream does not offer an operation at all.
	ErrCapabilityUnsupported = errors.New("operation not supported by upstream")
)

// NotFoundError names the resource that could not be resolved.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError describes a failed call to one upstream.
type UpstreamError struct {
	Upstream   string
	Operation  string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Upstream, e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Upstream, e.Operation, e.Err)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(upstream, operation string, statusCode int, err error) error {
	return &UpstreamError{Upstream: upstream, Operation: operation, StatusCode: statusCode, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpstreamUnavailable checks if an error is an upstream failure.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}
