// Package errx carries the internal error taxonomy used across the agent
// core. Every error that crosses a component boundary is wrapped into a
// *Error with a Kind so callers can branch on it without inspecting driver
// errors (redis.Nil, gorm.ErrRecordNotFound, context.DeadlineExceeded, ...).
package errx

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Kind is the internal error taxonomy, independent of any surface representation.
type Kind string

const (
	InvalidSession       Kind = "INVALID_SESSION"
	UnsupportedLanguage  Kind = "UNSUPPORTED_LANGUAGE"
	InvalidLocation      Kind = "INVALID_LOCATION"
	MemoryUnavailable    Kind = "MEMORY_UNAVAILABLE"
	ClassificationFailed Kind = "CLASSIFICATION_FAILED"
	ModelError           Kind = "MODEL_ERROR"
	ToolError            Kind = "TOOL_ERROR"
	Timeout              Kind = "TIMEOUT"
	Cancelled            Kind = "CANCELLED"
	Overloaded           Kind = "OVERLOADED"
	PersistenceFailed    Kind = "PERSISTENCE_FAILED"
)

// Error is the single typed error value carried across component boundaries.
type Error struct {
	K       Kind
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.K, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.K, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Kind reports the taxonomy label, satisfying the component-boundary contract.
func (e *Error) Kind() Kind { return e.K }

// Is lets errors.Is match on the taxonomy kind as well as the wrapped cause.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.K == e.K
	}
	return errors.Is(e.Err, target)
}

// New builds an Error of the given kind with a safe, user-facing message.
func New(kind Kind, message string, cause error) *Error {
	return &Error{K: kind, Err: cause, Message: message}
}

// Wrap classifies a lower-level cause into the nearest taxonomy kind. It
// recognises context cancellation/deadlines; anything else falls back to
// the supplied default kind so callers never have to special-case driver
// errors themselves.
func Wrap(cause error, fallback Kind, message string) *Error {
	if cause == nil {
		return nil
	}
	var existing *Error
	if errors.As(cause, &existing) {
		return existing
	}
	switch {
	case errors.Is(cause, context.Canceled):
		return New(Cancelled, "request cancelled", cause)
	case errors.Is(cause, context.DeadlineExceeded):
		return New(Timeout, "deadline exceeded", cause)
	default:
		return New(fallback, message, cause)
	}
}

// WrapRedis classifies a cache-layer error. Callers are expected to treat a
// plain miss (redis.Nil) as "no value" before reaching this function, so
// anything that arrives here is a genuine transport/backend failure.
func WrapRedis(cause error) *Error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, redis.Nil) {
		return New(PersistenceFailed, "cache key not found", cause)
	}
	return Wrap(cause, PersistenceFailed, "cache operation failed")
}

// KindOf extracts the taxonomy kind from any error, defaulting to ModelError
// for an untyped error so callers always have a label to record on metrics.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.K
	}
	return ModelError
}

// WrapStore classifies a durable-store error raised by the postgres adapters.
func WrapStore(cause error) *Error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return New(PersistenceFailed, "record not found", cause)
	}
	return Wrap(cause, PersistenceFailed, "durable store operation failed")
}
