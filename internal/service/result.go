package service

import (
	"log/slog"
	"time"
)

// ErrorKind classifies a failed Result so the transport can pick a status code.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Result is the envelope every service method returns.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Errors  []string
	Kind    ErrorKind
}

func ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message, Errors: []string{}}
}

func fail[T any](kind ErrorKind, message string, errs ...string) Result[T] {
	if errs == nil {
		errs = []string{}
	}
	return Result[T]{Message: message, Errors: errs, Kind: kind}
}

// internalError logs the unexpected failure and hides its details from the caller.
func internalError[T any](log *slog.Logger, message string, err error, attrs ...any) Result[T] {
	log.Error(message, append(attrs, "error", err)...)
	return fail[T](KindInternal, message, "internal error")
}

// Option configures the shared collaborators of a service.
type Option func(*base)

// WithClock replaces the time source; the returned time is converted to UTC.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(b *base) { b.log = log }
}

type base struct {
	log *slog.Logger
	now func() time.Time
}

func newBase(opts []Option) base {
	b := base{log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) utcNow() time.Time {
	return b.now().UTC()
}
