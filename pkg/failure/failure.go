// Package failure carries typed application errors across layer
// boundaries so the HTTP edge can map them to status codes without
// inspecting error strings.
package failure

import (
	"errors"
	"fmt"
)

type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

type kind int

const (
	kindInternal kind = iota
	kindInvalidArgument
	kindNotFound
)

type Error struct {
	kind        kind
	code        ErrorCode
	message     string
	description string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}

	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

type Option func(*Error)

func WithCode(code ErrorCode) Option {
	return func(e *Error) {
		e.code = code
	}
}

func WithDescription(description string) Option {
	return func(e *Error) {
		e.description = description
	}
}

func WithCause(err error) Option {
	return func(e *Error) {
		e.cause = err
	}
}

func NewInternalError(message string, opts ...Option) *Error {
	return newError(kindInternal, message, opts...)
}

func NewInvalidArgumentError(message string, opts ...Option) *Error {
	return newError(kindInvalidArgument, message, opts...)
}

func NewNotFoundError(message string, opts ...Option) *Error {
	return newError(kindNotFound, message, opts...)
}

func newError(k kind, message string, opts ...Option) *Error {
	err := &Error{
		kind:    k,
		message: message,
	}

	for _, opt := range opts {
		opt(err)
	}

	return err
}

func IsInvalidArgumentError(err error) bool {
	return isKind(err, kindInvalidArgument)
}

func IsNotFoundError(err error) bool {
	return isKind(err, kindNotFound)
}

func isKind(err error, k kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}

	return false
}

// Code returns the error code of err, or an empty code for foreign errors.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}

	return ""
}

// Description returns the human-readable description of err, falling
// back to its message.
func Description(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.description != "" {
			return e.description
		}

		return e.message
	}

	return "internal error"
}
