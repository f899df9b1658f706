package common

import (
	"errors"
	"fmt"
)

// Error is an operation error with a stable Op + Kind contract.
//
// Kind is one of the kind sentinels (ErrInvalidArgument, ErrNotFound, ...).
// Msg is the caller-facing text and must not include secrets. Err keeps the
// underlying cause for logs; it is never sent over the wire.
type Error struct {
	Op   string
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := e.Op + ": " + e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds an *Error without a cause.
func NewError(op string, kind error, msg string) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg}
}

// WrapError builds an *Error that keeps err as its cause.
func WrapError(op string, kind error, msg string, err error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or ErrInternal when err is not an *Error.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind
	}
	return ErrInternal
}

// MessageOf returns the caller-facing message of err. Errors that are not
// *Error yield the generic internal message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Msg != "" {
			return e.Msg
		}
		return e.Kind.Error()
	}
	return ErrInternal.Error()
}
