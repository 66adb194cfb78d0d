// Package apperr defines the error kinds the API boundary maps to
// HTTP statuses. Everything below the boundary wraps with %w as usual;
// handlers pick the status off the outermost apperr.Error.
package apperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota // malformed or missing input
	KindConflict               // unique-constraint violation
	KindAuth                   // bad credentials or token
	KindNotFound               // absent, or not owned by the caller
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func Validation(msg string) error { return &Error{kind: KindValidation, msg: msg} }
func Conflict(msg string) error   { return &Error{kind: KindConflict, msg: msg} }
func Auth(msg string) error       { return &Error{kind: KindAuth, msg: msg} }
func NotFound(msg string) error   { return &Error{kind: KindNotFound, msg: msg} }

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
