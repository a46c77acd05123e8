package runtime

import (
	"errors"
	"fmt"
)

// ErrorKind classifies runtime failures. Every error the evaluator surfaces
// to the host carries exactly one kind; there is no in-language construct
// that can intercept them.
type ErrorKind string

const (
	NameError      ErrorKind = "NameError"
	AccessError    ErrorKind = "AccessError"
	TypeError      ErrorKind = "TypeError"
	ArityError     ErrorKind = "ArityError"
	MethodNotFound ErrorKind = "MethodNotFound"
	MatchError     ErrorKind = "MatchError"
	StackOverflow  ErrorKind = "StackOverflow"
)

// Error is a runtime failure with a classified kind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a classified runtime error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or "" when err is not a runtime Error.
func KindOf(err error) ErrorKind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return ""
}
