package parser

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRepeat        = errors.New("malformed repeat directive")
	ErrNestedRepeat           = errors.New("nested repeat not allowed")
	ErrUnmatchedEndRepeat     = errors.New("endrepeat without repeat")
	ErrUnterminatedRepeat     = errors.New("repeat without endrepeat")
	ErrInvalidTime            = errors.New("time is not a valid number")
	ErrInvalidSpeedMultiplier = errors.New("speed multiplier is not a valid number")
	ErrTooManyTriggers        = errors.New("repeat expands to too many triggers")
)

// Error is a parse failure at a line of a speeds file.
type Error struct {
	Kind  error  // One of the Err* sentinels
	Line  int    // 1-based line number
	Token string // Offending token, if any
}

func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Kind, e.Token)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, index int, token string) *Error {
	return &Error{Kind: kind, Line: index + 1, Token: token}
}
