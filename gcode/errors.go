package gcode

import (
	"errors"
	"fmt"
)

// ErrNoMotion is reported (wrapped in a ParseError) when the input
// yields no movements at all.
var ErrNoMotion = errors.New("no motion commands in input")

// ArgumentError reports a command argument whose numeric suffix did
// not parse as a float.
type ArgumentError struct {
	Token string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.Token, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// ParseError wraps a failure with enough context to locate it in the
// source. Line is 1-based and zero when the failure is not tied to a
// single line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v\n\t%s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
