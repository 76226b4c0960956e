package main

import (
	"errors"
	"fmt"
)

// ErrUsage reports a bad command line.
var ErrUsage = errors.New("usage error")

// ParseError is a fatal problem in an instance file. Any ParseError aborts the
// whole batch.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
