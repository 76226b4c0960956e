package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Verbose controls whether detailed search progress is printed to stderr.
var Verbose bool

// logOut receives progress output. color.Error is stderr with color support
// detected for the terminal.
var logOut io.Writer = color.Error

var logTag = color.New(color.FgCyan).SprintFunc()

func logw() io.Writer { return logOut }

// logf writes one "[tag] message" line to the progress stream.
func logf(tag, format string, args ...any) {
	fmt.Fprintf(logw(), "%s %s\n", logTag("["+tag+"]"), fmt.Sprintf(format, args...))
}
