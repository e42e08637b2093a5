package cli

import (
	"strings"

	hlerrors "github.com/colindean/hledger/errors"
)

// CommandError signals a command failure with a specific exit code.
// Commands return this after printing their own output; main centralizes
// exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// renderError formats a journal error with source context and terminal
// styling. The first line is the message; any source-context lines that
// follow are dimmed with the caret highlighted.
func renderError(err error, filename string, source []byte) string {
	tf := hlerrors.NewTextFormatter(hlerrors.WithSource(filename, source))

	lines := strings.Split(tf.Format(err), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = errorStyle.Render(line)
		case strings.TrimSpace(line) == "^":
			lines[i] = strings.Replace(line, "^", errorStyle.Render("^"), 1)
		default:
			lines[i] = dimStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
