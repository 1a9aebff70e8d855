package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/pubweb/core"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Generation or replay failed
	ExitCommandError = 2 // Bad flags, config or paths
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err; ExitFailure if none is attached.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printStats writes a replayed graph summary, one "key: value" per line.
func printStats(w io.Writer, steps int, s core.GraphStats) error {
	_, err := fmt.Fprintf(w,
		"steps: %d\nnodes: %d\nedges: %d\nmean degree: %.3f\nmax degree: %d\nisolated: %d\nnext id: %d\n",
		steps, s.Nodes, s.Edges, s.MeanDegree, s.MaxDegree, s.Isolated, s.UpperNodeIDBound)
	return err
}
