package cli

import (
	"errors"

	"sci-translator/internal/errs"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// ExitError wraps an error with a specific process exit code.
// Use errors.As to extract it from an error chain.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to the process exit status: an explicit ExitError wins,
// validation failures exit 2, anything else 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errs.IsValidation(err) {
		return ExitValidation
	}
	return ExitFailure
}

// exactArgs is cobra.ExactArgs reporting a ValidationError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return errs.Validation("", 0, "%s: %v", cmd.CommandPath(), err)
		}
		return nil
	}
}
