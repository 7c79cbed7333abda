package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-media-sync/internal/synclog"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a cascade left translations behind
	ExitCommandError = 2 // bad flags, config or storage
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

// NewExitError creates an ExitError without an underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err, defaulting to ExitFailure.
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

type printer struct {
	format string
	out    io.Writer
}

func (p printer) attempts(entries []synclog.Attempt) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []synclog.Attempt{}
		}
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.out, "no sync attempts recorded")
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(p.out, "%s  %-7s  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Outcome.Status, entry.Message()); err != nil {
			return err
		}
	}
	return nil
}
