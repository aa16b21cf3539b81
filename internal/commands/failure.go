package commands

import (
	"errors"
	"fmt"
	"io"

	"tada/internal/exitcode"
	"tada/internal/service"
)

// taskFailure prints a user-facing message for a failed task operation and
// picks the exit code. All task-level errors are non-fatal; the caller
// just exits with the mapped code.
func taskFailure(err error, errOut io.Writer) int {
	switch {
	case errors.Is(err, service.ErrNoSession):
		fmt.Fprintln(errOut, "error: not logged in (run: tada login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintln(errOut, "error: session expired or rejected (run: tada login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrTaskNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.Is(err, service.ErrEmptyTitle):
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, service.ErrTransport):
		fmt.Fprintln(errOut, "error: could not reach the server, try again")
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
