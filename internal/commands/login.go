package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/service"
	"tada/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
}

// SetPassword sets the password non-interactively (for testing).
func (c *LoginCmd) SetPassword(pw string) { c.password = pw }

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session token" }
func (c *LoginCmd) Usage() string     { return "tada login [--password <pw>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]

	password := c.password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ", errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if err := sess.Login(ctx, email, password); err != nil {
		return loginFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// loginFailure prints a user-facing message for a failed login or signup
// and picks the exit code. Server-provided messages are preferred; a
// transport failure gets a generic "try again".
func loginFailure(err error, errOut io.Writer) int {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		fmt.Fprintln(errOut, "error: an account with that email already exists")
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		var apiErr *service.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintln(errOut, "error: invalid credentials")
		}
		return exitcode.AuthError
	case errors.Is(err, service.ErrTransport):
		fmt.Fprintln(errOut, "error: could not reach the server, try again")
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}
