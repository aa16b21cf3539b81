package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/service"
	"tada/internal/session"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command. A successful signup logs in
// with the same credentials, so the session is active afterwards.
type SignupCmd struct {
	password string
}

// SetPassword sets the password non-interactively (for testing).
func (c *SignupCmd) SetPassword(pw string) { c.password = pw }

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *SignupCmd) Usage() string     { return "tada signup [--password <pw>] <name> <email>" }
func (c *SignupCmd) NeedsAuth() bool   { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: name and email required")
		return exitcode.UserError
	}
	name, email := args[0], args[1]

	password := c.password
	if password == "" {
		var err error
		password, err = promptPassword("Password: ", errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	if err := sess.Signup(ctx, name, email, password); err != nil {
		return loginFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
