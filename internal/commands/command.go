// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tada/internal/config"
	"tada/internal/service"
	"tada/internal/session"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an active session.
	// Commands like help, version, login, signup, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg and sess are always provided. svc is the backend service; for
	// commands with NeedsAuth() the dispatcher guarantees sess is active
	// before Run is called.
	// Returns an exit code.
	Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int
}
