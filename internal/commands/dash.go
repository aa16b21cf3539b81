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
	"tada/internal/tui"
)

func init() {
	Register(&DashCmd{})
}

// DashCmd opens the interactive dashboard. Unlike the other task
// commands it does not require an active session up front: the dashboard
// starts on its login view when the session is absent.
type DashCmd struct{}

func (c *DashCmd) Name() string      { return "dash" }
func (c *DashCmd) Aliases() []string { return []string{"dashboard", "ui"} }
func (c *DashCmd) Synopsis() string  { return "Open the interactive dashboard" }
func (c *DashCmd) Usage() string     { return "tada dash [common flags]" }
func (c *DashCmd) NeedsAuth() bool   { return false }

func (c *DashCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := tui.Run(ctx, sess, svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
