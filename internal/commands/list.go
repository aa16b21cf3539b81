package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tada/internal/config"
	"tada/internal/dashboard"
	"tada/internal/exitcode"
	"tada/internal/output"
	"tada/internal/service"
	"tada/internal/session"
	"tada/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also the default when tada is
// run without arguments.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(f string) { c.filter = f }

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tada list [--filter all|active|completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	filter, err := dashboard.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	store := tasks.NewStore(svc, sess)
	if err := store.Load(ctx); err != nil {
		return taskFailure(err, errOut)
	}

	visible := dashboard.Apply(filter, store.Tasks())
	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}
	for _, t := range visible {
		output.FormatTask(out, t)
	}
	return exitcode.Success
}
