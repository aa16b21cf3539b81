package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/service"
	"tada/internal/session"
	"tada/internal/tasks"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command: it inverts a task's completion
// flag, so `done` on a completed task reopens it.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done", "undone"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle a task's completion flag" }
func (c *ToggleCmd) Usage() string     { return "tada toggle <id>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := parseTaskID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	store := tasks.NewStore(svc, sess)
	if err := store.Load(ctx); err != nil {
		return taskFailure(err, errOut)
	}
	if err := store.Toggle(ctx, id); err != nil {
		return taskFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parseTaskID parses the single positional task ID argument.
func parseTaskID(args []string, errOut io.Writer) (int, int) {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return 0, exitcode.UserError
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid task id: %s\n", args[0])
		return 0, exitcode.UserError
	}
	return id, exitcode.Success
}
