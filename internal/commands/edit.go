package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tada/internal/config"
	"tada/internal/dashboard"
	"tada/internal/exitcode"
	"tada/internal/service"
	"tada/internal/session"
	"tada/internal/tasks"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields not given keep their current
// values, seeded the same way the dashboard's edit slot is.
type EditCmd struct {
	title    string
	desc     string
	titleSet bool
	descSet  bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title and description" }
func (c *EditCmd) Usage() string     { return "tada edit [--title <text>] [--desc <text>] <id>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title, c.titleSet = v, true
		return nil
	})
	fs.Func("desc", "", func(v string) error {
		c.desc, c.descSet = v, true
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := parseTaskID(args, errOut)
	if code != exitcode.Success {
		return code
	}
	if !c.titleSet && !c.descSet {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --desc)")
		return exitcode.UserError
	}

	store := tasks.NewStore(svc, sess)
	if err := store.Load(ctx); err != nil {
		return taskFailure(err, errOut)
	}

	ctrl := dashboard.NewController(store)
	if !ctrl.StartEdit(id) {
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	}
	title, desc := ctrl.EditFields()
	if c.titleSet {
		title = c.title
	}
	if c.descSet {
		desc = c.desc
	}
	ctrl.SetEditFields(title, desc)
	if err := ctrl.SaveEdit(ctx); err != nil {
		return taskFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
