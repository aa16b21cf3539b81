package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/service"
	"tada/internal/session"
	"tada/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(d string) { c.description = d }

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tada add [--desc <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")

	store := tasks.NewStore(svc, sess)
	created, err := store.Create(ctx, title, c.description)
	if err != nil {
		return taskFailure(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %d\n", created.ID)
	}
	return exitcode.Success
}
