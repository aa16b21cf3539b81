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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tada help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tada                                          List tasks
  tada list [common flags] [--filter all|active|completed]
  tada add [common flags] [--desc <text>] <title...>
  tada toggle [common flags] <id>               (aliases: done, undone)
  tada edit [common flags] [--title <text>] [--desc <text>] <id>
  tada rm [common flags] <id>
  tada attach [common flags] <id>
  tada upload [common flags] <id> <file...>
  tada dash [common flags]                      Open the dashboard
  tada login [common flags] [--password <pw>] <email>
  tada signup [common flags] [--password <pw>] <name> <email>
  tada logout [common flags]
  tada version
  tada help

Common flags:
  --config <dir>   Config directory (default: ~/.config/tada)
  --server <url>   Task service base URL
  --quiet          Suppress informational output
  --debug          Enable debug logging
`
