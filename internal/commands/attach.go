package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/output"
	"tada/internal/service"
	"tada/internal/session"
)

func init() {
	Register(&AttachCmd{})
}

// AttachCmd lists a task's attachment URLs.
type AttachCmd struct{}

func (c *AttachCmd) Name() string      { return "attach" }
func (c *AttachCmd) Aliases() []string { return []string{"attachments"} }
func (c *AttachCmd) Synopsis() string  { return "List a task's attachments" }
func (c *AttachCmd) Usage() string     { return "tada attach <id>" }
func (c *AttachCmd) NeedsAuth() bool   { return true }

func (c *AttachCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AttachCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	id, code := parseTaskID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	urls, err := svc.ListAttachments(ctx, id)
	if err != nil {
		return taskFailure(err, errOut)
	}

	if len(urls) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no attachments")
		}
		return exitcode.Success
	}
	for _, u := range urls {
		output.FormatAttachment(out, u)
	}
	return exitcode.Success
}
