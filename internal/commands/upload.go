package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"tada/internal/config"
	"tada/internal/exitcode"
	"tada/internal/output"
	"tada/internal/service"
	"tada/internal/session"
)

func init() {
	Register(&UploadCmd{})
}

// UploadCmd uploads local files as attachments to a task, then prints the
// re-fetched attachment list.
type UploadCmd struct{}

func (c *UploadCmd) Name() string      { return "upload" }
func (c *UploadCmd) Aliases() []string { return nil }
func (c *UploadCmd) Synopsis() string  { return "Attach files to a task" }
func (c *UploadCmd) Usage() string     { return "tada upload <id> <file...>" }
func (c *UploadCmd) NeedsAuth() bool   { return true }

func (c *UploadCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UploadCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task id and at least one file required")
		return exitcode.UserError
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid task id: %s\n", args[0])
		return exitcode.UserError
	}

	var files []service.FileUpload
	var handles []*os.File
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for _, path := range args[1:] {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		handles = append(handles, f)
		files = append(files, service.FileUpload{
			Name:        filepath.Base(path),
			ContentType: contentTypeFor(path),
			Content:     f,
		})
	}

	if err := svc.UploadAttachments(ctx, id, files); err != nil {
		return taskFailure(err, errOut)
	}

	// The upload response carries nothing; re-fetch the list.
	urls, err := svc.ListAttachments(ctx, id)
	if err != nil {
		return taskFailure(err, errOut)
	}
	if !cfg.Quiet {
		for _, u := range urls {
			output.FormatAttachment(out, u)
		}
	}
	return exitcode.Success
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
