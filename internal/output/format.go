// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tada/internal/service"
)

// FormatTask formats a task line.
// Format: "{BOX} {ID:>4}  {TITLE}\n" where BOX is "[x]" for completed
// tasks and "[ ]" otherwise. A non-empty description follows on its own
// indented line.
func FormatTask(w io.Writer, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%s %4d  %s\n", box, task.ID, normalizeTitle(task.Title))
	if desc := normalizeLine(task.Description); desc != "" {
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// FormatAttachment formats one attachment URL line.
func FormatAttachment(w io.Writer, url string) {
	fmt.Fprintf(w, "  %s\n", url)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeLine(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeLine flattens newlines and trims surrounding whitespace.
func normalizeLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
