// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/task"
)

// statusMarks maps a status to its two-character list marker.
var statusMarks = map[task.Status]string{
	task.StatusTodo:       "[ ]",
	task.StatusInProgress: "[~]",
	task.StatusDone:       "[x]",
}

// FormatTask formats one task line for the list command.
// Format: "{N:>4}  {MARK} {TITLE}  ({PRIORITY}, due {DATE})"
func FormatTask(w io.Writer, num int, t task.Task) {
	mark, ok := statusMarks[t.Status]
	if !ok {
		mark = "[?]"
	}
	line := fmt.Sprintf("%4d  %s %s", num, mark, normalizeTitle(t.Title))
	var meta []string
	if t.Priority != "" {
		meta = append(meta, string(t.Priority))
	}
	if t.DueDate != "" {
		meta = append(meta, "due "+t.DueDate)
	}
	if len(meta) > 0 {
		line += "  (" + strings.Join(meta, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail writes the full record for the show command.
func FormatTaskDetail(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "id:        %s\n", t.ID)
	fmt.Fprintf(w, "title:     %s\n", normalizeTitle(t.Title))
	if t.Description != "" {
		fmt.Fprintf(w, "desc:      %s\n", t.Description)
	}
	fmt.Fprintf(w, "status:    %s\n", t.Status)
	if t.Priority != "" {
		fmt.Fprintf(w, "priority:  %s\n", t.Priority)
	}
	if t.Assignee != "" {
		fmt.Fprintf(w, "assignee:  %s\n", t.Assignee)
	}
	if t.DueDate != "" {
		fmt.Fprintf(w, "due:       %s\n", t.DueDate)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "tags:      %s\n", strings.Join(t.Tags, ", "))
	}
	if len(t.TeamMembers) > 0 {
		fmt.Fprintf(w, "team:      %s\n", strings.Join(t.TeamMembers, ", "))
	}
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created:   %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
