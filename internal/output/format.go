// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasker/internal/service"
	"tasker/internal/viewstate"
)

// NoDueDate is shown for tasks without a due date.
const NoDueDate = "-"

// FormatTask formats a task line of the listing.
// Format: "{N:>4}  [x]  {PRIORITY:<6}  {DUE:<10}  {TITLE}\n"
func FormatTask(w io.Writer, row int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s  %-6s  %-10s  %s\n", row, checkbox(task.IsCompleted), task.Priority, due(task), normalizeTitle(task.Title))
}

// FormatView prints the current page, the pagination footer and the
// active filters. An empty page prints "no tasks found" unless quiet.
func FormatView(w io.Writer, v viewstate.View, quiet bool) {
	if len(v.Tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, "no tasks found")
			FormatFilter(w, v.Filter)
		}
		return
	}

	for i, task := range v.Tasks {
		FormatTask(w, i+1, task)
	}
	if quiet {
		return
	}
	fmt.Fprintf(w, "page %d of %d (%s)\n", v.Page, max(1, v.TotalPages), plural(v.TotalItems, "task"))
	FormatFilter(w, v.Filter)
}

// FormatFilter prints the active filters on one line, or nothing.
func FormatFilter(w io.Writer, f service.Filter) {
	if f.IsZero() {
		return
	}
	var parts []string
	if f.Priority != "" {
		parts = append(parts, viewstate.FieldPriority+"="+string(f.Priority))
	}
	if f.Completed != nil {
		parts = append(parts, fmt.Sprintf("%s=%t", viewstate.FieldCompleted, *f.Completed))
	}
	if f.DueBefore != "" {
		parts = append(parts, viewstate.FieldDueBefore+"="+f.DueBefore)
	}
	fmt.Fprintf(w, "filter: %s\n", strings.Join(parts, " "))
}

// FormatEdit prints the open edit session draft.
func FormatEdit(w io.Writer, e viewstate.Edit) {
	fmt.Fprintf(w, "editing: %s %s\n", checkbox(e.Completed), normalizeTitle(e.Title))
}

// FormatForm prints the create form.
func FormatForm(w io.Writer, f service.NewTask) {
	dueDate := f.DueDate
	if dueDate == "" {
		dueDate = NoDueDate
	}
	fmt.Fprintf(w, "new task: %s  %s  %s\n", f.Priority, dueDate, normalizeTitle(f.Title))
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func due(task service.Task) string {
	if d := task.Due(); d != "" {
		return d
	}
	return NoDueDate
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
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
