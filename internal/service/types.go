package service

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the valid priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// ParseCompleted reads a completion status: true/false, or the
// completed/pending labels shown to users.
func ParseCompleted(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "completed", "done":
		return true, nil
	case "false", "no", "pending", "open":
		return false, nil
	}
	return false, fmt.Errorf("invalid completion status: %s", s)
}

// Task represents a single task item.
type Task struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate,omitempty"` // date or date-time, as sent by the server
	IsCompleted bool     `json:"isCompleted"`
}

// Due returns the date portion of DueDate, or "" if the task has no due date.
func (t Task) Due() string {
	due, _, _ := strings.Cut(t.DueDate, "T")
	return strings.TrimSpace(due)
}

// Filter narrows which tasks are requested. Zero values mean no constraint.
type Filter struct {
	Priority  Priority `json:"priority,omitempty" validate:"omitempty,oneof=High Medium Low"`
	Completed *bool    `json:"isCompleted,omitempty"`
	DueBefore string   `json:"dueBefore,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f.Priority == "" && f.Completed == nil && f.DueBefore == ""
}

// Query is a request for one page of the filtered listing.
type Query struct {
	Page     int
	PageSize int
	Filter   Filter
}

// ListResult is one page of tasks plus the server-reported total.
type ListResult struct {
	Items      []Task `json:"items"`
	TotalItems int    `json:"totalItems"`
}

// NewTask holds the client-supplied fields of a task to create.
// It doubles as the create form: a failed create keeps it intact for a retry.
type NewTask struct {
	Title    string   `json:"title" validate:"notblank,max=500"`
	Priority Priority `json:"priority" validate:"required,oneof=High Medium Low"`
	DueDate  string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// TaskUpdate carries the editable fields of an existing task.
type TaskUpdate struct {
	ID          ID     `json:"id"`
	Title       string `json:"title" validate:"notblank,max=500"`
	IsCompleted bool   `json:"isCompleted"`
}
