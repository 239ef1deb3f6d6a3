// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"tasker/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// Call records one invocation of the fake service.
type Call struct {
	Op      string // "list", "create", "update", "delete"
	Query   service.Query
	NewTask service.NewTask
	Update  service.TaskUpdate
	ID      service.ID
}

// FakeService is an in-memory implementation of service.Service for testing.
// It filters and paginates like the task API and records every call.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task
	calls []Call

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// EmptyUpdateBody makes UpdateTask apply the change but return no task.
	EmptyUpdateBody bool

	// ListTasksHook runs before a listing is computed, outside the lock.
	ListTasksHook func(q service.Query)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask stores a task with a fresh ID and returns it.
func (f *FakeService) AddTask(title string, priority service.Priority, due string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          service.StringID(uuid.NewString()),
		Title:       title,
		Priority:    priority,
		DueDate:     due,
		IsCompleted: completed,
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns every stored task in insertion order.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}

// Calls returns the recorded calls.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many calls of op were made. An empty op counts all.
func (f *FakeService) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if op == "" || c.Op == op {
			n++
		}
	}
	return n
}

// LastQuery returns the query of the most recent listing call.
func (f *FakeService) LastQuery() (service.Query, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Op == "list" {
			return f.calls[i].Query, true
		}
	}
	return service.Query{}, false
}

// ResetCalls forgets the recorded calls.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, q service.Query) (service.ListResult, error) {
	f.record(Call{Op: "list", Query: q})
	if f.ListTasksHook != nil {
		f.ListTasksHook(q)
	}
	if f.ListTasksErr != nil {
		return service.ListResult{}, f.ListTasksErr
	}
	if err := ctx.Err(); err != nil {
		return service.ListResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []service.Task
	for _, t := range f.tasks {
		if Matches(q.Filter, t) {
			matched = append(matched, t)
		}
	}

	result := service.ListResult{Items: []service.Task{}, TotalItems: len(matched)}
	if q.PageSize <= 0 {
		result.Items = matched
		return result, nil
	}
	page := max(1, q.Page)
	start := (page - 1) * q.PageSize
	if start >= len(matched) {
		return result, nil
	}
	end := min(start+q.PageSize, len(matched))
	result.Items = append(result.Items, matched[start:end]...)
	return result, nil
}

// Matches reports whether t passes every set field of filter.
// Tasks without a due date never match a due-before bound.
func Matches(filter service.Filter, t service.Task) bool {
	if filter.Priority != "" && t.Priority != filter.Priority {
		return false
	}
	if filter.Completed != nil && t.IsCompleted != *filter.Completed {
		return false
	}
	if filter.DueBefore != "" {
		due := t.Due()
		if due == "" || due >= filter.DueBefore {
			return false
		}
	}
	return true
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) error {
	f.record(Call{Op: "create", NewTask: t})
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.AddTask(t.Title, t.Priority, t.DueDate, false)
	return nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, u service.TaskUpdate) (*service.Task, error) {
	f.record(Call{Op: "update", Update: u, ID: u.ID})
	if f.UpdateTaskErr != nil {
		return nil, f.UpdateTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID.String() == u.ID.String() {
			f.tasks[i].Title = u.Title
			f.tasks[i].IsCompleted = u.IsCompleted
			if f.EmptyUpdateBody {
				return nil, nil
			}
			updated := f.tasks[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.ID) error {
	f.record(Call{Op: "delete", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID.String() == id.String() {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
