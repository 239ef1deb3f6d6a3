// Package syncctl turns view changes into task API calls and folds the
// results back into the view state store.
package syncctl

import (
	"context"
	"errors"
	"log/slog"

	"tasker/internal/logging"
	"tasker/internal/service"
	"tasker/internal/viewstate"
)

// User-visible failure messages.
const (
	MsgLoadFailed   = "failed to fetch tasks"
	MsgCreateFailed = "error adding task"
	MsgDeleteFailed = "error deleting task"
	MsgUpdateFailed = "something went wrong while updating the task"
)

var (
	// ErrSuperseded is returned by Load when a newer load started before
	// this one finished. Its outcome was discarded.
	ErrSuperseded = errors.New("load superseded by a newer request")

	// ErrEmptyTitle is returned, without any request, for a blank title.
	ErrEmptyTitle = service.ErrEmptyTitle

	// ErrNoEdit is returned by Update when no edit session is open.
	ErrNoEdit = viewstate.ErrNoEdit
)

// BackendError is a failed task API call. It has already been reported
// through the Notifier when returned.
type BackendError struct {
	Msg string
	Err error
}

func (e *BackendError) Error() string { return e.Msg + ": " + e.Err.Error() }
func (e *BackendError) Unwrap() error { return e.Err }

// Notifier receives user-visible failure notifications.
type Notifier interface {
	Notify(msg string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string, err error)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string, err error) { f(msg, err) }

// Controller issues task API requests for view changes.
// Local validation failures never reach the service.
type Controller struct {
	svc    service.Service
	store  *viewstate.Store
	notify Notifier
	logger *slog.Logger
}

// New creates a controller. A nil notifier or logger discards.
func New(svc service.Service, store *viewstate.Store, notify Notifier, logger *slog.Logger) *Controller {
	if notify == nil {
		notify = NotifierFunc(func(string, error) {})
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{svc: svc, store: store, notify: notify, logger: logger}
}

// Load fetches the current page with the active filters and replaces the
// displayed list. On failure the stale list stays visible. If the page no
// longer exists, it is clamped to the last page and fetched once more.
func (c *Controller) Load(ctx context.Context) error {
	return c.load(ctx, true)
}

func (c *Controller) load(ctx context.Context, clamp bool) error {
	q, token := c.store.BeginLoad()

	res, err := c.svc.ListTasks(ctx, q)
	if err != nil {
		if !c.store.IsLatestLoad(token) {
			c.logger.Debug("discarded stale listing failure", "page", q.Page, "error", err)
			return ErrSuperseded
		}
		return c.fail(MsgLoadFailed, err)
	}

	if !c.store.ApplyLoad(token, res.Items, res.TotalItems) {
		c.logger.Debug("discarded stale listing", "page", q.Page)
		return ErrSuperseded
	}

	if clamp && c.store.ClampPage() {
		c.logger.Debug("page out of range, clamping", "page", q.Page, "total", res.TotalItems)
		return c.load(ctx, false)
	}
	return nil
}

// SetFilter changes one filter field and reloads from page 1.
// An invalid field or value is returned without a request.
func (c *Controller) SetFilter(ctx context.Context, field, value string) error {
	if err := c.store.SetFilter(field, value); err != nil {
		return err
	}
	return c.Load(ctx)
}

// ClearFilters drops every filter and reloads from page 1.
func (c *Controller) ClearFilters(ctx context.Context) error {
	c.store.ClearFilters()
	return c.Load(ctx)
}

// SetPage moves to page n (clamped) and reloads if the page changed.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	if !c.store.SetPage(n) {
		return nil
	}
	return c.Load(ctx)
}

// NextPage moves forward one page; no-op on the last page.
func (c *Controller) NextPage(ctx context.Context) error {
	if !c.store.NextPage() {
		return nil
	}
	return c.Load(ctx)
}

// PrevPage moves back one page; no-op on page 1.
func (c *Controller) PrevPage(ctx context.Context) error {
	if !c.store.PrevPage() {
		return nil
	}
	return c.Load(ctx)
}

// Create submits t as the create form. On success the title and due date
// are cleared and the listing is reloaded; the new task's placement is up
// to the server. On failure the form keeps its values.
func (c *Controller) Create(ctx context.Context, t service.NewTask) error {
	c.store.SetForm(t)
	t = c.store.Form()
	if err := t.Validate(); err != nil {
		return err
	}

	if err := c.svc.CreateTask(ctx, t); err != nil {
		return c.fail(MsgCreateFailed, err)
	}
	c.store.ClearForm()
	return c.Load(ctx)
}

// Remove deletes a task and reloads. Nothing is removed locally on failure.
func (c *Controller) Remove(ctx context.Context, id service.ID) error {
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		return c.fail(MsgDeleteFailed, err)
	}
	return c.Load(ctx)
}

// Update saves the open edit session. A returned task replaces its entry
// in place; an empty response triggers a full reload. The session closes
// on success and stays open on any failure.
func (c *Controller) Update(ctx context.Context) error {
	edit, ok := c.store.Edit()
	if !ok {
		return ErrNoEdit
	}

	u := service.TaskUpdate{ID: edit.ID, Title: edit.Title, IsCompleted: edit.Completed}
	if err := u.Validate(); err != nil {
		return err
	}

	task, err := c.svc.UpdateTask(ctx, u)
	if err != nil {
		return c.fail(MsgUpdateFailed, err)
	}

	var loadErr error
	if task != nil {
		if !c.store.PatchTask(*task) {
			c.logger.Debug("updated task not on current page", "id", task.ID.String())
		}
	} else {
		loadErr = c.Load(ctx)
	}

	c.store.FinishEdit(edit.ID)
	return loadErr
}

func (c *Controller) fail(msg string, err error) error {
	c.logger.Debug(msg, "error", err)
	c.notify.Notify(msg, err)
	return &BackendError{Msg: msg, Err: err}
}
