// Package viewstate holds what the client shows: the current page of tasks,
// pagination, filters, the create form and the single edit session.
package viewstate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"tasker/internal/service"
)

// DefaultPageSize is used when a store is created with a non-positive page size.
const DefaultPageSize = 5

// Filter field names accepted by SetFilter.
const (
	FieldPriority  = "priority"
	FieldCompleted = "completed"
	FieldDueBefore = "due-before"
)

// ErrNoEdit is returned when an edit operation runs without an open session.
var ErrNoEdit = errors.New("no task is being edited")

// ErrUnknownField is returned by SetFilter for an unknown field name.
var ErrUnknownField = errors.New("unknown filter field")

// Edit is the draft of the one task being edited.
type Edit struct {
	ID        service.ID
	Title     string
	Completed bool
}

// View is an immutable snapshot of the store for rendering.
type View struct {
	Tasks      []service.Task
	TotalItems int
	Page       int
	PageSize   int
	TotalPages int // ceil(TotalItems / PageSize), may be 0
	Filter     service.Filter
	Edit       *Edit
	Form       service.NewTask
}

// Store is the single owner of view state. It is safe for concurrent use.
// Create one per session and pass it by pointer.
type Store struct {
	mu       sync.Mutex
	pageSize int
	tasks    []service.Task
	total    int
	page     int
	filter   service.Filter
	edit     *Edit
	form     service.NewTask
	loadSeq  uint64
}

// New creates a store on page 1 with no filters.
func New(pageSize int) *Store {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Store{
		pageSize: pageSize,
		page:     1,
		form:     service.NewTask{Priority: service.PriorityMedium},
	}
}

// SetFilter sets one filter field; an empty value clears it.
// The page always resets to 1, even if it already was 1.
// An invalid field or value leaves the store untouched.
func (s *Store) SetFilter(field, value string) error {
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.filter
	switch normalizeField(field) {
	case FieldPriority:
		f.Priority = ""
		if value != "" {
			p, err := service.ParsePriority(value)
			if err != nil {
				return err
			}
			f.Priority = p
		}
	case FieldCompleted:
		f.Completed = nil
		if value != "" {
			done, err := service.ParseCompleted(value)
			if err != nil {
				return err
			}
			f.Completed = &done
		}
	case FieldDueBefore:
		f.DueBefore = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := f.Validate(); err != nil {
		return err
	}

	s.filter = f
	s.page = 1
	return nil
}

func normalizeField(field string) string {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "priority":
		return FieldPriority
	case "completed", "iscompleted", "status":
		return FieldCompleted
	case "due-before", "duebefore", "due":
		return FieldDueBefore
	}
	return ""
}

// ClearFilters drops every filter and returns to page 1.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = service.Filter{}
	s.page = 1
}

// SetPage moves to page n clamped to [1, max(1, TotalPages)].
// Returns false when the clamped page equals the current one.
func (s *Store) SetPage(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(n)
}

func (s *Store) setPageLocked(n int) bool {
	n = max(1, min(n, s.lastPageLocked()))
	if n == s.page {
		return false
	}
	s.page = n
	return true
}

// NextPage moves one page forward. No-op on the last page.
func (s *Store) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(s.page + 1)
}

// PrevPage moves one page back. No-op on page 1.
func (s *Store) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPageLocked(s.page - 1)
}

// ClampPage pulls the page back into range after the total shrank.
// Returns true if the page changed.
func (s *Store) ClampPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page <= s.lastPageLocked() {
		return false
	}
	s.page = s.lastPageLocked()
	return true
}

func (s *Store) lastPageLocked() int {
	return max(1, totalPages(s.total, s.pageSize))
}

func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// BeginEdit opens an edit session on task, discarding any unsaved draft.
func (s *Store) BeginEdit(task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = &Edit{ID: task.ID, Title: task.Title, Completed: task.IsCompleted}
}

// CancelEdit closes the edit session without side effects.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = nil
}

// FinishEdit closes the session if it still belongs to id.
func (s *Store) FinishEdit(id service.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil || s.edit.ID.String() != id.String() {
		return false
	}
	s.edit = nil
	return true
}

// Edit returns a copy of the open session.
func (s *Store) Edit() (Edit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return Edit{}, false
	}
	return *s.edit, true
}

// SetDraftTitle replaces the draft title.
func (s *Store) SetDraftTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return ErrNoEdit
	}
	s.edit.Title = title
	return nil
}

// SetDraftCompleted replaces the draft completion flag.
func (s *Store) SetDraftCompleted(done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return ErrNoEdit
	}
	s.edit.Completed = done
	return nil
}

// ToggleDraftCompleted flips the draft completion flag.
func (s *Store) ToggleDraftCompleted() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return ErrNoEdit
	}
	s.edit.Completed = !s.edit.Completed
	return nil
}

// ReplaceTasks swaps the displayed list and the total count at once.
func (s *Store) ReplaceTasks(items []service.Task, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(items, total)
}

func (s *Store) replaceLocked(items []service.Task, total int) {
	s.tasks = append([]service.Task(nil), items...)
	s.total = max(0, total)
}

// PatchTask replaces the entry with the same ID, leaving order and
// other entries untouched. Returns false if no entry matched or the
// task has no ID.
func (s *Store) PatchTask(updated service.Task) bool {
	if updated.ID.IsZero() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID.String() == updated.ID.String() {
			s.tasks[i] = updated
			return true
		}
	}
	return false
}

// BeginLoad returns the listing query together with a token identifying
// this load. Starting a new load invalidates every earlier token.
func (s *Store) BeginLoad() (service.Query, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	return s.queryLocked(), s.loadSeq
}

// ApplyLoad replaces the list with a listing result if token is still the
// latest load. Stale results are dropped and false is returned.
func (s *Store) ApplyLoad(token uint64, items []service.Task, total int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loadSeq {
		return false
	}
	s.replaceLocked(items, total)
	return true
}

// IsLatestLoad reports whether token belongs to the most recent load.
func (s *Store) IsLatestLoad(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.loadSeq
}

// Query returns the listing query for the current page and filters.
func (s *Store) Query() service.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked()
}

func (s *Store) queryLocked() service.Query {
	q := service.Query{Page: s.page, PageSize: s.pageSize, Filter: s.filter}
	if s.filter.Completed != nil {
		done := *s.filter.Completed
		q.Filter.Completed = &done
	}
	return q
}

// Form returns the create form.
func (s *Store) Form() service.NewTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm stores the create form. An empty priority keeps the current one.
func (s *Store) SetForm(t service.NewTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Priority == "" {
		t.Priority = s.form.Priority
	}
	s.form = t
}

// ClearForm empties title and due date after a successful create.
// The chosen priority is kept.
func (s *Store) ClearForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Title = ""
	s.form.DueDate = ""
}

// View returns a snapshot for rendering.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Tasks:      append([]service.Task(nil), s.tasks...),
		TotalItems: s.total,
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalPages: totalPages(s.total, s.pageSize),
		Filter:     s.queryLocked().Filter,
		Form:       s.form,
	}
	if s.edit != nil {
		e := *s.edit
		v.Edit = &e
	}
	return v
}
