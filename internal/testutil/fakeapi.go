package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tasker/internal/service"
)

// APIPrefix is where NewFakeAPI mounts the task routes.
// Point the client at server.URL + APIPrefix.
const APIPrefix = "/api"

// NewFakeAPI serves the task REST API on top of a FakeService:
//
//	GET    /api/tasks        page, pageSize, priority, isCompleted, dueBefore
//	POST   /api/tasks
//	PUT    /api/tasks/{id}
//	DELETE /api/tasks/{id}
//
// Injected FakeService errors become 500 responses.
func NewFakeAPI(svc *FakeService) http.Handler {
	h := &fakeAPI{svc: svc}

	r := chi.NewRouter()
	r.Route(APIPrefix+"/tasks", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

type fakeAPI struct {
	svc *FakeService
}

func (h *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := service.Query{Page: 1}
	if v := params.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page"})
			return
		}
		q.Page = n
	}
	if v := params.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid pageSize"})
			return
		}
		q.PageSize = n
	}
	q.Filter.Priority = service.Priority(params.Get("priority"))
	if v := params.Get("isCompleted"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid isCompleted"})
			return
		}
		q.Filter.Completed = &done
	}
	q.Filter.DueBefore = params.Get("dueBefore")

	result, err := h.svc.ListTasks(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string           `json:"title"`
		Priority    service.Priority `json:"priority"`
		DueDate     *string          `json:"dueDate"`
		IsCompleted bool             `json:"isCompleted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	t := service.NewTask{Title: req.Title, Priority: req.Priority}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if err := h.svc.CreateTask(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}

	tasks := h.svc.Tasks()
	writeJSON(w, http.StatusCreated, tasks[len(tasks)-1])
}

func (h *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var u service.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	u.ID = service.StringID(chi.URLParam(r, "id"))

	task, err := h.svc.UpdateTask(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	if task == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *fakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), service.StringID(chi.URLParam(r, "id"))); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
