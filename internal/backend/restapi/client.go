// Package restapi implements the service.Service interface over the HTTP task API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tasker/internal/config"
	"tasker/internal/logging"
	"tasker/internal/service"
)

const (
	// APITimeout bounds every request so a dead backend cannot hang the terminal.
	APITimeout = 10 * time.Second

	// maxBodySize caps how much of a response is read.
	maxBodySize = 4 << 20
)

// ErrMalformed is returned when a response body cannot be understood.
var ErrMalformed = errors.New("malformed response")

// StatusError is a non-2xx response from the task API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server returned %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Client implements service.Service against the task API.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// New creates a client for cfg.APIURL.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	return NewWithHTTPClient(cfg.APIURL, &http.Client{Timeout: APITimeout}, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api url: %s", baseURL)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{base: base, http: httpClient, logger: logger}, nil
}

// ListTasks fetches one page of the filtered listing.
func (c *Client) ListTasks(ctx context.Context, q service.Query) (service.ListResult, error) {
	data, err := c.do(ctx, http.MethodGet, encodeQuery(q), nil, "tasks")
	if err != nil {
		return service.ListResult{}, err
	}

	var body struct {
		Items      []service.Task `json:"items"`
		TotalItems *int           `json:"totalItems"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return service.ListResult{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if body.TotalItems == nil || *body.TotalItems < 0 {
		return service.ListResult{}, fmt.Errorf("%w: missing totalItems", ErrMalformed)
	}
	for _, t := range body.Items {
		if t.ID.IsZero() {
			return service.ListResult{}, fmt.Errorf("%w: task without id", ErrMalformed)
		}
	}
	return service.ListResult{Items: body.Items, TotalItems: *body.TotalItems}, nil
}

// encodeQuery builds the listing query string. Unset filter fields are
// omitted rather than sent blank.
func encodeQuery(q service.Query) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Filter.Priority != "" {
		v.Set("priority", string(q.Filter.Priority))
	}
	if q.Filter.Completed != nil {
		v.Set("isCompleted", strconv.FormatBool(*q.Filter.Completed))
	}
	if q.Filter.DueBefore != "" {
		v.Set("dueBefore", q.Filter.DueBefore)
	}
	return v
}

type createRequest struct {
	Title       string           `json:"title"`
	Priority    service.Priority `json:"priority"`
	DueDate     *string          `json:"dueDate"`
	IsCompleted bool             `json:"isCompleted"`
}

// CreateTask posts a new, not completed task. The response body is ignored.
func (c *Client) CreateTask(ctx context.Context, t service.NewTask) error {
	req := createRequest{Title: t.Title, Priority: t.Priority}
	if t.DueDate != "" {
		due := t.DueDate
		req.DueDate = &due
	}
	_, err := c.do(ctx, http.MethodPost, nil, req, "tasks")
	return err
}

// UpdateTask puts the new title and completion flag.
// An empty (or null) body yields a nil task and no error.
func (c *Client) UpdateTask(ctx context.Context, u service.TaskUpdate) (*service.Task, error) {
	if u.ID.IsZero() {
		return nil, service.ErrMissingID
	}
	data, err := c.do(ctx, http.MethodPut, nil, u, "tasks", url.PathEscape(u.ID.String()))
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var task service.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if task.ID.IsZero() {
		return nil, fmt.Errorf("%w: task without id", ErrMalformed)
	}
	return &task, nil
}

// DeleteTask deletes a task. Any response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.ID) error {
	if id.IsZero() {
		return service.ErrMissingID
	}
	_, err := c.do(ctx, http.MethodDelete, nil, nil, "tasks", url.PathEscape(id.String()))
	return err
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method string, query url.Values, body any, elem ...string) ([]byte, error) {
	u := c.base.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", u.Path, "error", err)
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.logger.Debug("api request", "method", method, "path", u.Path, "status", resp.StatusCode, "duration", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", wrapError(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: trimBody(data)}
	}
	return data, nil
}

// wrapError turns transport errors into short messages.
func wrapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}

// trimBody shortens an error body to one line.
func trimBody(data []byte) string {
	s := strings.Join(strings.Fields(string(data)), " ")
	const limit = 200
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
