// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All task API calls go through this interface.
// Commands and the sync controller never speak HTTP directly.
type Service interface {
	// ListTasks returns one page of tasks matching the query, in server order,
	// together with the total number of matching tasks.
	ListTasks(ctx context.Context, q Query) (ListResult, error)

	// CreateTask creates a new task. The created representation is not returned;
	// its placement in the listing is decided by the server.
	CreateTask(ctx context.Context, t NewTask) error

	// UpdateTask sends the new title and completion flag for a task.
	// Returns nil and no error when the server applied the change but sent no body.
	UpdateTask(ctx context.Context, u TaskUpdate) (*Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id ID) error
}
