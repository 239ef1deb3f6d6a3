// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, invalid filter, unknown row).
	UserError = 1

	// BackendError indicates a task API or network error.
	BackendError = 2
)
