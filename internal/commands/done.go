package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&EditCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "tasker done <row>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	done := true
	return runEdit(ctx, cfg, svc, args, nil, &done, out, errOut)
}

// EditCmd implements the edit command.
type EditCmd struct {
	title     *string
	completed *bool
}

// SetTitle sets the --title flag (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = &title
}

// SetCompleted sets the --completed flag (for testing).
func (c *EditCmd) SetCompleted(done bool) {
	c.completed = &done
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title or completion" }
func (c *EditCmd) Usage() string      { return "tasker edit [--title <title>] [--completed true|false] <row>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.completed = nil, nil
	fs.Func("title", "", func(s string) error {
		c.title = &s
		return nil
	})
	fs.Func("completed", "", func(s string) error {
		done, err := service.ParseCompleted(s)
		if err != nil {
			return err
		}
		c.completed = &done
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.title == nil && c.completed == nil {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --completed)")
		return exitcode.UserError
	}
	return runEdit(ctx, cfg, svc, args, c.title, c.completed, out, errOut)
}

// runEdit opens an edit session on the row, applies the given draft
// changes and saves it.
func runEdit(ctx context.Context, cfg *config.Config, svc service.Service, args []string, title *string, completed *bool, out, errOut io.Writer) int {
	row, err := ParseRow(args)
	if err != nil {
		if errors.Is(err, ErrRowRequired) {
			fmt.Fprintln(errOut, "error: row required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	s := openSession(cfg, svc, errOut)
	defer s.save()

	if err := s.ctl.Load(ctx); err != nil {
		return s.exitCode(err)
	}
	task, err := taskAtRow(s.store.View(), row)
	if err != nil {
		return s.exitCode(err)
	}

	s.store.BeginEdit(task)
	if title != nil {
		if err := s.store.SetDraftTitle(*title); err != nil {
			return s.exitCode(err)
		}
	}
	if completed != nil {
		if err := s.store.SetDraftCompleted(*completed); err != nil {
			return s.exitCode(err)
		}
	}

	if err := s.ctl.Update(ctx); err != nil {
		return s.exitCode(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
