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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete tasks" }
func (c *RmCmd) Usage() string      { return "tasker rm <row...>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	rows, err := ParseRows(args)
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
	tasks, err := tasksAtRows(s.store.View(), rows)
	if err != nil {
		return s.exitCode(err)
	}

	for _, task := range tasks {
		if err := s.ctl.Remove(ctx, task.ID); err != nil {
			return s.exitCode(err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
