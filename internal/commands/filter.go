package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
)

func init() {
	Register(&FilterCmd{})
	Register(&ResetCmd{})
}

// FilterCmd implements the filter command.
type FilterCmd struct{}

func (c *FilterCmd) Name() string       { return "filter" }
func (c *FilterCmd) Aliases() []string  { return nil }
func (c *FilterCmd) Synopsis() string   { return "Set or clear a filter" }
func (c *FilterCmd) Usage() string      { return "tasker filter <priority|completed|due-before> [value]" }
func (c *FilterCmd) NeedsBackend() bool { return true }

func (c *FilterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FilterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s := openSession(cfg, svc, errOut)
	defer s.save()

	// No args: show the active filters
	if len(args) == 0 {
		f := s.store.Query().Filter
		if f.IsZero() {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no filters")
			}
			return exitcode.Success
		}
		output.FormatFilter(out, f)
		return exitcode.Success
	}

	field := args[0]
	value := strings.Join(args[1:], " ")
	if err := s.ctl.SetFilter(ctx, field, value); err != nil {
		return s.exitCode(err)
	}

	s.render(out)
	return exitcode.Success
}

// ResetCmd implements the reset command.
type ResetCmd struct{}

func (c *ResetCmd) Name() string       { return "reset" }
func (c *ResetCmd) Aliases() []string  { return nil }
func (c *ResetCmd) Synopsis() string   { return "Drop all filters and go to page 1" }
func (c *ResetCmd) Usage() string      { return "tasker reset" }
func (c *ResetCmd) NeedsBackend() bool { return true }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s := openSession(cfg, svc, errOut)
	defer s.save()

	if err := s.ctl.ClearFilters(ctx); err != nil {
		return s.exitCode(err)
	}

	s.render(out)
	return exitcode.Success
}
