package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/syncctl"
)

func init() {
	Register(&PageCmd{})
	Register(&NextCmd{})
	Register(&PrevCmd{})
}

// PageCmd implements the page command.
type PageCmd struct{}

func (c *PageCmd) Name() string       { return "page" }
func (c *PageCmd) Aliases() []string  { return nil }
func (c *PageCmd) Synopsis() string   { return "Go to a page" }
func (c *PageCmd) Usage() string      { return "tasker page <n>" }
func (c *PageCmd) NeedsBackend() bool { return true }

func (c *PageCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PageCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: page number required")
		return exitcode.UserError
	}
	n, err := parsePageFlag(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return runPaging(ctx, cfg, svc, out, errOut, func(ctx context.Context, ctl *syncctl.Controller) error {
		return ctl.SetPage(ctx, n)
	})
}

// NextCmd implements the next command.
type NextCmd struct{}

func (c *NextCmd) Name() string       { return "next" }
func (c *NextCmd) Aliases() []string  { return nil }
func (c *NextCmd) Synopsis() string   { return "Go to the next page" }
func (c *NextCmd) Usage() string      { return "tasker next" }
func (c *NextCmd) NeedsBackend() bool { return true }

func (c *NextCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NextCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runPaging(ctx, cfg, svc, out, errOut, func(ctx context.Context, ctl *syncctl.Controller) error {
		return ctl.NextPage(ctx)
	})
}

// PrevCmd implements the prev command.
type PrevCmd struct{}

func (c *PrevCmd) Name() string       { return "prev" }
func (c *PrevCmd) Aliases() []string  { return nil }
func (c *PrevCmd) Synopsis() string   { return "Go to the previous page" }
func (c *PrevCmd) Usage() string      { return "tasker prev" }
func (c *PrevCmd) NeedsBackend() bool { return true }

func (c *PrevCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrevCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runPaging(ctx, cfg, svc, out, errOut, func(ctx context.Context, ctl *syncctl.Controller) error {
		return ctl.PrevPage(ctx)
	})
}

// runPaging loads the saved page first so the move is clamped against the
// real page count, then moves and renders.
func runPaging(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer, move func(context.Context, *syncctl.Controller) error) int {
	s := openSession(cfg, svc, errOut)
	defer s.save()

	if err := s.ctl.Load(ctx); err != nil {
		return s.exitCode(err)
	}
	if err := move(ctx, s.ctl); err != nil {
		return s.exitCode(err)
	}

	s.render(out)
	return exitcode.Success
}
