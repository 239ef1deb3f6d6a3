package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasker` (no args) and `tasker list [--page <n>]`.
type ListCmd struct {
	page int // 0 keeps the saved page
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "Show the current page" }
func (c *ListCmd) Usage() string      { return "tasker list [--page <n>]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.page = 0
	fs.Func("page", "", func(s string) error {
		n, err := parsePageFlag(s)
		if err != nil {
			return err
		}
		c.page = n
		return nil
	})
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 0 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	s := openSession(cfg, svc, errOut)
	defer s.save()

	if err := s.ctl.Load(ctx); err != nil {
		return s.exitCode(err)
	}
	if c.page > 0 {
		if err := s.ctl.SetPage(ctx, c.page); err != nil {
			return s.exitCode(err)
		}
	}

	s.render(out)
	return exitcode.Success
}
