package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
	due      string
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasker add [--priority High|Medium|Low] [--due YYYY-MM-DD] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.priority, c.due = "", ""
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := newTaskFromArgs(args, c.priority, c.due, service.PriorityMedium)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := openSession(cfg, svc, errOut)
	defer s.save()

	if err := s.ctl.Create(ctx, task); err != nil {
		return s.exitCode(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// newTaskFromArgs builds a create form from positional words and flag values.
// Validation of the title is left to the controller.
func newTaskFromArgs(args []string, priority, due string, fallback service.Priority) (service.NewTask, error) {
	t := service.NewTask{
		Title:    strings.Join(args, " "),
		Priority: fallback,
		DueDate:  strings.TrimSpace(due),
	}
	if strings.TrimSpace(priority) != "" {
		p, err := service.ParsePriority(priority)
		if err != nil {
			return service.NewTask{}, err
		}
		t.Priority = p
	}
	return t, nil
}
