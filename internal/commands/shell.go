package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/syncctl"
)

func init() {
	Register(&ShellCmd{})
}

const shellPrompt = "tasker> "

// ShellCmd implements the interactive shell.
// The view stays in memory between lines; it is saved on exit.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the input reader (for testing). Defaults to stdin.
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return nil }
func (c *ShellCmd) Synopsis() string   { return "Interactive session" }
func (c *ShellCmd) Usage() string      { return "tasker shell" }
func (c *ShellCmd) NeedsBackend() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	sh := &shell{session: openSession(cfg, svc, errOut), out: out}
	defer sh.save()

	// A failed first load is reported; the shell stays usable.
	if err := sh.ctl.Load(ctx); err == nil {
		sh.render(out)
	}

	scanner := bufio.NewScanner(in)
	for {
		if !cfg.Quiet {
			fmt.Fprint(out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if sh.exec(ctx, strings.TrimSpace(scanner.Text())) {
			break
		}
	}
	if !cfg.Quiet {
		fmt.Fprintln(out)
	}
	return exitcode.Success
}

type shell struct {
	*session
	out io.Writer
}

// exec runs one line. Returns true when the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(sh.out, shellHelpText)
	case "ls", "list":
		sh.then(sh.ctl.Load(ctx), sh.showView)
	case "add", "create":
		sh.add(ctx, rest)
	case "form":
		output.FormatForm(sh.out, sh.store.Form())
	case "filter":
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			sh.report(errors.New("filter field required"))
			return false
		}
		sh.then(sh.ctl.SetFilter(ctx, field, value), sh.showView)
	case "reset":
		sh.then(sh.ctl.ClearFilters(ctx), sh.showView)
	case "page":
		n, err := parsePageFlag(rest)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.then(sh.ctl.SetPage(ctx, n), sh.showView)
	case "next", "n":
		sh.then(sh.ctl.NextPage(ctx), sh.showView)
	case "prev", "p":
		sh.then(sh.ctl.PrevPage(ctx), sh.showView)
	case "edit", "e":
		task, err := sh.rowTask(rest)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.store.BeginEdit(task)
		sh.showEdit()
	case "title":
		sh.then(sh.store.SetDraftTitle(rest), sh.showEdit)
	case "toggle":
		sh.then(sh.store.ToggleDraftCompleted(), sh.showEdit)
	case "save":
		sh.then(sh.ctl.Update(ctx), sh.showView)
	case "cancel":
		sh.store.CancelEdit()
	case "rm", "delete":
		task, err := sh.rowTask(rest)
		if err != nil {
			sh.report(err)
			return false
		}
		sh.then(sh.ctl.Remove(ctx, task.ID), sh.showView)
	default:
		fmt.Fprintf(sh.errOut, "error: unknown command: %s\n", name)
	}
	return false
}

// add submits the create form. Words after the flags replace the title;
// with none, the retained form is resubmitted.
func (sh *shell) add(ctx context.Context, rest string) {
	form := sh.store.Form()

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	priority := fs.String("priority", "", "")
	fs.StringVar(priority, "p", "", "")
	due := fs.String("due", form.DueDate, "")
	fs.StringVar(due, "d", form.DueDate, "")
	words := strings.Fields(rest)
	if err := fs.Parse(words); err != nil {
		sh.report(err)
		return
	}

	task, err := newTaskFromArgs(fs.Args(), *priority, *due, form.Priority)
	if err != nil {
		sh.report(err)
		return
	}
	if len(fs.Args()) == 0 {
		task.Title = form.Title
	} else {
		// Keep the title as typed, inner spacing included.
		task.Title = skipFields(rest, len(words)-len(fs.Args()))
	}
	sh.then(sh.ctl.Create(ctx, task), sh.showView)
}

// skipFields drops the first n whitespace-separated fields of s and
// returns the rest without leading space.
func skipFields(s string, n int) string {
	for i := 0; i < n; i++ {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			return ""
		}
		s = s[end:]
	}
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func (sh *shell) rowTask(arg string) (service.Task, error) {
	row, err := ParseRow(strings.Fields(arg))
	if err != nil {
		return service.Task{}, err
	}
	return taskAtRow(sh.store.View(), row)
}

// then runs next if err is nil, otherwise reports err.
func (sh *shell) then(err error, next func()) {
	if err != nil {
		sh.report(err)
		return
	}
	next()
}

// report prints local errors. Backend failures were already notified.
func (sh *shell) report(err error) {
	var be *syncctl.BackendError
	if errors.As(err, &be) || errors.Is(err, syncctl.ErrSuperseded) {
		return
	}
	fmt.Fprintf(sh.errOut, "error: %v\n", err)
}

func (sh *shell) showView() {
	sh.render(sh.out)
	if e, ok := sh.store.Edit(); ok {
		output.FormatEdit(sh.out, e)
	}
}

func (sh *shell) showEdit() {
	if e, ok := sh.store.Edit(); ok {
		output.FormatEdit(sh.out, e)
	}
}

const shellHelpText = `Commands:
  ls                                  reload and show the current page
  add [-p <priority>] [-d <date>] [title...]
                                      create a task; no title resubmits the form
  form                                show the create form
  filter <field> [value]              set or clear priority, completed, due-before
  reset                               drop all filters
  page <n> | next | prev              move between pages
  edit <row>                          start editing a task
  title <text>                        change the draft title
  toggle                              flip the draft completion
  save                                save the draft
  cancel                              discard the draft
  rm <row>                            delete a task
  help                                show this help
  quit                                leave the shell
`
