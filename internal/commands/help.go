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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasker help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasker                                             Show the current page
  tasker list [common flags] [--page <n>]            Reload and show the current page
  tasker add [common flags] [--priority <p>] [--due <date>] <title...>
  tasker create [common flags] [--priority <p>] [--due <date>] <title...>
  tasker done [common flags] <row>
  tasker edit [common flags] [--title <text>] [--completed <bool>] <row>
  tasker rm [common flags] <row...>
  tasker filter [common flags] <priority|completed|due-before> [value]
  tasker reset [common flags]
  tasker page [common flags] <n>
  tasker next [common flags]
  tasker prev [common flags]
  tasker export [common flags] [--format json|csv|pdf] [--out <file>]
  tasker shell [common flags]
  tasker help
  tasker version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Task API base URL (default $TASKER_API_URL or http://localhost:5080/api)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
