package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/export"
	"tasker/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
// Exports every task matching the active filters, not just the current page.
type ExportCmd struct {
	format  string
	outPath string
}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Export the filtered tasks" }
func (c *ExportCmd) Usage() string      { return "tasker export [--format json|csv|pdf] [--out <file>]" }
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	c.format, c.outPath = "", ""
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.outPath, "out", "", "")
	fs.StringVar(&c.outPath, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := c.format
	if name == "" {
		name = string(export.FormatJSON)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := openSession(cfg, svc, errOut)
	data, err := export.NewExporter(svc).Export(ctx, format, s.store.Query().Filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}

	if c.outPath == "" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.outPath, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.outPath, err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.outPath)
	}
	return exitcode.Success
}

// SetFormat sets the format flag (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOut sets the output file flag (for testing).
func (c *ExportCmd) SetOut(path string) {
	c.outPath = path
}
