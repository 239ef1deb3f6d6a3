package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/logging"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/syncctl"
	"tasker/internal/viewstate"
)

// session is the view a command works on: the saved filters and page,
// restored into a store, plus the controller that keeps it in sync.
type session struct {
	cfg    *config.Config
	store  *viewstate.Store
	ctl    *syncctl.Controller
	logger *slog.Logger
	errOut io.Writer
}

// openSession restores the saved view. A broken view file is reported
// and replaced by the default view on save.
func openSession(cfg *config.Config, svc service.Service, errOut io.Writer) *session {
	logger := logging.New(cfg, errOut)
	store := viewstate.New(cfg.PageSize)

	saved, err := viewstate.LoadFile(cfg.ViewPath())
	if err == nil {
		err = store.Restore(saved)
	}
	if err != nil {
		logger.Warn("ignoring saved view", "path", cfg.ViewPath(), "error", err)
	}

	notify := syncctl.NotifierFunc(func(msg string, err error) {
		fmt.Fprintf(errOut, "error: %s: %v\n", msg, err)
	})

	return &session{
		cfg:    cfg,
		store:  store,
		ctl:    syncctl.New(svc, store, notify, logger),
		logger: logger,
		errOut: errOut,
	}
}

// save persists filters and page for the next invocation.
func (s *session) save() {
	if err := viewstate.SaveFile(s.cfg.ViewPath(), s.store.Saved()); err != nil {
		s.logger.Warn("failed to save view", "path", s.cfg.ViewPath(), "error", err)
	}
}

// render prints the current page.
func (s *session) render(out io.Writer) {
	output.FormatView(out, s.store.View(), s.cfg.Quiet)
}

// exitCode maps a controller error to an exit code.
// Backend failures were already reported by the notifier; local errors are printed here.
func (s *session) exitCode(err error) int {
	if err == nil || errors.Is(err, syncctl.ErrSuperseded) {
		return exitcode.Success
	}
	var be *syncctl.BackendError
	if errors.As(err, &be) {
		return exitcode.BackendError
	}
	fmt.Fprintf(s.errOut, "error: %v\n", err)
	return exitcode.UserError
}
