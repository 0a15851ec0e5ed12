package teaui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"tableflip.dev/nestlist/pkg/app"
)

// UI runs the interactive panel for one document.
type UI struct {
	Service  *app.Service
	Document string
}

// Do opens the document and blocks until the user quits.
func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("ui: no service")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("ui: stdout is not a terminal")
	}

	sess, err := u.Service.Open(ctx, u.Document)
	if err != nil {
		return err
	}

	m := New(ctx, u.Service, sess)
	if events, err := u.Service.Watch(ctx); err != nil {
		u.Service.Logger().WithError(err).Warn("live reload disabled")
	} else {
		m.events = events
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
