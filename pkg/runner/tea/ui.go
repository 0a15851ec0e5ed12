// Package teaui implements the interactive nestlist panel with Bubble Tea.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/runner/tea/internal/theme"
	"tableflip.dev/nestlist/pkg/store"
	"tableflip.dev/nestlist/pkg/tree"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeAddChild
	modeAddLeaf
	modeRename
	modeStep
)

const helpLine = "j/k move · a add · A add child · L add leaf · r rename · x remove · J/K reorder · [/] step · >/< indent · t folder/leaf · n normalize · q quit"

const leafMarker = "· "

// messages
type errMsg struct{ err error }
type storeEventMsg struct{ ev store.Event }

// reloadedMsg carries a session read from disk and the edit generation the
// model was at when the read started.
type reloadedMsg struct {
	sess *app.Session
	gen  int
}
// Model contains UI state.
type Model struct {
	svc  *app.Service
	ctx  context.Context
	sess *app.Session
	mode mode

	input  textinput.Model
	status string
	failed bool

	// gen counts local edits; a reload started before the latest edit is
	// stale.
	gen int

	stepDir   tree.Direction
	stepMoves []tree.Movement

	events <-chan store.Event

	theme      theme.Theme
	termWidth  int
	termHeight int
}

// New creates a UI model over an open session.
func New(ctx context.Context, svc *app.Service, sess *app.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		svc:        svc,
		ctx:        ctx,
		sess:       sess,
		mode:       modeNormal,
		input:      ti,
		theme:      theme.Default(),
		termWidth:  80,
		termHeight: 24,
	}
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg{ev}
	}
}

func (m Model) reload() tea.Cmd {
	svc, ctx, name, active, gen := m.svc, m.ctx, m.sess.Name, m.sess.ActiveIndex, m.gen
	return func() tea.Msg {
		sess, err := svc.Open(ctx, name)
		if err != nil {
			return errMsg{err}
		}
		if err := sess.Select(active); err != nil {
			// The document shrank; keep the index the file carries.
			svc.Logger().WithField("document", name).Debug("cursor reset on reload")
		}
		return reloadedMsg{sess: sess, gen: gen}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.input.Width = msg.Width - 10
	case errMsg:
		m.setError(msg.err)
	case reloadedMsg:
		if msg.gen != m.gen {
			// Read before a local edit was saved; read again to pick up both.
			return m, m.reload()
		}
		m.sess = msg.sess
	case storeEventMsg:
		cmds := []tea.Cmd{m.waitForEvent()}
		if msg.ev.Type == store.EventDocumentsInvalidated || msg.ev.Document == m.sess.Name {
			cmds = append(cmds, m.reload())
		}
		return m, tea.Batch(cmds...)
	case tea.KeyMsg:
		if m.mode == modeStep {
			return m.updateStep(msg)
		}
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.Entries())
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.sess.ActiveIndex > 0 {
			m.apply("", func(s *app.Session) error { return s.Select(s.ActiveIndex - 1) })
		}
	case "down", "j":
		if m.sess.ActiveIndex < n-1 {
			m.apply("", func(s *app.Session) error { return s.Select(s.ActiveIndex + 1) })
		}
	case "home", "g":
		if n > 0 {
			m.apply("", func(s *app.Session) error { return s.Select(0) })
		}
	case "end", "G":
		if n > 0 {
			m.apply("", func(s *app.Session) error { return s.Select(n - 1) })
		}
	case "a":
		return m.startInput(modeAdd, "")
	case "A":
		return m.startInput(modeAddChild, "")
	case "L":
		return m.startInput(modeAddLeaf, "")
	case "t":
		if item, ok := m.sess.Active(); ok {
			kind := tree.Leaf
			if item.Kind == tree.Leaf {
				kind = tree.Folder
			}
			m.apply("Now a "+kind.String(), func(s *app.Session) error { return s.SetKind(kind) })
			break
		}
		m.setError(app.ErrNoSelection)
	case "[":
		return m.startStep(tree.Up)
	case "]":
		return m.startStep(tree.Down)
	case "r":
		if item, ok := m.sess.Active(); ok {
			return m.startInput(modeRename, item.Name)
		}
		m.setError(app.ErrNoSelection)
	case "x", "delete":
		m.apply("Removed", func(s *app.Session) error {
			_, err := s.Remove()
			return err
		})
	case "K", "shift+up":
		m.apply("Moved up", func(s *app.Session) error { return s.Reorder(tree.Up) })
	case "J", "shift+down":
		m.apply("Moved down", func(s *app.Session) error { return s.Reorder(tree.Down) })
	case ">", "tab":
		m.apply("Indented", (*app.Session).Indent)
	case "<", "shift+tab":
		m.apply("Outdented", (*app.Session).Outdent)
	case "n":
		m.apply("Normalized", func(s *app.Session) error {
			s.Normalize()
			return nil
		})
	}
	return m, nil
}

// startStep applies the only movement on offer, or lists the choices when
// there are several.
func (m Model) startStep(dir tree.Direction) (tea.Model, tea.Cmd) {
	moves, err := m.sess.Movements(dir)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	switch len(moves) {
	case 0:
		m.setError(fmt.Errorf("%w: nothing to step %s", app.ErrRejected, dir))
	case 1:
		m.step(dir, moves[0].Action)
	default:
		m.mode = modeStep
		m.stepDir = dir
		m.stepMoves = moves
		m.status = ""
	}
	return m, nil
}

func (m Model) updateStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" || key == "q" {
		m.endStep()
		m.status = "Cancelled"
		m.failed = false
		return m, nil
	}
	if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= len(m.stepMoves) {
		action := m.stepMoves[i-1].Action
		m.endStep()
		m.step(m.stepDir, action)
	}
	return m, nil
}

func (m *Model) step(dir tree.Direction, action tree.Action) {
	m.apply("Stepped "+dir.String(), func(s *app.Session) error { return s.Step(dir, action) })
}

func (m *Model) endStep() {
	m.mode = modeNormal
	m.stepMoves = nil
}

// stepPrompt lists the pending movements as numbered choices.
func (m Model) stepPrompt() string {
	parts := make([]string, 0, len(m.stepMoves))
	for i, mv := range m.stepMoves {
		label := mv.Action.String()
		if target, ok := m.sess.Tree.ItemByID(mv.TargetID); ok {
			label += " " + target.Name
		}
		parts = append(parts, fmt.Sprintf("%d %s", i+1, label))
	}
	return "step " + m.stepDir.String() + ": " + strings.Join(parts, " · ") + " · esc cancel"
}

func (m Model) startInput(md mode, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeAdd:
			m.apply("Added", func(s *app.Session) error {
				_, err := s.Add(value, tree.NoParent)
				return err
			})
		case modeAddChild:
			m.apply("Added", func(s *app.Session) error {
				_, err := s.AddChild(value, tree.Folder)
				return err
			})
		case modeAddLeaf:
			m.apply("Added", func(s *app.Session) error {
				_, err := s.AddChild(value, tree.Leaf)
				return err
			})
		case modeRename:
			if value == "" {
				m.setError(errors.New("name is required"))
				break
			}
			m.apply("Renamed", func(s *app.Session) error { return s.Rename(value) })
		}
		m.endInput()
		return m, nil
	case "esc":
		m.endInput()
		m.status = "Cancelled"
		m.failed = false
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

// apply runs fn on the session and saves it. A rejected change leaves the
// session as it was and shows the reason.
func (m *Model) apply(done string, fn func(*app.Session) error) {
	if err := fn(m.sess); err != nil {
		m.setError(err)
		return
	}
	m.gen++
	if err := m.svc.Save(m.ctx, m.sess); err != nil {
		m.setError(err)
		return
	}
	m.status = done
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
}

// View renders the panel.
func (m Model) View() string {
	var b strings.Builder
	entries := m.sess.Entries()

	b.WriteString(m.theme.Title.Render(m.sess.Name))
	b.WriteString(m.theme.Count.Render(fmt.Sprintf(" %d items", len(entries))))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	if len(entries) == 0 {
		b.WriteString(m.theme.Empty.Render("  empty, press a to add an item"))
		b.WriteString("\n")
	}
	start := m.scrollOffset(len(entries), rows)
	for i := start; i < len(entries) && i < start+rows; i++ {
		b.WriteString(m.renderRow(entries[i], i == m.sess.ActiveIndex))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString(m.theme.Footer.Prompt.Render("add: ") + m.input.View())
	case modeAddChild:
		b.WriteString(m.theme.Footer.Prompt.Render("add child: ") + m.input.View())
	case modeAddLeaf:
		b.WriteString(m.theme.Footer.Prompt.Render("add leaf: ") + m.input.View())
	case modeRename:
		b.WriteString(m.theme.Footer.Prompt.Render("rename: ") + m.input.View())
	case modeStep:
		b.WriteString(m.theme.Footer.Prompt.Render(truncate.StringWithTail(m.stepPrompt(), uint(max(m.termWidth, 1)), "…")))
	default:
		if m.failed {
			b.WriteString(m.theme.Footer.Error.Render(m.status))
		} else {
			b.WriteString(m.theme.Footer.Status.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Help.Render(truncate.String(helpLine, uint(max(m.termWidth, 1)))))
	return b.String()
}

func (m Model) renderRow(e tree.Entry, active bool) string {
	guide := strings.Repeat("│ ", e.Depth)
	marker := ""
	if e.Item.Kind == tree.Leaf {
		marker = leafMarker
	}
	width := m.termWidth - len([]rune(guide)) - len([]rune(marker)) - 2
	name := e.Item.Name
	if width > 1 {
		name = truncate.StringWithTail(name, uint(width), "…")
	}
	style := m.theme.Row
	if active {
		style = m.theme.Selected
	}
	return "  " + m.theme.Guide.Render(guide) + m.theme.Leaf.Render(marker) + style.Render(name)
}

// visibleRows is the number of list rows that fit between the header and
// footer.
func (m Model) visibleRows() int {
	return max(m.termHeight-6, 1)
}

// scrollOffset keeps the active row on screen.
func (m Model) scrollOffset(n, rows int) int {
	active := m.sess.ActiveIndex
	if active < rows || n <= rows {
		return 0
	}
	return min(active-rows+1, n-rows)
}
