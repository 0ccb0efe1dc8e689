// Package picker implements the interactive session browser behind
// "tmuxctl browse": a grouped session/window list with keyboard
// navigation, session creation and killing, backed by fresh listings
// from the tmux server.
package picker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obsidiansystems/libtmux/tmux"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	attachedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Choice is what the user picked before the browser exited.
type Choice struct {
	Session *tmux.Session
	// Window, when set, should be selected before attaching.
	Window *tmux.Window
}

// Browser runs the interactive session browser.
type Browser struct {
	Server *tmux.Server
}

// Run blocks until the user quits or picks a session. A nil Choice
// means the browser was dismissed without picking anything.
func (b *Browser) Run(ctx context.Context) (*Choice, error) {
	ti := textinput.New()
	ti.Placeholder = "new session name"
	ti.CharLimit = 64
	ti.Width = 40

	m := &model{
		server:    b.Server,
		ctx:       ctx,
		expanded:  map[string]bool{},
		textInput: ti,
	}
	final, err := m.runProgram()
	if err != nil {
		return nil, err
	}
	return final.choice, nil
}

func (m *model) runProgram() (*model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return nil, err
	}
	return out.(*model), nil
}

// view mode
type viewMode int

const (
	modeList viewMode = iota
	modeNewSession
)

type itemKind int

const (
	itemSession itemKind = iota
	itemWindow
)

// listItem is one visible row: a session header or a window under an
// expanded session.
type listItem struct {
	kind       itemKind
	sessionIdx int
	windowIdx  int // only for itemWindow
}

// messages
type snapshotMsg struct {
	sessions []*tmux.Session
	windows  map[string][]*tmux.Window // session id -> windows
	err      error
}

type actionMsg struct {
	info string
	err  error
}

type model struct {
	server *tmux.Server
	ctx    context.Context

	sessions []*tmux.Session
	windows  map[string][]*tmux.Window
	expanded map[string]bool // session id -> expanded
	items    []listItem
	cursor   int

	mode      viewMode
	textInput textinput.Model

	choice  *Choice
	message string
	loading bool

	width  int
	height int
}

func (m *model) Init() tea.Cmd {
	m.loading = true
	return m.refresh()
}

// refresh re-lists sessions and windows. Fresh snapshots every time;
// the tmux server is the source of truth.
func (m *model) refresh() tea.Cmd {
	server, ctx := m.server, m.ctx
	return func() tea.Msg {
		sessions, err := server.Sessions(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		all, err := server.Windows(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		byID := map[string][]*tmux.Window{}
		for _, w := range all {
			byID[w.SessionID()] = append(byID[w.SessionID()], w)
		}
		return snapshotMsg{sessions: sessions, windows: byID}
	}
}

// rebuildItems builds the flat visible row list from sessions plus the
// expanded state.
func (m *model) rebuildItems() {
	m.items = nil
	for si, s := range m.sessions {
		m.items = append(m.items, listItem{kind: itemSession, sessionIdx: si})
		if m.expanded[s.ID()] {
			for wi := range m.windows[s.ID()] {
				m.items = append(m.items, listItem{kind: itemWindow, sessionIdx: si, windowIdx: wi})
			}
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) selected() (listItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return listItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeNewSession {
			return m.handleNewSessionKey(msg)
		}
		return m.handleListKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.message = fmt.Sprintf("list failed: %v", msg.err)
			return m, nil
		}
		m.sessions = msg.sessions
		m.windows = msg.windows
		m.rebuildItems()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.message = msg.err.Error()
		} else {
			m.message = msg.info
		}
		m.loading = true
		return m, m.refresh()
	}

	return m, nil
}

func (m *model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "right", "l", "tab":
		if item, ok := m.selected(); ok && item.kind == itemSession {
			id := m.sessions[item.sessionIdx].ID()
			m.expanded[id] = !m.expanded[id]
			m.rebuildItems()
		}

	case "left", "h":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		if item.kind == itemWindow {
			// Jump to the session header above.
			for i := m.cursor - 1; i >= 0; i-- {
				if m.items[i].kind == itemSession && m.items[i].sessionIdx == item.sessionIdx {
					m.cursor = i
					break
				}
			}
			return m, nil
		}
		m.expanded[m.sessions[item.sessionIdx].ID()] = false
		m.rebuildItems()

	case "enter":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		choice := &Choice{Session: m.sessions[item.sessionIdx]}
		if item.kind == itemWindow {
			choice.Window = m.windows[choice.Session.ID()][item.windowIdx]
		}
		m.choice = choice
		return m, tea.Quit

	case "n":
		m.mode = modeNewSession
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case "x":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		server, ctx := m.server, m.ctx
		if item.kind == itemWindow {
			w := m.windows[m.sessions[item.sessionIdx].ID()][item.windowIdx]
			return m, func() tea.Msg {
				if err := w.Kill(ctx); err != nil {
					return actionMsg{err: err}
				}
				return actionMsg{info: fmt.Sprintf("killed window %s", w.Name())}
			}
		}
		s := m.sessions[item.sessionIdx]
		return m, func() tea.Msg {
			if err := server.KillSession(ctx, s.ID()); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{info: fmt.Sprintf("killed session %s", s.Name())}
		}

	case "r":
		m.loading = true
		m.message = ""
		return m, m.refresh()
	}

	return m, nil
}

func (m *model) handleNewSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.mode = modeList
		m.textInput.Blur()
		return m, nil

	case "enter":
		name := m.textInput.Value()
		m.mode = modeList
		m.textInput.Blur()
		if name == "" {
			return m, nil
		}
		server, ctx := m.server, m.ctx
		return m, func() tea.Msg {
			if _, err := server.NewSession(ctx, tmux.NewSessionOptions{Name: name}); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{info: fmt.Sprintf("created session %s", name)}
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if m.mode == modeNewSession {
		return titleStyle.Render("New Session") + "\n\n  " +
			m.textInput.View() + "\n\n" +
			dimStyle.Render("  Enter=create  Esc=cancel") + "\n"
	}

	out := titleStyle.Render("tmux sessions") + "  " +
		dimStyle.Render("Enter=attach  →=expand  n=new  x=kill  r=refresh  q=quit") + "\n"

	if m.loading && len(m.items) == 0 {
		return out + "  loading...\n"
	}
	if len(m.items) == 0 {
		return out + "  no sessions\n"
	}

	for i, item := range m.items {
		var row string
		if item.kind == itemSession {
			row = m.renderSessionRow(item)
		} else {
			row = m.renderWindowRow(item)
		}
		if i == m.cursor {
			row = selectedStyle.Render("→ " + row)
		} else {
			row = "  " + row
		}
		out += row + "\n"
	}

	if m.message != "" {
		out += errorStyle.Render("  "+m.message) + "\n"
	}
	return out
}

func (m *model) renderSessionRow(item listItem) string {
	s := m.sessions[item.sessionIdx]
	arrow := "▶"
	if m.expanded[s.ID()] {
		arrow = "▼"
	}
	row := fmt.Sprintf("%s %s %s", arrow, s.ID(), s.Name())
	if n := len(m.windows[s.ID()]); n > 0 {
		row += dimStyle.Render(fmt.Sprintf("  %d windows", n))
	}
	if s.Attached() {
		row += "  " + attachedStyle.Render("attached")
	}
	return row
}

func (m *model) renderWindowRow(item listItem) string {
	s := m.sessions[item.sessionIdx]
	w := m.windows[s.ID()][item.windowIdx]
	row := fmt.Sprintf("    %s: %s", w.Index(), w.Name())
	if w.Active() {
		row += " " + attachedStyle.Render("*")
	}
	return row
}
