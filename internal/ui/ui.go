package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"wordreader/internal/domain"
	"wordreader/internal/service"
)

// logoutTimeout bounds the session record POST made by :logout
const logoutTimeout = 15 * time.Second

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeCommand
)

// changeMsg is delivered whenever the workspace reports a visible change
type changeMsg struct{}

// noticeMsg carries the outcome of a command that ran off the UI goroutine
type noticeMsg struct {
	text string
	err  error
}

type Model struct {
	ws      *service.Workspace
	logger  *zap.Logger
	changes chan struct{}
	copy    func(string) error

	cursor        domain.Coordinate
	mode          mode
	input         string
	status        string
	statusIsError bool
	width, height int
}

// New builds the drill UI over ws. It takes over the workspace's change
// callback to redraw on highlight and timer updates.
func New(ws *service.Workspace, logger *zap.Logger) Model {
	changes := make(chan struct{}, 1)
	ws.SetOnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m := Model{
		ws:      ws,
		logger:  logger,
		changes: changes,
		copy:    clipboard.WriteAll,
		status:  "Press : for commands, p to play, q to quit",
	}
	m.clampCursor()
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return changeMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		m.clampCursor()
		return m, waitForChange(m.changes)
	case noticeMsg:
		if msg.err != nil {
			m.fail(msg.err)
		} else {
			m.notice(msg.text)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeCommand:
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "enter":
		if m.cursor.IsZero() {
			m.notice("Add a row first (a)")
			break
		}
		text, _ := m.ws.Table().Cell(m.cursor)
		m.mode = modeEdit
		m.input = text
	case "a":
		row := m.ws.AddRow()
		m.cursor = domain.Coordinate{Row: row, Col: 1}
		m.notice(fmt.Sprintf("Row %d added", row))
	case "c":
		m.ws.AddColumn("")
		m.clampCursor()
		m.notice("Column added")
	case "p":
		if err := m.ws.Play(0); err != nil {
			m.fail(err)
			break
		}
		m.notice("Playing")
	case " ":
		if m.ws.Paused() {
			m.ws.Resume()
			m.notice("Resumed")
		} else {
			m.ws.Pause()
			m.notice("Paused")
		}
	case "x":
		m.ws.Stop()
		m.notice("Stopped")
	case "y":
		export := m.ws.Export()
		if err := m.copy(export); err != nil {
			m.fail(fmt.Errorf("copy to clipboard: %w", err))
			break
		}
		m.notice("Copied to clipboard: " + export)
	case ":":
		m.mode = modeCommand
		m.input = ""
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = ""
	case tea.KeyEnter:
		if err := m.ws.SetCell(m.cursor, m.input); err != nil {
			m.fail(err)
		}
		m.mode = modeNormal
		m.input = ""
	default:
		m.input = editInput(m.input, msg)
	}
	return m, nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = ""
	case tea.KeyEnter:
		line := m.input
		m.mode = modeNormal
		m.input = ""
		return m.execute(line)
	default:
		m.input = editInput(m.input, msg)
	}
	return m, nil
}

// editInput applies a key press to a single-line input
func editInput(input string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(input); len(r) > 0 {
			return string(r[:len(r)-1])
		}
	case tea.KeySpace:
		return input + " "
	case tea.KeyRunes:
		return input + string(msg.Runes)
	}
	return input
}

func (m *Model) move(dRow, dCol int) {
	if m.cursor.IsZero() {
		m.clampCursor()
		return
	}
	m.cursor.Row += dRow
	m.cursor.Col += dCol
	m.clampCursor()
}

// clampCursor keeps the cursor on a data cell, or zero when there is none
func (m *Model) clampCursor() {
	t := m.ws.Table()
	if t.RowCount() == 0 {
		m.cursor = domain.Coordinate{}
		return
	}
	m.cursor.Row = clamp(m.cursor.Row, 1, t.RowCount())
	m.cursor.Col = clamp(m.cursor.Col, 1, t.Width())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) notice(text string) {
	m.status = text
	m.statusIsError = false
}

func (m *Model) fail(err error) {
	m.logger.Warn("Command failed", zap.Error(err))
	m.status = capitalize(err.Error())
	m.statusIsError = true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// logout runs off the UI goroutine because it waits on the relay
func logout(ws *service.Workspace) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()

		email := ws.CurrentUser()
		if err := ws.Logout(ctx); err != nil {
			if errors.Is(err, service.ErrSessionNotDelivered) {
				err = fmt.Errorf("%s logged out, but %w", email, err)
			}
			return noticeMsg{err: err}
		}
		return noticeMsg{text: fmt.Sprintf("%s logged out, session record sent", email)}
	}
}
