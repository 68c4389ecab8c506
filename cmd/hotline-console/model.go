package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/koscakluka/hotline-core/core/session"
)

// driver is the part of the orchestrator the console commands.
type driver interface {
	SubmitResponse(text string) error
	HangUp()
}

type (
	sessionMsg       session.CallSession
	sessionClosedMsg struct{}
	startDoneMsg     struct{ err error }
	submitDoneMsg    struct{ err error }
)

type model struct {
	driver  driver
	updates <-chan session.CallSession
	start   func(context.Context) error

	state  session.CallSession
	status string
	err    error

	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	theme      theme

	width  int
	height int
}

func newModel(d driver, updates <-chan session.CallSession, start func(context.Context) error) model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Placeholder = "Type your reply in English"
	input.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	th := newTheme()
	sp.Style = th.thinking

	return model{
		driver:     d,
		updates:    updates,
		start:      start,
		state:      session.New(),
		status:     "starting call...",
		input:      input,
		transcript: viewport.New(0, 0),
		spinner:    sp,
		theme:      th,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForSession(m.updates),
		startCmd(m.start),
	)
}

func waitForSession(updates <-chan session.CallSession) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return sessionClosedMsg{}
		}
		return sessionMsg(state)
	}
}

func startCmd(start func(context.Context) error) tea.Cmd {
	if start == nil {
		return nil
	}
	return func() tea.Msg {
		return startDoneMsg{err: start(context.Background())}
	}
}

func submitCmd(d driver, text string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: d.SubmitResponse(text)}
	}
}

func hangUpCmd(d driver) tea.Cmd {
	return func() tea.Msg {
		d.HangUp()
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderTranscript()

	case sessionMsg:
		m.applySession(session.CallSession(msg))
		cmds = append(cmds, waitForSession(m.updates))

	case sessionClosedMsg:
		m.input.Blur()

	case startDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "could not start the call"
		} else {
			m.status = ""
		}

	case submitDoneMsg:
		if msg.err != nil {
			m.status = "reply not delivered: " + msg.err.Error()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+e":
			if !m.state.IsTerminal() {
				m.status = "hanging up..."
				cmds = append(cmds, hangUpCmd(m.driver))
			}
			return m, tea.Batch(cmds...)
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" && m.state.AcceptsInput() {
				m.input.Reset()
				m.status = ""
				cmds = append(cmds, submitCmd(m.driver, text))
			}
			return m, tea.Batch(cmds...)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}

		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) applySession(state session.CallSession) {
	m.state = state

	if state.AcceptsInput() {
		m.input.Focus()
		if state.InputPrompt != "" {
			m.input.Placeholder = state.InputPrompt
		}
	} else {
		m.input.Blur()
	}

	if state.IsTerminal() && m.status == "hanging up..." {
		m.status = ""
	}

	m.renderTranscript()
}

func (m *model) resize() {
	headerHeight := lipgloss.Height(m.headerView())
	footerHeight := lipgloss.Height(m.footerView())

	height := m.height - headerHeight - footerHeight - 2
	if height < 3 {
		height = 3
	}
	width := m.width - 2
	if width < 20 {
		width = 20
	}

	m.transcript.Width = width
	m.transcript.Height = height
	m.input.Width = width - lipgloss.Width(m.input.Prompt) - 1
}

func (m *model) renderTranscript() {
	m.transcript.SetContent(renderTranscript(m.state.Transcript, m.transcript.Width, m.theme))
	m.transcript.GotoBottom()
}
