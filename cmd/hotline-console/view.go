package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/koscakluka/hotline-core/core/call"
	"github.com/koscakluka/hotline-core/core/session"
	"github.com/muesli/reflow/wordwrap"
)

type theme struct {
	header     lipgloss.Style
	phase      lipgloss.Style
	panel      lipgloss.Style
	hotline    lipgloss.Style
	user       lipgloss.Style
	translated lipgloss.Style
	pending    lipgloss.Style
	thinking   lipgloss.Style
	suggestion lipgloss.Style
	errorText  lipgloss.Style
	help       lipgloss.Style
}

func newTheme() theme {
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	pink := lipgloss.Color("#ff71ce")
	muted := lipgloss.Color("#9ca3d8")

	return theme{
		header:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		phase:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		panel:      lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(muted),
		hotline:    lipgloss.NewStyle().Foreground(blue).Bold(true),
		user:       lipgloss.NewStyle().Foreground(mint).Bold(true),
		translated: lipgloss.NewStyle().Foreground(muted),
		pending:    lipgloss.NewStyle().Italic(true),
		thinking:   lipgloss.NewStyle().Foreground(mint),
		suggestion: lipgloss.NewStyle().Foreground(mint).Italic(true),
		errorText:  lipgloss.NewStyle().Foreground(pink).Bold(true),
		help:       lipgloss.NewStyle().Foreground(muted),
	}
}

func (m model) View() string {
	body := m.theme.panel.Render(m.transcript.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m model) headerView() string {
	title := fmt.Sprintf("Calling %s", strings.ToUpper(string(m.state.Target)))
	if m.state.CallID != "" {
		title += " · " + m.state.CallID
	}
	return m.theme.header.Render(title + "  " + m.theme.phase.Render(phaseLabel(m.state.Phase)))
}

func (m model) footerView() string {
	lines := []string{}

	if status := m.agentStatus(); status != "" {
		lines = append(lines, status)
	}
	if m.state.Error != "" {
		lines = append(lines, m.theme.errorText.Render("Error: "+m.state.Error))
	} else if m.err != nil {
		lines = append(lines, m.theme.errorText.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		lines = append(lines, m.theme.help.Render(m.status))
	}

	if m.state.AcceptsInput() {
		lines = append(lines, m.input.View())
	}
	lines = append(lines, m.theme.help.Render("enter send · ctrl+e hang up · ctrl+c quit"))

	return strings.Join(lines, "\n")
}

func (m model) agentStatus() string {
	switch {
	case m.state.IsTerminal():
		return ""
	case m.state.AgentThinking:
		return m.spinner.View() + " " + m.theme.thinking.Render("Agent is preparing a reply...")
	case m.state.AgentSuggestion != "" && m.state.AutoSend:
		return m.theme.suggestion.Render(fmt.Sprintf("Agent replied (sent automatically after %s): %s",
			m.state.AutoSendDelay.Round(100*time.Millisecond), m.state.AgentSuggestion))
	case m.state.AgentSuggestion != "":
		return m.theme.suggestion.Render("Agent replied: " + m.state.AgentSuggestion)
	}
	return ""
}

func phaseLabel(phase call.Phase) string {
	switch phase {
	case call.PhaseGatheringInfo:
		return "preparing"
	case call.PhaseReadyToCall:
		return "ready to call"
	case call.PhaseDialing:
		return "dialing..."
	case call.PhaseConnected:
		return "connected"
	case call.PhaseCAFSpeaking:
		return "hotline speaking"
	case call.PhaseWaitingUser:
		return "your turn"
	case call.PhaseUserSpeaking:
		return "speaking for you"
	case call.PhaseEnded:
		return "call ended"
	case call.PhaseFailed:
		return "call failed"
	}
	return strings.ReplaceAll(string(phase), "_", " ")
}

func renderTranscript(transcript []session.TranscriptEntry, width int, th theme) string {
	if width <= 0 {
		width = 80
	}
	if len(transcript) == 0 {
		return th.help.Render("Waiting for the hotline...")
	}

	blocks := make([]string, 0, len(transcript))
	for _, entry := range transcript {
		blocks = append(blocks, renderEntry(entry, width, th))
	}
	return strings.Join(blocks, "\n\n")
}

func renderEntry(entry session.TranscriptEntry, width int, th theme) string {
	label := th.hotline.Render("Hotline")
	if entry.Speaker == call.SpeakerUser {
		label = th.user.Render("You")
	}
	label += " " + th.translated.Render(entry.Timestamp.Format("15:04:05"))

	text := wordwrap.String(entry.SourceText, width)
	if !entry.IsFinal {
		text = th.pending.Render(text + " …")
	}

	lines := []string{label, text}
	if entry.TranslatedText != "" {
		lines = append(lines, th.translated.Render(wordwrap.String(entry.TranslatedText, width)))
	}
	return strings.Join(lines, "\n")
}
