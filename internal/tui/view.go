package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	historyWidth = 28
	modalWidth   = 44
	helpLine     = "enter send • alt+1-6 suggestion • ctrl+n new chat • ctrl+t theme • ctrl+l login • ctrl+u sign up • ctrl+c quit"
)

// View renders the header, transcript, error banner and input.
func (m Model) View() string {
	if m.state.Modals.Login {
		return m.renderModal("Log in", "Sign in to keep your chat history.", "enter log in • ctrl+u sign up • esc close")
	}
	if m.state.Modals.Signup {
		return m.renderModal("Sign up", "Create an account to keep your chat history.", "enter sign up • ctrl+l log in • esc close")
	}

	var b strings.Builder
	b.WriteString(m.styles.header.Width(m.width).Render("Fishing Assistant"))
	b.WriteString("\n")

	body := m.viewport.View()
	if m.state.Modals.History {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderHistory(), body)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if m.state.Error != "" {
		b.WriteString(m.styles.errorText.Render(m.state.Error))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(helpLine))
	return b.String()
}

func (m Model) renderTranscript(width int) string {
	if !m.state.Submitted {
		return m.renderWelcome(width)
	}

	var b strings.Builder
	for i, turn := range m.state.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.user.Render("User: " + turn.Question))
		b.WriteString("\n")

		if turn.Pending {
			b.WriteString(m.styles.ai.Render("AI: " + turn.Response()))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.styles.ai.Render("AI:"))
		b.WriteString("\n")
		for _, p := range turn.Paragraphs {
			b.WriteString(m.styles.ai.Width(width).Render(p))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderWelcome(width int) string {
	var b strings.Builder
	b.WriteString("Welcome! Ask me anything about fishing.\n\n")
	for i, s := range m.suggestions {
		b.WriteString(m.styles.suggestion.Render(fmt.Sprintf("alt+%d  %s", i+1, s.Question)))
		b.WriteString("\n")
	}

	w := width - 2
	if w < 1 {
		w = 1
	}
	return m.styles.welcome.Width(w).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderHistory() string {
	inner := max(m.viewport.Height-2, 1)

	var b strings.Builder
	b.WriteString("History\n")
	if len(m.state.Turns) == 0 {
		b.WriteString(m.styles.help.Render("No questions yet"))
	}

	// newest questions win when the panel is full
	turns := m.state.Turns
	if len(turns) > inner-1 {
		turns = turns[len(turns)-max(inner-1, 0):]
	}
	for _, turn := range turns {
		b.WriteString("• " + truncate(turn.Question, historyWidth-6) + "\n")
	}
	return m.styles.panel.Width(historyWidth - 2).Height(inner).Render(strings.TrimRight(b.String(), "\n"))
}

// renderModal draws the account stub dialogs. No credentials are collected.
func (m Model) renderModal(title, body, help string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.user.Render(title),
		"",
		body,
		"",
		m.styles.help.Render(help),
	)
	box := m.styles.modal.Width(modalWidth).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
