// Package tui renders the conversation widget in a terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
	"github.com/zhouzirui/fishing-chat/backend/internal/widget"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 3

	// header and its border, input border, help line
	chromeHeight = 2 + 2 + 1
)

// Asker sends a question to the router.
type Asker interface {
	Ask(ctx context.Context, question string, consent bool) (string, error)
	Suggestions(ctx context.Context) ([]suggestion.Suggestion, error)
}

type askResultMsg struct {
	ticket string
	text   string
	err    error
}

type suggestionsMsg struct {
	items []suggestion.Suggestion
	err   error
}

// Model is the bubbletea model wrapping widget.State.
type Model struct {
	state       widget.State
	client      Asker
	suggestions []suggestion.Suggestion

	input    textarea.Model
	viewport viewport.Model
	width    int
	height   int
	styles   styles
}

// New returns a model backed by client. dark selects the initial theme.
func New(client Asker, dark bool) Model {
	ta := textarea.New()
	ta.Placeholder = "Send a message."
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.SetWidth(defaultWidth - 2)
	ta.Focus()

	m := Model{
		state:       widget.State{Dark: dark},
		client:      client,
		suggestions: suggestion.Seed(),
		input:       ta,
		viewport:    viewport.New(defaultWidth, defaultHeight-inputHeight-chromeHeight),
		width:       defaultWidth,
		height:      defaultHeight,
		styles:      newStyles(dark),
	}
	m.refreshTranscript()
	return m
}

// State exposes the current widget state.
func (m Model) State() widget.State {
	return m.state
}

// Init starts the cursor and fetches the suggested prompts.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchSuggestions())
}

func (m Model) fetchSuggestions() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		items, err := client.Suggestions(context.Background())
		return suggestionsMsg{items: items, err: err}
	}
}

// Update handles terminal and network messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case suggestionsMsg:
		// keep the built-in list when the backend is unreachable
		if msg.err == nil && len(msg.items) > 0 {
			m.suggestions = msg.items
			m.refreshTranscript()
		}
		return m, nil

	case askResultMsg:
		if msg.err != nil {
			return m.apply(widget.Failed{Ticket: msg.ticket, Err: msg.err})
		}
		return m.apply(widget.Succeeded{Ticket: msg.ticket, Text: msg.text})

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.Modals.Login || m.state.Modals.Signup {
		return m.handleModalKey(key)
	}

	switch key {
	case "enter":
		return m.apply(widget.Submit{Question: m.input.Value()})
	case "ctrl+n":
		return m.apply(widget.NewChat{})
	case "ctrl+t":
		return m.apply(widget.ToggleTheme{})
	case "ctrl+l":
		return m.apply(widget.ShowLogin{})
	case "ctrl+u":
		return m.apply(widget.ShowSignup{})
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if strings.HasPrefix(key, "alt+") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(key, "alt+"), "%d", &n); err == nil && n >= 1 && n <= len(m.suggestions) {
			return m.apply(widget.SelectSuggested{Question: m.suggestions[n-1].Question})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	next, effectCmd := m.apply(widget.InputChanged{Text: m.input.Value()})
	return next, tea.Batch(cmd, effectCmd)
}

func (m Model) handleModalKey(key string) (tea.Model, tea.Cmd) {
	login := m.state.Modals.Login
	switch key {
	case "esc":
		if login {
			return m.apply(widget.HideLogin{})
		}
		return m.apply(widget.HideSignup{})
	case "enter":
		if login {
			return m.apply(widget.Login{})
		}
		return m.apply(widget.Signup{})
	case "ctrl+u":
		return m.apply(widget.ShowSignup{})
	case "ctrl+l":
		return m.apply(widget.ShowLogin{})
	}
	return m, nil
}

// apply runs ev through the reducer and turns effects into commands.
func (m Model) apply(ev widget.Event) (Model, tea.Cmd) {
	prevDark := m.state.Dark
	next, effects := widget.Reduce(m.state, ev)
	m.state = next

	if m.state.Dark != prevDark {
		m.styles = newStyles(m.state.Dark)
	}
	if m.input.Value() != m.state.Input {
		m.input.SetValue(m.state.Input)
	}

	m.refreshTranscript()

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case widget.Dispatch:
			cmds = append(cmds, m.ask(e))
		case widget.ScrollToLatest:
			m.viewport.GotoBottom()
		}
	}
	return m, tea.Batch(cmds...)
}

// ask has no deadline; a hung backend leaves the widget awaiting a response.
func (m Model) ask(d widget.Dispatch) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		text, err := client.Ask(context.Background(), d.Question, d.Consent)
		return askResultMsg{ticket: d.Ticket, text: text, err: err}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(width - 2)
	m.refreshTranscript()
}

// bodyHeight is the space left for the transcript once the header, input,
// help line and any error banner are drawn.
func (m Model) bodyHeight() int {
	body := m.height - inputHeight - chromeHeight
	if m.state.Error != "" {
		body--
	}
	if body < 1 {
		body = 1
	}
	return body
}

func (m Model) transcriptWidth() int {
	if m.state.Modals.History {
		return m.width - historyWidth
	}
	return m.width
}

func (m *Model) refreshTranscript() {
	m.viewport.Width = m.transcriptWidth()
	m.viewport.Height = m.bodyHeight()
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
}
