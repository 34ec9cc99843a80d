package widget

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// InputChanged replaces the current input text.
type InputChanged struct{ Text string }

// Submit sends a free-text question.
type Submit struct{ Question string }

// SelectSuggested sends one of the predefined prompts.
type SelectSuggested struct{ Question string }

// Succeeded reports the router's answer for Ticket.
type Succeeded struct {
	Ticket string
	Text   string
}

// Failed reports a failed request for Ticket.
type Failed struct {
	Ticket string
	Err    error
}

// NewChat clears the conversation.
type NewChat struct{}

// ToggleTheme flips between light and dark.
type ToggleTheme struct{}

type (
	ShowLogin  struct{}
	HideLogin  struct{}
	ShowSignup struct{}
	HideSignup struct{}
)

// Login and Signup are stubs: they grant consent and reveal the history panel
// without collecting or checking any credentials.
type (
	Login  struct{}
	Signup struct{}
)

func (InputChanged) isEvent()    {}
func (Submit) isEvent()          {}
func (SelectSuggested) isEvent() {}
func (Succeeded) isEvent()       {}
func (Failed) isEvent()          {}
func (NewChat) isEvent()         {}
func (ToggleTheme) isEvent()     {}
func (ShowLogin) isEvent()       {}
func (HideLogin) isEvent()       {}
func (ShowSignup) isEvent()      {}
func (HideSignup) isEvent()      {}
func (Login) isEvent()           {}
func (Signup) isEvent()          {}

// Effect is a side effect requested by Reduce.
type Effect interface {
	isEffect()
}

// Dispatch asks the host to send Question to the router and report back
// with Succeeded or Failed carrying Ticket.
type Dispatch struct {
	Ticket   string
	Question string
	Consent  bool
}

// ScrollToLatest asks the host to bring the newest turn into view.
type ScrollToLatest struct{}

func (Dispatch) isEffect()       {}
func (ScrollToLatest) isEffect() {}
