// Package widget models the conversation widget as an explicit state machine.
//
// All transitions go through Reduce, which never mutates its input state and
// reports side effects (network dispatch, scrolling) as values for the host UI
// to execute.
package widget

import "strings"

// Phase is the coarse state of the widget.
type Phase int

const (
	Idle Phase = iota
	AwaitingResponse
	DisplayingError
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting-response"
	case DisplayingError:
		return "displaying-error"
	default:
		return "unknown"
	}
}

// Messages shown by the widget.
const (
	PendingPlaceholder      = "Loading..."
	GenericErrorMessage     = "An error occurred while fetching the response."
	UnexpectedFormatMessage = "Unexpected response format"
)

// Turn is one question/response pair. A pending turn has no paragraphs yet;
// a failed turn has none either but is no longer pending.
type Turn struct {
	Question   string
	Paragraphs []string
	Pending    bool
}

// Response renders the response as the widget would show it.
func (t Turn) Response() string {
	if t.Pending {
		return PendingPlaceholder
	}
	return strings.Join(t.Paragraphs, "\n")
}

// Modals holds the auxiliary panel visibility flags.
type Modals struct {
	Login   bool
	Signup  bool
	History bool
}

// State is the complete widget state. The zero value is a fresh session.
type State struct {
	Input     string
	Turns     []Turn
	Error     string
	Consent   bool
	Modals    Modals
	Dark      bool
	Submitted bool
	Phase     Phase

	// Ticket identifies the in-flight request; empty unless AwaitingResponse.
	Ticket string
}

// CanSubmit reports whether a new question would be accepted.
func (s State) CanSubmit() bool {
	return s.Phase != AwaitingResponse
}

// LastTurn returns the most recent turn.
func (s State) LastTurn() (Turn, bool) {
	if len(s.Turns) == 0 {
		return Turn{}, false
	}
	return s.Turns[len(s.Turns)-1], true
}

// SplitParagraphs splits text into paragraph units on newline boundaries.
// Empty lines are kept so spacing survives rendering.
func SplitParagraphs(text string) []string {
	return strings.Split(text, "\n")
}
