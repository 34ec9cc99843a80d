package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatchOf(t *testing.T, effects []Effect) Dispatch {
	t.Helper()
	for _, e := range effects {
		if d, ok := e.(Dispatch); ok {
			return d
		}
	}
	t.Fatalf("no Dispatch effect in %v", effects)
	return Dispatch{}
}

func TestSubmitAppendsPendingTurn(t *testing.T) {
	s := State{Input: "best bait for trout", Error: "old"}

	next, effects := Reduce(s, Submit{Question: "best bait for trout"})

	require.Len(t, next.Turns, 1)
	assert.True(t, next.Turns[0].Pending)
	assert.Equal(t, PendingPlaceholder, next.Turns[0].Response())
	assert.Empty(t, next.Input)
	assert.Empty(t, next.Error)
	assert.True(t, next.Submitted)
	assert.Equal(t, AwaitingResponse, next.Phase)

	d := dispatchOf(t, effects)
	assert.Equal(t, next.Ticket, d.Ticket)
	assert.Equal(t, "best bait for trout", d.Question)
	assert.Contains(t, effects, Effect(ScrollToLatest{}))

	assert.Empty(t, s.Turns, "input state must not be mutated")
}

func TestSucceededSplitsParagraphs(t *testing.T) {
	s, effects := Reduce(State{}, Submit{Question: "q"})
	d := dispatchOf(t, effects)

	next, effects := Reduce(s, Succeeded{Ticket: d.Ticket, Text: "A\nB"})

	last, ok := next.LastTurn()
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, last.Paragraphs)
	assert.False(t, last.Pending)
	assert.Equal(t, Idle, next.Phase)
	assert.Empty(t, next.Ticket)
	assert.Equal(t, []Effect{ScrollToLatest{}}, effects)

	assert.True(t, s.Turns[0].Pending, "previous state keeps its pending turn")
}

func TestFailedVoidsPendingTurn(t *testing.T) {
	s, effects := Reduce(State{}, Submit{Question: "q"})
	d := dispatchOf(t, effects)

	next, _ := Reduce(s, Failed{Ticket: d.Ticket, Err: &StatusError{StatusCode: 429}})

	last, _ := next.LastTurn()
	assert.Empty(t, last.Response())
	assert.False(t, last.Pending)
	assert.Equal(t, GenericErrorMessage, next.Error)
	assert.Equal(t, DisplayingError, next.Phase)
}

func TestFailedUnexpectedFormat(t *testing.T) {
	s, effects := Reduce(State{}, Submit{Question: "q"})
	d := dispatchOf(t, effects)

	next, _ := Reduce(s, Failed{Ticket: d.Ticket, Err: ErrUnexpectedFormat})
	assert.Equal(t, UnexpectedFormatMessage, next.Error)
}

func TestSubmitRejectedWhileAwaiting(t *testing.T) {
	s, _ := Reduce(State{}, Submit{Question: "first"})
	s, _ = Reduce(s, InputChanged{Text: "my draft"})

	next, effects := Reduce(s, Submit{Question: "second"})

	assert.Nil(t, effects)
	assert.Equal(t, s, next)

	next, effects = Reduce(s, SelectSuggested{Question: "How do I find good fishing spots?"})
	assert.Nil(t, effects)
	assert.Equal(t, s, next)
	assert.Equal(t, "my draft", next.Input)
}

func TestSubmitFromErrorState(t *testing.T) {
	s, effects := Reduce(State{}, Submit{Question: "first"})
	s, _ = Reduce(s, Failed{Ticket: dispatchOf(t, effects).Ticket, Err: errors.New("boom")})
	require.Equal(t, DisplayingError, s.Phase)

	next, effects := Reduce(s, Submit{Question: "second"})

	assert.Equal(t, AwaitingResponse, next.Phase)
	assert.Empty(t, next.Error)
	assert.Len(t, next.Turns, 2)
	assert.Equal(t, "second", dispatchOf(t, effects).Question)
}

func TestStaleCompletionIgnored(t *testing.T) {
	s, effects := Reduce(State{}, Submit{Question: "first"})
	stale := dispatchOf(t, effects).Ticket

	s, _ = Reduce(s, NewChat{})
	s, effects = Reduce(s, Submit{Question: "second"})
	current := dispatchOf(t, effects).Ticket
	require.NotEqual(t, stale, current)

	next, effects := Reduce(s, Succeeded{Ticket: stale, Text: "late"})
	assert.Nil(t, effects)
	assert.True(t, next.Turns[0].Pending)

	next, _ = Reduce(next, Failed{Ticket: stale, Err: errors.New("late")})
	assert.Empty(t, next.Error)
	assert.Equal(t, AwaitingResponse, next.Phase)
}

func TestSelectSuggestedIsSubmit(t *testing.T) {
	next, effects := Reduce(State{}, SelectSuggested{Question: "How can I improve my casting accuracy?"})

	require.Len(t, next.Turns, 1)
	assert.Equal(t, "How can I improve my casting accuracy?", next.Turns[0].Question)
	assert.Empty(t, next.Input)
	assert.Equal(t, "How can I improve my casting accuracy?", dispatchOf(t, effects).Question)
}

func TestNewChatResets(t *testing.T) {
	s, _ := Reduce(State{}, Login{})
	s, effects := Reduce(s, Submit{Question: "one"})
	s, _ = Reduce(s, Failed{Ticket: dispatchOf(t, effects).Ticket, Err: errors.New("x")})
	s, _ = Reduce(s, InputChanged{Text: "draft"})
	s, _ = Reduce(s, ToggleTheme{})

	next, _ := Reduce(s, NewChat{})

	assert.Empty(t, next.Turns)
	assert.Empty(t, next.Input)
	assert.Empty(t, next.Error)
	assert.False(t, next.Consent)
	assert.False(t, next.Submitted)
	assert.Equal(t, Idle, next.Phase)
	assert.True(t, next.Dark, "theme survives a new chat")
}

func TestConsentFlowsIntoDispatch(t *testing.T) {
	s, _ := Reduce(State{}, Signup{})
	_, effects := Reduce(s, Submit{Question: "q"})
	assert.True(t, dispatchOf(t, effects).Consent)
}

func TestModalStubs(t *testing.T) {
	s, _ := Reduce(State{}, ShowLogin{})
	assert.True(t, s.Modals.Login)

	s, _ = Reduce(s, ShowSignup{})
	assert.False(t, s.Modals.Login)
	assert.True(t, s.Modals.Signup)

	s, _ = Reduce(s, HideSignup{})
	assert.False(t, s.Modals.Signup)
	assert.False(t, s.Consent)

	s, _ = Reduce(s, ShowLogin{})
	s, _ = Reduce(s, Login{})
	assert.False(t, s.Modals.Login)
	assert.True(t, s.Modals.History)
	assert.True(t, s.Consent)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting-response", AwaitingResponse.String())
	assert.Equal(t, "displaying-error", DisplayingError.String())
}
