package widget

import (
	"errors"

	"github.com/google/uuid"
)

var newTicket = uuid.NewString

// Reduce applies ev to s and returns the next state plus the effects the
// host must run. s is never modified.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case InputChanged:
		s.Input = ev.Text
		return s, nil

	case Submit:
		return submit(s, ev.Question)

	case SelectSuggested:
		return submit(s, ev.Question)

	case Succeeded:
		if s.Phase != AwaitingResponse || ev.Ticket != s.Ticket {
			return s, nil
		}
		s.Turns = resolveLast(s.Turns, SplitParagraphs(ev.Text))
		s.Phase = Idle
		s.Ticket = ""
		return s, []Effect{ScrollToLatest{}}

	case Failed:
		if s.Phase != AwaitingResponse || ev.Ticket != s.Ticket {
			return s, nil
		}
		s.Turns = resolveLast(s.Turns, nil)
		s.Error = GenericErrorMessage
		if errors.Is(ev.Err, ErrUnexpectedFormat) {
			s.Error = UnexpectedFormatMessage
		}
		s.Phase = DisplayingError
		s.Ticket = ""
		return s, []Effect{ScrollToLatest{}}

	case NewChat:
		s.Turns = nil
		s.Input = ""
		s.Error = ""
		s.Consent = false
		s.Submitted = false
		s.Phase = Idle
		s.Ticket = ""
		return s, []Effect{ScrollToLatest{}}

	case ToggleTheme:
		s.Dark = !s.Dark
		return s, nil

	case ShowLogin:
		s.Modals.Login = true
		s.Modals.Signup = false
		return s, nil

	case HideLogin:
		s.Modals.Login = false
		return s, nil

	case ShowSignup:
		s.Modals.Signup = true
		s.Modals.Login = false
		return s, nil

	case HideSignup:
		s.Modals.Signup = false
		return s, nil

	case Login, Signup:
		s.Modals.Login = false
		s.Modals.Signup = false
		s.Modals.History = true
		s.Consent = true
		return s, nil
	}

	return s, nil
}

// submit rejects while a request is in flight so that two completions can
// never race for the same placeholder.
func submit(s State, question string) (State, []Effect) {
	if !s.CanSubmit() {
		return s, nil
	}

	ticket := newTicket()
	turns := make([]Turn, len(s.Turns), len(s.Turns)+1)
	copy(turns, s.Turns)
	s.Turns = append(turns, Turn{Question: question, Pending: true})

	s.Input = ""
	s.Error = ""
	s.Submitted = true
	s.Phase = AwaitingResponse
	s.Ticket = ticket

	return s, []Effect{
		Dispatch{Ticket: ticket, Question: question, Consent: s.Consent},
		ScrollToLatest{},
	}
}

func resolveLast(turns []Turn, paragraphs []string) []Turn {
	out := make([]Turn, len(turns))
	copy(out, turns)
	if len(out) == 0 {
		return out
	}
	last := &out[len(out)-1]
	last.Pending = false
	last.Paragraphs = paragraphs
	return out
}
