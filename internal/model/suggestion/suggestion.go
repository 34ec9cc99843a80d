package suggestion

// Suggestion is a predefined prompt offered before the first question.
type Suggestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// Seed provides the default suggested questions shown on the welcome screen.
func Seed() []Suggestion {
	return []Suggestion{
		{ID: "best-times", Question: "What are the best times to fish?"},
		{ID: "fishing-knot", Question: "What is the best fishing knot to use?"},
		{ID: "rod-and-reel", Question: "How do I choose the right fishing rod and reel?"},
		{ID: "casting-accuracy", Question: "How can I improve my casting accuracy?"},
		{ID: "catch-and-release", Question: "How do I handle and release fish safely?"},
		{ID: "fishing-spots", Question: "How do I find good fishing spots?"},
	}
}
