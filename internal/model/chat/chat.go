package chat

// Request is the body accepted by POST /api/chat.
type Request struct {
	Question string `json:"question"`
	Consent  bool   `json:"consent"`
}

// Response is returned when the router produced an answer.
type Response struct {
	Response string `json:"response"`
}

// ErrorResponse carries either a plain message or the upstream error payload.
type ErrorResponse struct {
	Error any `json:"error"`
}

// Canned replies and fallbacks returned by the router.
const (
	GreetingReply    = "Hello! How can I assist you with fishing today?"
	OffTopicReply    = "I am a fishing chatbot and I can give answers related to fishing topics."
	EmptyUpstream    = "No response received"
	GenericError     = "An error occurred"
	MethodNotAllowed = "Method not allowed"
)
