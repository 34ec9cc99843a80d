package generation

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIModel adapts the go-openai chat completion API to model.BaseChatModel.
type OpenAIModel struct {
	model      string
	baseURL    string
	apiKey     func() string
	maxTokens  int
	httpClient *http.Client
}

// NewOpenAIModel builds an adapter. A client is created per call so that
// apiKey is resolved at request time.
func NewOpenAIModel(modelName, baseURL string, apiKey func() string, maxTokens int, httpClient *http.Client) *OpenAIModel {
	return &OpenAIModel{
		model:      modelName,
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxTokens:  maxTokens,
		httpClient: httpClient,
	}
}

func (m *OpenAIModel) client() *openai.Client {
	cfg := openai.DefaultConfig(m.apiKey())
	if m.baseURL != "" {
		cfg.BaseURL = m.baseURL
	}
	if m.httpClient != nil {
		cfg.HTTPClient = m.httpClient
	}
	return openai.NewClientWithConfig(cfg)
}

// Generate runs a single chat completion.
func (m *OpenAIModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	maxTokens := m.maxTokens
	options := model.GetCommonOptions(&model.Options{MaxTokens: &maxTokens}, opts...)
	if options.MaxTokens != nil {
		maxTokens = *options.MaxTokens
	}

	resp, err := m.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     m.model,
		Messages:  toOpenAIMessages(input),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return schema.AssistantMessage("", nil), nil
	}
	return schema.AssistantMessage(resp.Choices[0].Message.Content, nil), nil
}

// Stream delivers the completion as a single chunk.
func (m *OpenAIModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toOpenAIMessages(input []*schema.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case schema.System:
			role = openai.ChatMessageRoleSystem
		case schema.Assistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return out
}

func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			StatusCode: apiErr.HTTPStatusCode,
			Payload:    map[string]any{"message": apiErr.Message, "type": apiErr.Type},
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	return &UpstreamError{Err: err}
}
