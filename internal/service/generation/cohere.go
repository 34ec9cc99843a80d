package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const maxUpstreamBody = 1 << 20

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// CohereModel calls a prompt-in/text-out generate endpoint. It satisfies
// model.BaseChatModel so it can stand in for any eino chat model.
type CohereModel struct {
	url       string
	apiKey    func() string
	maxTokens int
	client    *http.Client
}

// NewCohereModel returns a model posting to url. apiKey is invoked on every
// request so key rotation in the environment takes effect immediately.
func NewCohereModel(url string, apiKey func() string, maxTokens int, client *http.Client) *CohereModel {
	if client == nil {
		client = &http.Client{}
	}
	return &CohereModel{url: url, apiKey: apiKey, maxTokens: maxTokens, client: client}
}

// Generate sends the latest user message as the prompt.
func (m *CohereModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	maxTokens := m.maxTokens
	options := model.GetCommonOptions(&model.Options{MaxTokens: &maxTokens}, opts...)
	if options.MaxTokens != nil {
		maxTokens = *options.MaxTokens
	}

	body, err := json.Marshal(generateRequest{Prompt: lastUserContent(input), MaxTokens: maxTokens})
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey())
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Payload: decodePayload(raw)}
	}

	// A success body without a usable text field yields empty content; the
	// caller substitutes its fallback reply.
	var out generateResponse
	_ = json.Unmarshal(raw, &out)

	return schema.AssistantMessage(out.Text, nil), nil
}

// Stream delivers the generated text as a single chunk; the endpoint does not stream.
func (m *CohereModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func lastUserContent(input []*schema.Message) string {
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] != nil && input[i].Role == schema.User {
			return input[i].Content
		}
	}
	return ""
}
