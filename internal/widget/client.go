package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zhouzirui/fishing-chat/backend/internal/model/chat"
	"github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
)

// ErrUnexpectedFormat is returned when a 2xx reply lacks a response string.
var ErrUnexpectedFormat = errors.New("unexpected response format")

// StatusError is a non-2xx reply from the chat endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat endpoint returned status %d", e.StatusCode)
}

// Client talks to the chat backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL. The client imposes
// no timeout of its own; bound calls through the context if needed.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ask posts a question and returns the router's text.
func (c *Client) Ask(ctx context.Context, question string, consent bool) (string, error) {
	body, err := json.Marshal(chat.Request{Question: question, Consent: consent})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Response *string `json:"response"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Response == nil {
		return "", ErrUnexpectedFormat
	}
	return *out.Response, nil
}

// Suggestions lists the predefined prompts offered by the backend.
func (c *Client) Suggestions(ctx context.Context) ([]suggestion.Suggestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/suggestions", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var out []suggestion.Suggestion
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
	}
	return nil
}
