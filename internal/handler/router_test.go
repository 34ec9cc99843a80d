package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zhouzirui/fishing-chat/backend/internal/analysis/topic"
	"github.com/zhouzirui/fishing-chat/backend/internal/config"
	"github.com/zhouzirui/fishing-chat/backend/internal/logging"
	"github.com/zhouzirui/fishing-chat/backend/internal/model/chat"
	"github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
	chatservice "github.com/zhouzirui/fishing-chat/backend/internal/service/chat"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

func newTestRouter() http.Handler {
	logger := logging.Discard()
	chatSvc := chatservice.NewService(topic.Default(), echoGenerator{}, logger)
	return NewRouter(logger, config.ServerConfig{AllowedOrigin: "*"}, suggestion.NewMemoryStore(suggestion.Seed()), chatSvc)
}

func TestRouterHealth(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterChatEndpoint(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":"Best bait for trout","consent":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body chat.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Response != "echo: Best bait for trout" {
		t.Fatalf("unexpected response %q", body.Response)
	}
}

func TestRouterSuggestions(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/suggestions", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterChatRateLimit(t *testing.T) {
	logger := logging.Discard()
	chatSvc := chatservice.NewService(topic.Default(), echoGenerator{}, logger)
	server := config.ServerConfig{AllowedOrigin: "*", ChatRateLimit: 0.01, ChatRateBurst: 1}
	router := NewRouter(logger, server, suggestion.NewMemoryStore(suggestion.Seed()), chatSvc)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":"Best bait for trout"}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := post(); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the burst is spent, got %d", code)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health must not be limited, got %d", resp.Code)
	}
}
