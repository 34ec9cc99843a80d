package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/fishing-chat/backend/internal/config"
)

var (
	_ model.BaseChatModel = (*CohereModel)(nil)
	_ model.BaseChatModel = (*OpenAIModel)(nil)
)

// Service forwards prompts to the configured upstream chat model.
type Service struct {
	chatModel model.BaseChatModel
	maxTokens int
	timeout   time.Duration
	log       *logrus.Entry
}

// NewService wraps chatModel. A non-positive timeout leaves the caller's
// context as the only bound.
func NewService(chatModel model.BaseChatModel, maxTokens int, timeout time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		chatModel: chatModel,
		maxTokens: maxTokens,
		timeout:   timeout,
		log:       logger.WithField("component", "generation"),
	}
}

// NewChatModel 根据配置创建上游模型实例。
func NewChatModel(ctx context.Context, cfg config.GenerationConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case config.ProviderCohere, "":
		return NewCohereModel(cfg.URL, cfg.APIKey, cfg.MaxTokens, http.DefaultClient), nil
	case config.ProviderOpenAI:
		return NewOpenAIModel(cfg.OpenAIModel, cfg.OpenAIBaseURL, openAIKey, cfg.MaxTokens, nil), nil
	case config.ProviderArk:
		return cfg.Ark.NewChatModel(ctx, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

// Generate sends prompt upstream with the configured output bound and
// returns the generated text, which may be empty.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if s == nil || s.chatModel == nil {
		return "", ErrNotConfigured
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := s.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, model.WithMaxTokens(s.maxTokens))
	if err != nil {
		s.log.WithError(err).WithField("elapsed", time.Since(start)).Warn("upstream generation failed")
		return "", fmt.Errorf("generate: %w", err)
	}
	if msg == nil {
		return "", nil
	}

	s.log.WithFields(logrus.Fields{
		"length":  len(msg.Content),
		"elapsed": time.Since(start),
	}).Debug("generated response")
	return msg.Content, nil
}
