package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/fishing-chat/backend/internal/analysis/topic"
	"github.com/zhouzirui/fishing-chat/backend/internal/model/chat"
)

// ErrNoGenerator is returned for on-topic questions when no upstream is wired.
var ErrNoGenerator = errors.New("no generator configured")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Reply is the router's answer together with the route it took.
type Reply struct {
	Text     string
	Category topic.Category
}

// Service routes questions to a canned reply or the upstream generator.
type Service struct {
	classifier *topic.Classifier
	generator  Generator
	log        *logrus.Entry
}

// NewService wires the classifier and generator.
func NewService(classifier *topic.Classifier, generator Generator, logger *logrus.Logger) *Service {
	if classifier == nil {
		classifier = topic.Default()
	}
	return &Service{
		classifier: classifier,
		generator:  generator,
		log:        logger.WithField("component", "chat"),
	}
}

// Answer 对问题进行分类，问候与离题问题直接返回固定回复，钓鱼问题转发给上游模型。
// Upstream errors are returned unchanged in meaning (wrapped) and never retried.
func (s *Service) Answer(ctx context.Context, question string, consent bool) (Reply, error) {
	category := s.classifier.Classify(question)
	entry := s.log.WithFields(logrus.Fields{
		"category": category,
		"consent":  consent,
		"length":   len(question),
	})

	switch category {
	case topic.Greeting:
		entry.Debug("answered with greeting")
		return Reply{Text: chat.GreetingReply, Category: category}, nil
	case topic.OffTopic:
		entry.Debug("answered with redirect")
		return Reply{Text: chat.OffTopicReply, Category: category}, nil
	}

	if s.generator == nil {
		return Reply{Category: category}, ErrNoGenerator
	}

	text, err := s.generator.Generate(ctx, question)
	if err != nil {
		entry.WithError(err).Warn("upstream generation failed")
		return Reply{Category: category}, fmt.Errorf("answer question: %w", err)
	}
	if text == "" {
		text = chat.EmptyUpstream
	}

	entry.Info("answered from upstream")
	return Reply{Text: text, Category: category}, nil
}
