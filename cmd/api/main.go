package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/fishing-chat/backend/internal/analysis/topic"
	"github.com/zhouzirui/fishing-chat/backend/internal/config"
	"github.com/zhouzirui/fishing-chat/backend/internal/handler"
	"github.com/zhouzirui/fishing-chat/backend/internal/logging"
	"github.com/zhouzirui/fishing-chat/backend/internal/model/suggestion"
	"github.com/zhouzirui/fishing-chat/backend/internal/service/chat"
	"github.com/zhouzirui/fishing-chat/backend/internal/service/generation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	logging.ApplyToStandard(logger)
	if envErr != nil {
		logger.WithError(envErr).Warn("failed to load .env file, continuing with system environment variables only")
	}

	classifier, err := newClassifier(cfg.Topic)
	if err != nil {
		logger.WithError(err).Fatal("failed to load topic keywords")
	}

	// Initialize upstream generation
	chatModel, err := generation.NewChatModel(ctx, cfg.Generation)
	if err != nil {
		logger.WithError(err).WithField("provider", cfg.Generation.Provider).
			Warn("generation provider unavailable, on-topic questions will fail")
	} else {
		logger.WithFields(logrus.Fields{
			"provider":   cfg.Generation.Provider,
			"max_tokens": cfg.Generation.MaxTokens,
		}).Info("generation provider initialized")
	}
	generationSvc := generation.NewService(chatModel, cfg.Generation.MaxTokens, cfg.Generation.Timeout, logger)

	chatSvc := chat.NewService(classifier, generationSvc, logger)
	suggestions := suggestion.NewMemoryStore(suggestion.Seed())

	router := handler.NewRouter(logger, cfg.Server, suggestions, chatSvc)

	startServer(ctx, logger, cfg.Server, router)
}

func newClassifier(cfg config.TopicConfig) (*topic.Classifier, error) {
	if cfg.KeywordsFile == "" {
		return topic.Default(), nil
	}
	kw, err := topic.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return nil, err
	}
	return topic.NewClassifier(kw), nil
}

func startServer(ctx context.Context, logger *logrus.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.WithFields(logrus.Fields{
		"addr":            addr,
		"chat_rate_limit": serverCfg.ChatRateLimit,
		"chat_rate_burst": serverCfg.ChatRateBurst,
	}).Info("fishing chat backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
