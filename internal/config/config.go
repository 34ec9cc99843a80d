package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Supported upstream generation providers.
const (
	ProviderCohere = "cohere"
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// DefaultGenerateURL is the fixed text-generation endpoint used by the cohere provider.
const DefaultGenerateURL = "https://api.cohere.ai/generate"

// Config 聚合整个服务的配置项。
type Config struct {
	Server     ServerConfig
	Generation GenerationConfig
	Topic      TopicConfig
	Log        LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	reportCaller, err := parseBoolEnv("LOG_REPORT_CALLER", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Generation: generation,
		Topic:      TopicConfig{KeywordsFile: strings.TrimSpace(os.Getenv("TOPIC_KEYWORDS_FILE"))},
		Log: LogConfig{
			Level:        getEnvOrDefault("LOG_LEVEL", "info"),
			Format:       getEnvOrDefault("LOG_FORMAT", "text"),
			ReportCaller: reportCaller,
		},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr          string
	AllowedOrigin string

	// ChatRateLimit is the sustained per-client request rate on /api/chat;
	// zero disables limiting.
	ChatRateLimit float64
	ChatRateBurst int
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	origin := getEnvOrDefault("ALLOWED_ORIGIN", "*")

	rateLimit, err := parseFloatEnv("CHAT_RATE_LIMIT", 0)
	if err != nil {
		return ServerConfig{}, err
	}
	if rateLimit < 0 {
		return ServerConfig{}, fmt.Errorf("invalid CHAT_RATE_LIMIT value %v: must not be negative", rateLimit)
	}

	burst := 5
	if override, err := parseOptionalIntEnv("CHAT_RATE_BURST"); err != nil {
		return ServerConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ServerConfig{}, fmt.Errorf("invalid CHAT_RATE_BURST value %d: must be positive", *override)
		}
		burst = *override
	}

	cfg := ServerConfig{AllowedOrigin: origin, ChatRateLimit: rateLimit, ChatRateBurst: burst}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		cfg.Addr = port
		return cfg, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	cfg.Addr = ":" + port
	return cfg, nil
}

// TopicConfig points at an optional keyword override file.
type TopicConfig struct {
	KeywordsFile string
}

// LogConfig controls logger level and output format ("text" or "json").
type LogConfig struct {
	Level        string
	Format       string
	ReportCaller bool
}

// GenerationConfig 描述上游文本生成服务配置。
type GenerationConfig struct {
	Provider  string
	URL       string
	MaxTokens int
	Timeout   time.Duration

	// KeyEnv lists the environment variables consulted, in order, for the
	// cohere bearer token. The value is looked up on every request.
	KeyEnv []string

	OpenAIModel   string
	OpenAIBaseURL string

	Ark ArkConfig
}

// APIKey reads the cohere key from the environment at call time.
func (c GenerationConfig) APIKey() string {
	for _, name := range c.KeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// ArkConfig 描述火山方舟大模型相关配置。
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context, maxTokens int) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var limit *int
	if maxTokens > 0 {
		val := maxTokens
		limit = &val
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
		MaxTokens: limit,
	})
	if err != nil {
		return nil, err
	}
	return chatModel, nil
}

func loadGenerationConfig() (GenerationConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("GENERATION_PROVIDER", ProviderCohere))
	switch provider {
	case ProviderCohere, ProviderOpenAI, ProviderArk:
	default:
		return GenerationConfig{}, fmt.Errorf("invalid GENERATION_PROVIDER value %q", provider)
	}

	maxTokens := 300
	if override, err := parseOptionalIntEnv("GENERATION_MAX_TOKENS"); err != nil {
		return GenerationConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return GenerationConfig{}, fmt.Errorf("invalid GENERATION_MAX_TOKENS value %d: must be positive", *override)
		}
		maxTokens = *override
	}

	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("GENERATION_TIMEOUT"); err != nil {
		return GenerationConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
	}

	return GenerationConfig{
		Provider:      provider,
		URL:           getEnvOrDefault("GENERATION_URL", DefaultGenerateURL),
		MaxTokens:     maxTokens,
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		KeyEnv:        []string{"cohere_api_key", "COHERE_API_KEY"},
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		Ark: ArkConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:     strings.TrimSpace(os.Getenv("Model")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
