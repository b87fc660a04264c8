package config

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AIConfig holds tunables for the AI assist service. It lives in a
// separate ai.yml so prompt/model changes ship without a redeploy.
type AIConfig struct {
	CompletionModel string        `mapstructure:"completionModel"`
	EmbeddingModel  string        `mapstructure:"embeddingModel"`
	MaxTokens       int           `mapstructure:"maxTokens"`
	Temperature     float64       `mapstructure:"temperature"`
	TopK            int           `mapstructure:"topK"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryInitial    time.Duration `mapstructure:"retryInitial"`
}

func DefaultAIConfig() AIConfig {
	return AIConfig{
		CompletionModel: "gpt-4",
		EmbeddingModel:  "text-embedding-ada-002",
		MaxTokens:       500,
		Temperature:     0.7,
		TopK:            10,
		RetryAttempts:   3,
		RetryInitial:    time.Second,
	}
}

type AIConfigHolder struct {
	current atomic.Value // holds AIConfig
}

func NewAIConfigHolder() (*AIConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("ai")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/atlas")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &AIConfigHolder{}

	load := func() {
		cfg := DefaultAIConfig()
		if err := v.UnmarshalKey("ai", &cfg); err != nil {
			cfg = DefaultAIConfig()
		}
		cfg = cfg.withDefaults()
		holder.current.Store(cfg)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultAIConfig())
		return holder, nil
	}

	load()

	v.OnConfigChange(func(_ fsnotify.Event) {
		load()
	})
	v.WatchConfig()

	return holder, nil
}

// StaticAIConfig wraps a fixed configuration, bypassing file watching.
func StaticAIConfig(cfg AIConfig) *AIConfigHolder {
	holder := &AIConfigHolder{}
	holder.current.Store(cfg.withDefaults())
	return holder
}

// Current returns the latest AI configuration snapshot.
func (h *AIConfigHolder) Current() AIConfig {
	if h == nil {
		return DefaultAIConfig()
	}
	if cfg, ok := h.current.Load().(AIConfig); ok {
		return cfg
	}
	return DefaultAIConfig()
}

func (c AIConfig) withDefaults() AIConfig {
	def := DefaultAIConfig()
	if strings.TrimSpace(c.CompletionModel) == "" {
		c.CompletionModel = def.CompletionModel
	}
	if strings.TrimSpace(c.EmbeddingModel) == "" {
		c.EmbeddingModel = def.EmbeddingModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = def.Temperature
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = def.RetryAttempts
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = def.RetryInitial
	}
	return c
}
