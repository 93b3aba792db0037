package config

import (
	"golang-news-sentiment/internal/fetcher"
	"golang-news-sentiment/pkg/config"
)

// Analyzer holds the sentiment ensemble configuration.
type Analyzer struct {
	ConfidenceThreshold float64            `mapstructure:"confidence_threshold"`
	ModelWeights        map[string]float64 `mapstructure:"model_weights"`
	ResultCacheTTL      string             `mapstructure:"result_cache_ttl"`
}

// HuggingFace holds the configuration for the hosted transformer model.
type HuggingFace struct {
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	APIToken            string `mapstructure:"api_token"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Scheduler holds the configuration for periodic analysis runs.
type Scheduler struct {
	Enabled      bool     `mapstructure:"enabled"`
	CronSpec     string   `mapstructure:"cron_spec"`
	Topics       []string `mapstructure:"topics"`
	ArticleLimit int      `mapstructure:"article_limit"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Analyzer    Analyzer        `mapstructure:"analyzer"`
	News        fetcher.Config  `mapstructure:"news"`
	HuggingFace HuggingFace     `mapstructure:"huggingface"`
	Gemini      Gemini          `mapstructure:"gemini"`
	Scheduler   Scheduler       `mapstructure:"scheduler"`
	Telegram    Telegram        `mapstructure:"telegram"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
