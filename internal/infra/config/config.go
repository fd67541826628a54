package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Summary SummaryConfig `yaml:"summary"`
	LLM     LLMConfig     `yaml:"llm"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// SummaryConfig defines heuristics for the summarizer domain.
type SummaryConfig struct {
	HistorySize       int    `yaml:"historySize"`
	MaxPromptTokens   int    `yaml:"maxPromptTokens"`
	TokenizerEncoding string `yaml:"tokenizerEncoding"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// IngestConfig controls upload staging and the per-format extractors.
type IngestConfig struct {
	TempDir        string        `yaml:"tempDir"`
	MaxUploadBytes int64         `yaml:"maxUploadBytes"`
	FetchTimeout   time.Duration `yaml:"fetchTimeout"`
	UserAgent      string        `yaml:"userAgent"`
	TesseractPath  string        `yaml:"tesseractPath"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("SUMMARY_HISTORY_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.HistorySize = parsed
		}
	}
	if v := os.Getenv("SUMMARY_MAX_PROMPT_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MaxPromptTokens = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("INGEST_TEMP_DIR"); v != "" {
		cfg.Ingest.TempDir = v
	}
	if v := os.Getenv("INGEST_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Ingest.MaxUploadBytes = parsed
		}
	}
	if v := os.Getenv("INGEST_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Ingest.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("INGEST_USER_AGENT"); v != "" {
		cfg.Ingest.UserAgent = v
	}
	if v := os.Getenv("TESSERACT_PATH"); v != "" {
		cfg.Ingest.TesseractPath = v
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Summary: SummaryConfig{
			HistorySize:       5,
			MaxPromptTokens:   6000,
			TokenizerEncoding: "cl100k_base",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		Ingest: IngestConfig{
			MaxUploadBytes: 16 << 20,
			FetchTimeout:   5 * time.Second,
			UserAgent:      "GlobalTextSummarizerBot/1.0",
			TesseractPath:  "tesseract",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Summary.HistorySize <= 0 {
		return errors.New("summary.historySize must be positive")
	}
	if c.Summary.MaxPromptTokens <= 0 {
		return errors.New("summary.maxPromptTokens must be positive")
	}
	if strings.TrimSpace(c.Summary.TokenizerEncoding) == "" {
		return errors.New("summary.tokenizerEncoding cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Ingest.MaxUploadBytes <= 0 {
		return errors.New("ingest.maxUploadBytes must be positive")
	}
	if c.Ingest.FetchTimeout <= 0 {
		return errors.New("ingest.fetchTimeout must be positive")
	}
	if strings.TrimSpace(c.Ingest.UserAgent) == "" {
		return errors.New("ingest.userAgent cannot be empty")
	}
	if strings.TrimSpace(c.Ingest.TesseractPath) == "" {
		return errors.New("ingest.tesseractPath cannot be empty")
	}
	return nil
}
