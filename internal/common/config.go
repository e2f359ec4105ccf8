// Package common provides shared utilities for folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for folio
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Insights    InsightsConfig `toml:"insights"`
	Fallback    FallbackConfig `toml:"fallback"`
	Logging     LoggingConfig  `toml:"logging"`
	Auth        AuthConfig     `toml:"auth"`
}

// ServerConfig holds HTTP server configuration.
// CORSOrigins lists the browser origins allowed to call the API; "*" allows any.
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StorageConfig holds SurrealDB connection settings.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	NewsAPI      NewsAPIConfig      `toml:"newsapi"`
	HuggingFace  HuggingFaceConfig  `toml:"huggingface"`
	Groq         GroqConfig         `toml:"groq"`
	Gemini       GeminiConfig       `toml:"gemini"`
}

// AlphaVantageConfig holds quote provider configuration.
// RateLimit is requests per minute; the free tier allows 5.
type AlphaVantageConfig struct {
	BaseURL     string `toml:"base_url"`
	APIKey      string `toml:"api_key"`
	RateLimit   int    `toml:"rate_limit"`
	Timeout     string `toml:"timeout"`
	SearchDelay string `toml:"search_delay"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// GetSearchDelay returns the pause between sequential quote calls made while
// resolving symbol search matches.
func (c *AlphaVantageConfig) GetSearchDelay() time.Duration {
	return parseDuration(c.SearchDelay, time.Second)
}

// NewsAPIConfig holds news provider configuration
type NewsAPIConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	Timeout      string `toml:"timeout"`
	LookbackDays int    `toml:"lookback_days"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsAPIConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// HuggingFaceConfig holds sentiment inference configuration
type HuggingFaceConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *HuggingFaceConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 30*time.Second)
}

// GroqConfig holds the OpenAI-compatible Groq endpoint configuration
type GroqConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// InsightsConfig selects the classifier used for per-stock news sentiment.
// One of "huggingface", "groq" or "gemini".
type InsightsConfig struct {
	StockClassifier string `toml:"stock_classifier"`
}

// FallbackConfig controls when synthetic market data replaces provider data.
// Mode is "auto", "live" or "synthetic". A zero Seed seeds from the clock.
type FallbackConfig struct {
	Mode string `toml:"mode"`
	Seed uint64 `toml:"seed"`
}

// AuthConfig holds JWT session configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	return parseDuration(c.TokenExpiry, 24*time.Hour)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000/rpc",
			Namespace: "folio",
			Database:  "folio",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			AlphaVantage: AlphaVantageConfig{
				BaseURL:     "https://www.alphavantage.co",
				RateLimit:   5,
				Timeout:     "30s",
				SearchDelay: "1s",
			},
			NewsAPI: NewsAPIConfig{
				BaseURL:      "https://newsapi.org",
				Timeout:      "30s",
				LookbackDays: 30,
			},
			HuggingFace: HuggingFaceConfig{
				BaseURL: "https://api-inference.huggingface.co",
				Model:   "cardiffnlp/twitter-roberta-base-sentiment-latest",
				Timeout: "30s",
			},
			Groq: GroqConfig{
				BaseURL: "https://api.groq.com/openai/v1",
				Model:   "llama3-8b-8192",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Insights: InsightsConfig{
			StockClassifier: "huggingface",
		},
		Fallback: FallbackConfig{
			Mode: "auto",
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Outputs:    []string{"console"},
			FilePath:   "./logs/folio.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is loaded first when present.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load(".env")

	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if origins := os.Getenv("FOLIO_CORS_ORIGINS"); origins != "" {
		config.Server.CORSOrigins = splitList(origins)
	}

	if addr := os.Getenv("FOLIO_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if ns := os.Getenv("FOLIO_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("FOLIO_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
	if user := os.Getenv("FOLIO_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("FOLIO_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if secret := os.Getenv("FOLIO_AUTH_JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}

	if mode := os.Getenv("FOLIO_FALLBACK_MODE"); mode != "" {
		config.Fallback.Mode = strings.ToLower(mode)
	}

	if classifier := os.Getenv("FOLIO_STOCK_CLASSIFIER"); classifier != "" {
		config.Insights.StockClassifier = strings.ToLower(classifier)
	}
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

// apiKeyEnvVars maps provider names to the environment variables holding their keys.
var apiKeyEnvVars = map[string][]string{
	"alphavantage": {"ALPHA_VANTAGE_API_KEY", "FOLIO_ALPHA_VANTAGE_API_KEY"},
	"newsapi":      {"NEWS_API_KEY", "FOLIO_NEWS_API_KEY"},
	"huggingface":  {"HUGGING_FACE_API_KEY", "FOLIO_HUGGING_FACE_API_KEY"},
	"groq":         {"GROQ_API_KEY", "FOLIO_GROQ_API_KEY"},
	"gemini":       {"GEMINI_API_KEY", "GOOGLE_API_KEY", "FOLIO_GEMINI_API_KEY"},
}

// ResolveAPIKey resolves a provider API key from environment variables,
// falling back to the configured value. Returns an ErrNotConfigured error
// when neither source supplies a key.
func ResolveAPIKey(name string, fallback string) (string, error) {
	for _, envVar := range apiKeyEnvVars[name] {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("%s API key: %w", name, ErrNotConfigured)
}
