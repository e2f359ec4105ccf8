package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("FOLIO_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestConfig_StorageAddressEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_STORAGE_ADDRESS", "ws://db:8000/rpc")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Storage.Address != "ws://db:8000/rpc" {
		t.Errorf("Storage.Address = %q, want %q", cfg.Storage.Address, "ws://db:8000/rpc")
	}
}

func TestConfig_CORSOriginsEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != want[0] || cfg.Server.CORSOrigins[1] != want[1] {
		t.Errorf("Server.CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
}

func TestConfig_FallbackModeEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_FALLBACK_MODE", "SYNTHETIC")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Fallback.Mode != "synthetic" {
		t.Errorf("Fallback.Mode = %q, want %q", cfg.Fallback.Mode, "synthetic")
	}
}

func TestConfig_AuthEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_AUTH_JWT_SECRET", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "from-env")
	}
}

func TestConfig_LoadConfigMergesFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "folio.toml")
	override := filepath.Join(dir, "folio.local.toml")

	if err := os.WriteFile(base, []byte(`
environment = "production"

[server]
port = 7000

[clients.alphavantage]
rate_limit = 75
search_delay = "250ms"
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte(`
[server]
port = 7001
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(base, override, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("IsProduction() = false, want true")
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Clients.AlphaVantage.RateLimit != 75 {
		t.Errorf("AlphaVantage.RateLimit = %d, want 75", cfg.Clients.AlphaVantage.RateLimit)
	}
	if got := cfg.Clients.AlphaVantage.GetSearchDelay(); got != 250*time.Millisecond {
		t.Errorf("GetSearchDelay() = %v, want 250ms", got)
	}
	// Untouched sections keep their defaults
	if cfg.Clients.NewsAPI.LookbackDays != 30 {
		t.Errorf("NewsAPI.LookbackDays = %d, want 30", cfg.Clients.NewsAPI.LookbackDays)
	}
}

func TestConfig_LoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for invalid TOML")
	}
}

func TestConfig_DurationDefaults(t *testing.T) {
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"alphavantage timeout invalid", (&AlphaVantageConfig{Timeout: "soon"}).GetTimeout(), 30 * time.Second},
		{"alphavantage search delay empty", (&AlphaVantageConfig{}).GetSearchDelay(), time.Second},
		{"newsapi timeout", (&NewsAPIConfig{Timeout: "5s"}).GetTimeout(), 5 * time.Second},
		{"huggingface timeout empty", (&HuggingFaceConfig{}).GetTimeout(), 30 * time.Second},
		{"token expiry", (&AuthConfig{TokenExpiry: "1h"}).GetTokenExpiry(), time.Hour},
		{"token expiry invalid", (&AuthConfig{TokenExpiry: "x"}).GetTokenExpiry(), 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestResolveAPIKey_EnvWins(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "env-key")

	key, err := ResolveAPIKey("newsapi", "config-key")
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want %q", key, "env-key")
	}
}

func TestResolveAPIKey_GeminiGoogleEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	key, err := ResolveAPIKey("gemini", "")
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "google-key" {
		t.Errorf("key = %q, want %q", key, "google-key")
	}
}

func TestResolveAPIKey_ConfigFallback(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	t.Setenv("FOLIO_ALPHA_VANTAGE_API_KEY", "")

	key, err := ResolveAPIKey("alphavantage", "config-key")
	if err != nil {
		t.Fatalf("ResolveAPIKey: %v", err)
	}
	if key != "config-key" {
		t.Errorf("key = %q, want %q", key, "config-key")
	}
}

func TestResolveAPIKey_Missing(t *testing.T) {
	t.Setenv("HUGGING_FACE_API_KEY", "")
	t.Setenv("FOLIO_HUGGING_FACE_API_KEY", "")

	_, err := ResolveAPIKey("huggingface", "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("Text is required")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected ValidationError to unwrap to ErrValidation")
	}
	if err.Error() != "Text is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
