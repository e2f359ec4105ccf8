package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

var bannerArt = []string{
	` 8888888888  .d88888b.  888      8888888  .d88888b.`,
	` 888        d88P" "Y88b 888        888   d88P" "Y88b`,
	` 888        888     888 888        888   888     888`,
	` 8888888    888     888 888        888   888     888`,
	` 888        888     888 888        888   888     888`,
	` 888        888     888 888        888   888     888`,
	` 888        Y88b. .d88P 888        888   Y88b. .d88P`,
	` 888         "Y88888P"  88888888 8888888  "Y88888P"`,
}

// bannerProviders lists the provider keys shown at startup, in display order.
var bannerProviders = []string{"alphavantage", "newsapi", "huggingface", "groq", "gemini"}

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	writeBanner(os.Stderr, config)

	logger.Info().
		Str("version", GetVersion()).
		Str("build", GetBuild()).
		Str("commit", GetGitCommit()).
		Str("environment", config.Environment).
		Str("storage_address", config.Storage.Address).
		Str("fallback_mode", config.Fallback.Mode).
		Str("providers", strings.Join(configuredProviders(config), ",")).
		Msg("Application started")
}

func writeBanner(w io.Writer, config *Config) {
	line := banner.ColorCyan + strings.Repeat("═", 70) + banner.ColorReset
	text := banner.ColorBold + banner.ColorWhite

	fmt.Fprintf(w, "\n%s\n\n", line)
	for _, art := range bannerArt {
		fmt.Fprintf(w, "%s%s%s\n", text, art, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Portfolio Tracking, Market News & AI Insights%s\n\n%s\n\n", text, banner.ColorReset, line)

	providers := strings.Join(configuredProviders(config), ", ")
	if providers == "" {
		providers = "none (synthetic data only)"
	}

	rows := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Environment", config.Environment},
		{"Service URL", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)},
		{"Storage", config.Storage.Address},
		{"Fallback Mode", config.Fallback.Mode},
		{"Classifier", config.Insights.StockClassifier},
		{"Providers", providers},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s  %-16s %s%s\n", text, row[0], row[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", line)
}

// configuredProviders returns the providers with a resolvable API key.
func configuredProviders(config *Config) []string {
	configured := map[string]string{
		"alphavantage": config.Clients.AlphaVantage.APIKey,
		"newsapi":      config.Clients.NewsAPI.APIKey,
		"huggingface":  config.Clients.HuggingFace.APIKey,
		"groq":         config.Clients.Groq.APIKey,
		"gemini":       config.Clients.Gemini.APIKey,
	}
	var out []string
	for _, name := range bannerProviders {
		if _, err := ResolveAPIKey(name, configured[name]); err == nil {
			out = append(out, name)
		}
	}
	return out
}

// PrintShutdownBanner displays the application shutdown banner to stderr.
func PrintShutdownBanner(logger *Logger) {
	line := banner.ColorCyan + strings.Repeat("═", 42) + banner.ColorReset
	fmt.Fprintf(os.Stderr, "\n%s\n%s  FOLIO: SHUTTING DOWN%s\n%s\n\n", line, banner.ColorBold+banner.ColorWhite, banner.ColorReset, line)

	logger.Info().Msg("Application shutting down")
}
