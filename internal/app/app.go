// Package app wires configuration, storage, provider clients and services.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/clients/alphavantage"
	"github.com/bobmcallan/folio/internal/clients/gemini"
	"github.com/bobmcallan/folio/internal/clients/groq"
	"github.com/bobmcallan/folio/internal/clients/huggingface"
	"github.com/bobmcallan/folio/internal/clients/newsapi"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/account"
	"github.com/bobmcallan/folio/internal/services/insights"
	"github.com/bobmcallan/folio/internal/services/market"
	"github.com/bobmcallan/folio/internal/services/news"
	"github.com/bobmcallan/folio/internal/services/portfolio"
	"github.com/bobmcallan/folio/internal/services/synthetic"
	"github.com/bobmcallan/folio/internal/storage/surrealdb"
)

// Stock classifier names accepted by insights.stock_classifier
const (
	ClassifierHuggingFace = "huggingface"
	ClassifierGroq        = "groq"
	ClassifierGemini      = "gemini"
)

// App holds all initialized services and clients.
// Provider fields are nil when their API key is not configured.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	QuoteClient     interfaces.QuoteProvider
	NewsClient      interfaces.NewsProvider
	SentimentClient interfaces.SentimentProvider
	StockClassifier interfaces.SentimentProvider
	Synthetic       *synthetic.Generator
	Policy          synthetic.Policy

	MarketService    interfaces.MarketService
	NewsService      interfaces.NewsService
	PortfolioService interfaces.PortfolioService
	InsightService   interfaces.InsightService
	AccountService   interfaces.AccountService

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration, connects storage and wires every service.
// configPath may be empty, in which case FOLIO_CONFIG, then folio.toml next
// to the binary, then config/folio.toml are tried.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a, err := New(config, logger, storageManager)
	if err != nil {
		storageManager.Close()
		return nil, err
	}
	return a, nil
}

// New wires clients and services on top of an existing storage manager.
func New(config *common.Config, logger *common.Logger, storageManager interfaces.StorageManager) (*App, error) {
	startupStart := time.Now()
	ctx := context.Background()

	mode, err := synthetic.ParseMode(config.Fallback.Mode)
	if err != nil {
		return nil, err
	}
	policy := synthetic.Policy{Mode: mode}
	gen := synthetic.NewGenerator(config.Fallback.Seed)

	quoteClient := newQuoteClient(config, logger)
	newsClient := newNewsClient(config, logger)
	sentimentClient := newSentimentClient(config, logger)
	classifier, err := newStockClassifier(ctx, config, logger, sentimentClient)
	if err != nil {
		return nil, err
	}

	marketService := market.NewService(quoteClient, gen, policy, logger)
	marketService.SetSearchDelay(config.Clients.AlphaVantage.GetSearchDelay())

	newsService := news.NewService(newsClient, time.Duration(config.Clients.NewsAPI.LookbackDays)*24*time.Hour, logger)
	portfolioService := portfolio.NewService(storageManager, marketService, gen, logger)
	insightService := insights.NewService(newsClient, sentimentClient, classifier, gen, logger)
	accountService := account.NewService(storageManager, portfolioService, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		QuoteClient:      quoteClient,
		NewsClient:       newsClient,
		SentimentClient:  sentimentClient,
		StockClassifier:  classifier,
		Synthetic:        gen,
		Policy:           policy,
		MarketService:    marketService,
		NewsService:      newsService,
		PortfolioService: portfolioService,
		InsightService:   insightService,
		AccountService:   accountService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("fallback_mode", string(mode)).
		Bool("quotes", quoteClient != nil).
		Bool("news", newsClient != nil).
		Bool("sentiment", sentimentClient != nil).
		Bool("stock_classifier", classifier != nil).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// The constructors below return an untyped nil when the key is missing so
// that services see a nil interface rather than a nil pointer.

func newQuoteClient(config *common.Config, logger *common.Logger) interfaces.QuoteProvider {
	cfg := config.Clients.AlphaVantage
	key, err := common.ResolveAPIKey("alphavantage", cfg.APIKey)
	if err != nil {
		logger.Warn().Msg("Alpha Vantage API key not configured - live quotes unavailable")
		return nil
	}
	return alphavantage.NewClient(key,
		alphavantage.WithBaseURL(cfg.BaseURL),
		alphavantage.WithLogger(logger),
		alphavantage.WithRateLimit(cfg.RateLimit),
		alphavantage.WithTimeout(cfg.GetTimeout()),
	)
}

func newNewsClient(config *common.Config, logger *common.Logger) interfaces.NewsProvider {
	cfg := config.Clients.NewsAPI
	key, err := common.ResolveAPIKey("newsapi", cfg.APIKey)
	if err != nil {
		logger.Warn().Msg("News API key not configured - news feed unavailable")
		return nil
	}
	return newsapi.NewClient(key,
		newsapi.WithBaseURL(cfg.BaseURL),
		newsapi.WithLogger(logger),
		newsapi.WithTimeout(cfg.GetTimeout()),
	)
}

func newSentimentClient(config *common.Config, logger *common.Logger) interfaces.SentimentProvider {
	cfg := config.Clients.HuggingFace
	key, err := common.ResolveAPIKey("huggingface", cfg.APIKey)
	if err != nil {
		logger.Warn().Msg("Hugging Face API key not configured - sentiment analysis unavailable")
		return nil
	}
	return huggingface.NewClient(key,
		huggingface.WithBaseURL(cfg.BaseURL),
		huggingface.WithModel(cfg.Model),
		huggingface.WithLogger(logger),
		huggingface.WithTimeout(cfg.GetTimeout()),
	)
}

// newStockClassifier selects the classifier for per-stock news. The
// huggingface choice reuses the general sentiment client.
func newStockClassifier(ctx context.Context, config *common.Config, logger *common.Logger, sentiment interfaces.SentimentProvider) (interfaces.SentimentProvider, error) {
	switch config.Insights.StockClassifier {
	case "", ClassifierHuggingFace:
		return sentiment, nil

	case ClassifierGroq:
		cfg := config.Clients.Groq
		key, err := common.ResolveAPIKey("groq", cfg.APIKey)
		if err != nil {
			logger.Warn().Msg("Groq API key not configured - stock news classification unavailable")
			return nil, nil
		}
		return groq.NewClient(key, cfg.BaseURL,
			groq.WithModel(cfg.Model),
			groq.WithLogger(logger),
		), nil

	case ClassifierGemini:
		cfg := config.Clients.Gemini
		key, err := common.ResolveAPIKey("gemini", cfg.APIKey)
		if err != nil {
			logger.Warn().Msg("Gemini API key not configured - stock news classification unavailable")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, key,
			gemini.WithModel(cfg.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
			return nil, nil
		}
		return client, nil
	}

	return nil, fmt.Errorf("unknown stock classifier %q", config.Insights.StockClassifier)
}
