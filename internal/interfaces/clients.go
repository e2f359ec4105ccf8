// Package interfaces defines service contracts for folio
package interfaces

import (
	"context"

	"github.com/bobmcallan/folio/internal/models"
)

// QuoteProvider resolves quotes and fuzzy symbol matches. Both the live
// market data client and the synthetic generator implement it.
type QuoteProvider interface {
	// GetQuote looks up a single symbol. Failures are reported through the
	// result status rather than an error.
	GetQuote(ctx context.Context, symbol string) models.QuoteResult

	// SearchSymbols returns candidate symbols for a keyword.
	SearchSymbols(ctx context.Context, keywords string) models.SymbolSearchResult
}

// NewsProvider searches recent news articles by keyword
type NewsProvider interface {
	// SearchNews returns filtered, normalized articles sorted by recency
	SearchNews(ctx context.Context, query models.NewsQuery) (*models.NewsPage, error)
}

// SentimentProvider classifies the sentiment of a short text
type SentimentProvider interface {
	// AnalyzeSentiment returns the top label mapped onto positive/negative/neutral
	AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error)

	// Model names the classifier backing this provider
	Model() string
}
