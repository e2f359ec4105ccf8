// Package models defines data structures for folio
package models

import (
	"time"
)

// StockQuote is a point-in-time price snapshot for a ticker.
// Recomputed on every request and never persisted.
type StockQuote struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"changePercent"`
	Volume           int64   `json:"volume,omitempty"`
	LatestTradingDay string  `json:"latestTradingDay,omitempty"`
}

// QuoteStatus tags the outcome of a single quote lookup.
type QuoteStatus int

const (
	QuoteFound QuoteStatus = iota
	QuoteNotFound
	QuoteRateLimited
	QuoteFailed
)

func (s QuoteStatus) String() string {
	switch s {
	case QuoteFound:
		return "found"
	case QuoteNotFound:
		return "not_found"
	case QuoteRateLimited:
		return "rate_limited"
	default:
		return "error"
	}
}

// QuoteResult is the outcome of a quote lookup. Quote is set only for
// QuoteFound; Err carries the reason for QuoteRateLimited and QuoteFailed.
type QuoteResult struct {
	Status QuoteStatus
	Quote  *StockQuote
	Err    error
}

// Found reports whether the lookup produced a usable quote.
func (r QuoteResult) Found() bool {
	return r.Status == QuoteFound && r.Quote != nil
}

// QuoteFoundResult wraps a quote as a successful lookup.
func QuoteFoundResult(q *StockQuote) QuoteResult {
	return QuoteResult{Status: QuoteFound, Quote: q}
}

// QuoteNotFoundResult is a lookup for an unknown symbol.
func QuoteNotFoundResult() QuoteResult {
	return QuoteResult{Status: QuoteNotFound}
}

// QuoteRateLimitedResult is a lookup the provider throttled.
func QuoteRateLimitedResult(err error) QuoteResult {
	return QuoteResult{Status: QuoteRateLimited, Err: err}
}

// QuoteErrorResult is a lookup that failed in transport or decoding.
func QuoteErrorResult(err error) QuoteResult {
	return QuoteResult{Status: QuoteFailed, Err: err}
}

// SymbolMatch is one candidate from a fuzzy symbol search.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// SearchStatus tags the outcome of a symbol search.
type SearchStatus int

const (
	SearchMatched SearchStatus = iota
	SearchEmpty
	SearchRateLimited
	SearchFailed
)

// SymbolSearchResult is the outcome of a symbol search. Note holds the
// provider's rate limit message for SearchRateLimited.
type SymbolSearchResult struct {
	Status  SearchStatus
	Matches []SymbolMatch
	Note    string
	Err     error
}

// IndexSnapshot is one card on the market overview.
type IndexSnapshot struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// MarketOverview summarises the three index proxies.
type MarketOverview struct {
	SP500       IndexSnapshot `json:"sp500"`
	Nasdaq      IndexSnapshot `json:"nasdaq"`
	Dow         IndexSnapshot `json:"dow"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// StockSearchResult is the response body for stock search. Message is set
// when the results came from synthetic data.
type StockSearchResult struct {
	Stocks  []StockQuote `json:"stocks"`
	Message string       `json:"message,omitempty"`
}
