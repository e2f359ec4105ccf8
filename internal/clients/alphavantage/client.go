// Package alphavantage provides a client for the Alpha Vantage market data API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// flexFloat64 handles numeric fields delivered as strings, including
// percentages such as "1.2345%".
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	*f = 0
	return nil
}

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per minute
)

// Client implements interfaces.QuoteProvider against Alpha Vantage
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit in requests per minute.
// A non-positive value disables client side limiting.
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		if requestsPerMinute <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

func (e *APIError) Unwrap() error {
	return common.ErrProviderUnavailable
}

// signals are the out-of-band messages Alpha Vantage embeds in 200 responses.
type signals struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// rateLimitNote returns the throttling message, if any. Alpha Vantage uses
// "Note" and, on newer plans, "Information" for the same signal.
func (s signals) rateLimitNote() string {
	if s.Note != "" {
		return s.Note
	}
	return s.Information
}

// errQuotaExhausted is returned without calling out once the client side
// request budget for the current window is spent.
var errQuotaExhausted = fmt.Errorf("%w: client request budget exhausted", common.ErrRateLimited)

// get performs a rate-limited GET request against the query endpoint. Calls
// over the per-minute budget fail fast with ErrRateLimited.
func (c *Client) get(ctx context.Context, function string, params url.Values, result interface{}) error {
	if !c.limiter.Allow() {
		return errQuotaExhausted
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("function", function).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w: %w", common.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Function:   function,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w: %w", common.ErrMalformedResponse, err)
	}

	return nil
}

type globalQuoteResponse struct {
	signals
	Quote struct {
		Symbol           string      `json:"01. symbol"`
		Price            flexFloat64 `json:"05. price"`
		Volume           flexFloat64 `json:"06. volume"`
		LatestTradingDay string      `json:"07. latest trading day"`
		Change           flexFloat64 `json:"09. change"`
		ChangePercent    flexFloat64 `json:"10. change percent"`
	} `json:"Global Quote"`
}

// GetQuote retrieves the latest quote for a symbol.
// The outcome is reported through the result status; it never panics or errors.
func (c *Client) GetQuote(ctx context.Context, symbol string) models.QuoteResult {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.QuoteNotFoundResult()
	}

	var resp globalQuoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", url.Values{"symbol": {symbol}}, &resp); err != nil {
		if errors.Is(err, common.ErrRateLimited) {
			c.logger.Warn().Str("symbol", symbol).Msg("Quote lookup over client rate limit")
			return models.QuoteRateLimitedResult(err)
		}
		c.logger.Warn().Str("symbol", symbol).Err(err).Msg("Quote lookup failed")
		return models.QuoteErrorResult(err)
	}

	if note := resp.rateLimitNote(); note != "" {
		c.logger.Warn().Str("symbol", symbol).Str("note", note).Msg("Quote lookup rate limited")
		return models.QuoteRateLimitedResult(fmt.Errorf("%w: %s", common.ErrRateLimited, note))
	}
	if resp.ErrorMessage != "" {
		return models.QuoteErrorResult(&APIError{StatusCode: http.StatusOK, Message: resp.ErrorMessage, Function: "GLOBAL_QUOTE"})
	}
	if resp.Quote.Symbol == "" {
		return models.QuoteNotFoundResult()
	}

	return models.QuoteFoundResult(&models.StockQuote{
		Symbol:           strings.ToUpper(resp.Quote.Symbol),
		Price:            float64(resp.Quote.Price),
		Change:           float64(resp.Quote.Change),
		ChangePercent:    float64(resp.Quote.ChangePercent),
		Volume:           int64(resp.Quote.Volume),
		LatestTradingDay: resp.Quote.LatestTradingDay,
	})
}

type symbolSearchResponse struct {
	signals
	BestMatches []struct {
		Symbol   string `json:"1. symbol"`
		Name     string `json:"2. name"`
		Type     string `json:"3. type"`
		Region   string `json:"4. region"`
		Currency string `json:"8. currency"`
	} `json:"bestMatches"`
}

// SearchSymbols runs a fuzzy keyword search. "Error Message" is fatal for the
// call, "Note" is a rate limit signal and an empty match list is not an error.
func (c *Client) SearchSymbols(ctx context.Context, keywords string) models.SymbolSearchResult {
	var resp symbolSearchResponse
	if err := c.get(ctx, "SYMBOL_SEARCH", url.Values{"keywords": {keywords}}, &resp); err != nil {
		if errors.Is(err, common.ErrRateLimited) {
			c.logger.Warn().Str("keywords", keywords).Msg("Symbol search over client rate limit")
			return models.SymbolSearchResult{Status: models.SearchRateLimited, Err: err}
		}
		c.logger.Warn().Str("keywords", keywords).Err(err).Msg("Symbol search failed")
		return models.SymbolSearchResult{Status: models.SearchFailed, Err: err}
	}

	if resp.ErrorMessage != "" {
		return models.SymbolSearchResult{
			Status: models.SearchFailed,
			Err:    &APIError{StatusCode: http.StatusOK, Message: resp.ErrorMessage, Function: "SYMBOL_SEARCH"},
		}
	}
	if note := resp.rateLimitNote(); note != "" {
		c.logger.Warn().Str("keywords", keywords).Str("note", note).Msg("Symbol search rate limited")
		return models.SymbolSearchResult{
			Status: models.SearchRateLimited,
			Note:   note,
			Err:    fmt.Errorf("%w: %s", common.ErrRateLimited, note),
		}
	}
	if len(resp.BestMatches) == 0 {
		return models.SymbolSearchResult{Status: models.SearchEmpty}
	}

	matches := make([]models.SymbolMatch, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		if m.Symbol == "" {
			continue
		}
		matches = append(matches, models.SymbolMatch{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Type:     m.Type,
			Region:   m.Region,
			Currency: m.Currency,
		})
	}
	if len(matches) == 0 {
		return models.SymbolSearchResult{Status: models.SearchEmpty}
	}

	return models.SymbolSearchResult{Status: models.SearchMatched, Matches: matches}
}

// Ensure Client implements QuoteProvider
var _ interfaces.QuoteProvider = (*Client)(nil)
