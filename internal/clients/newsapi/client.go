// Package newsapi provides a client for the NewsAPI article search
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL  = "https://newsapi.org"
	DefaultTimeout  = 30 * time.Second
	DefaultLookback = 30 * 24 * time.Hour
	DefaultPageSize = 10

	// MaxSummaryLength is the rune budget for an article summary before the ellipsis.
	MaxSummaryLength = 200

	maxPageSize        = 100
	removedPlaceholder = "[Removed]"
)

// Client implements interfaces.NewsProvider against NewsAPI
type Client struct {
	client *resty.Client
	apiKey string
	logger *common.Logger
	now    func() time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.client.SetBaseURL(baseURL)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.SetTimeout(timeout)
	}
}

// WithClock overrides the clock used for the lookback window and article ids
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new NewsAPI client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client: resty.New().
			SetTimeout(DefaultTimeout).
			SetBaseURL(DefaultBaseURL),
		apiKey: apiKey,
		logger: common.NewSilentLogger(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an error reported by NewsAPI
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NewsAPI error: %s (status: %d, code: %s)", e.Message, e.StatusCode, e.Code)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests || e.Code == "rateLimited" {
		return common.ErrRateLimited
	}
	return common.ErrProviderUnavailable
}

type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// SearchNews queries /v2/everything for English articles sorted by recency,
// drops removed placeholders and truncates summaries.
func (c *Client) SearchNews(ctx context.Context, query models.NewsQuery) (*models.NewsPage, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	lookback := query.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	now := c.now()
	params := map[string]string{
		"q":        query.Query,
		"language": "en",
		"sortBy":   "publishedAt",
		"from":     now.Add(-lookback).Format("2006-01-02"),
		"pageSize": strconv.Itoa(pageSize),
		"apiKey":   c.apiKey,
	}

	c.logger.Debug().Str("query", query.Query).Int("page_size", pageSize).Msg("NewsAPI request")

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get("/v2/everything")
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w: %w", common.ErrProviderUnavailable, err)
	}

	var body everythingResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if resp.StatusCode() != http.StatusOK || body.Status == "error" {
		message := body.Message
		if decodeErr != nil || message == "" {
			message = strings.TrimSpace(resp.String())
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Code: body.Code, Message: message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w: %w", common.ErrMalformedResponse, decodeErr)
	}

	articles := make([]models.NewsArticle, 0, len(body.Articles))
	for _, a := range body.Articles {
		if isRemoved(a.Title, a.Description) {
			continue
		}

		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}

		// IDs number the kept articles, so they run without gaps.
		articles = append(articles, models.NewsArticle{
			ID:              fmt.Sprintf("news_%d_%d", now.UnixMilli(), len(articles)),
			Title:           a.Title,
			Summary:         Truncate(a.Description, MaxSummaryLength),
			Source:          source,
			PublishedAt:     a.PublishedAt,
			URL:             a.URL,
			Sentiment:       models.SentimentNeutral,
			RelevantSymbols: []string{},
		})
	}

	total := body.TotalResults
	if total == 0 {
		total = len(articles)
	}

	c.logger.Debug().
		Str("query", query.Query).
		Int("returned", len(body.Articles)).
		Int("kept", len(articles)).
		Msg("NewsAPI articles filtered")

	return &models.NewsPage{Articles: articles, Total: total}, nil
}

// isRemoved matches the provider's placeholder for deleted articles.
func isRemoved(title, description string) bool {
	if title == "" || description == "" {
		return true
	}
	if title == removedPlaceholder || description == removedPlaceholder {
		return true
	}
	return strings.Contains(strings.ToLower(title), "removed")
}

// Truncate shortens s to max runes and appends "..." when it was longer.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Ensure Client implements NewsProvider
var _ interfaces.NewsProvider = (*Client)(nil)
