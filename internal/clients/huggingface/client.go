// Package huggingface provides a client for Hugging Face text classification inference
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	DefaultTimeout = 30 * time.Second
)

// Client implements interfaces.SentimentProvider against the inference API
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModel sets the classification model
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
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
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Hugging Face inference client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an inference API error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Hugging Face API error: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return common.ErrRateLimited
	}
	return common.ErrProviderUnavailable
}

// Model returns the classification model name
func (c *Client) Model() string {
	return c.model
}

// AnalyzeSentiment classifies text and maps the highest scoring label onto
// positive/negative/neutral. An unexpected payload shape returns ErrMalformedResponse.
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("model", c.model).Int("chars", len(text)).Msg("Hugging Face inference request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w: %w", common.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w: %w", common.ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	scores, err := parseScores(body)
	if err != nil {
		c.logger.Warn().Str("model", c.model).Str("body", string(body)).Msg("Unexpected inference response format")
		return nil, err
	}

	result := Classify(scores)
	result.Model = c.model
	return result, nil
}

// parseScores accepts the nested [[{label,score}]] shape returned for single
// inputs and the flat [{label,score}] shape some deployments return.
func parseScores(body []byte) ([]models.LabelScore, error) {
	var nested [][]models.LabelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []models.LabelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	return nil, fmt.Errorf("%w: expected label/score array", common.ErrMalformedResponse)
}

// Classify picks the highest scoring label and converts it to a signed score.
func Classify(scores []models.LabelScore) *models.SentimentResult {
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	sentiment := MapLabel(top.Label)
	score := 0.0
	switch sentiment {
	case models.SentimentPositive:
		score = top.Score
	case models.SentimentNegative:
		score = -top.Score
	}

	return &models.SentimentResult{
		Sentiment:  sentiment,
		Score:      score,
		Confidence: top.Score * 100,
		RawLabel:   top.Label,
		Raw:        scores,
	}
}

// MapLabel maps ordinal (LABEL_0/1/2) and free-text label conventions onto
// positive, negative or neutral.
func MapLabel(label string) string {
	l := strings.ToLower(label)
	switch {
	case label == "LABEL_2" || strings.Contains(l, "pos"):
		return models.SentimentPositive
	case label == "LABEL_0" || strings.Contains(l, "neg"):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Ensure Client implements SentimentProvider
var _ interfaces.SentimentProvider = (*Client)(nil)
