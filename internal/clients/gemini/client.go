// Package gemini provides a sentiment classifier backed by the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bobmcallan/folio/internal/clients/llm"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const DefaultModel = "gemini-2.0-flash"

// Client implements interfaces.SentimentProvider using Gemini
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
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

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Model returns the model name
func (c *Client) Model() string {
	return c.model
}

// AnalyzeSentiment asks Gemini for a one word sentiment label
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	c.logger.Debug().Str("model", c.model).Msg("Gemini sentiment request")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(llm.SentimentPrompt(text)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w: %w", common.ErrProviderUnavailable, err)
	}

	reply, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return llm.ParseReply(reply, c.model), nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated: %w", common.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in response: %w", common.ErrMalformedResponse)
	}

	return sb.String(), nil
}

// Ensure Client implements SentimentProvider
var _ interfaces.SentimentProvider = (*Client)(nil)
