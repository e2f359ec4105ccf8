// Package groq provides a sentiment classifier backed by Groq's
// OpenAI-compatible chat completions API
package groq

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bobmcallan/folio/internal/clients/llm"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"
)

// Client implements interfaces.SentimentProvider using a chat model
type Client struct {
	client *openai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the chat model
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

// NewClient creates a new Groq client. An empty baseURL uses the public endpoint.
func NewClient(apiKey, baseURL string, opts ...ClientOption) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	c := &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Model returns the chat model name
func (c *Client) Model() string {
	return c.model
}

// AnalyzeSentiment asks the chat model for a one word sentiment label
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	c.logger.Debug().Str("model", c.model).Msg("Groq sentiment request")

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: llm.SentimentPrompt(text)},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil {
		return nil, fmt.Errorf("groq API call: %w: %w", common.ErrProviderUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices: %w", common.ErrMalformedResponse)
	}

	return llm.ParseReply(resp.Choices[0].Message.Content, c.model), nil
}

// Ensure Client implements SentimentProvider
var _ interfaces.SentimentProvider = (*Client)(nil)
