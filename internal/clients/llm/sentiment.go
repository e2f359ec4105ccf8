// Package llm holds the prompt and reply parsing shared by the chat model
// sentiment classifiers.
package llm

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/models"
)

// Scores reported for chat model classifications, which carry no confidence of their own.
const (
	PolarScore   = 0.9
	NeutralScore = 0.5
)

// SentimentPrompt asks for a single word classification of a news text.
func SentimentPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of the following financial news text. Respond with only one word: "positive", "negative", or "neutral".

Text: %s`, text)
}

// ParseReply maps a chat model reply onto a SentimentResult.
// Anything that is not clearly positive or negative is neutral.
func ParseReply(reply, model string) *models.SentimentResult {
	r := strings.ToLower(strings.TrimSpace(reply))

	result := &models.SentimentResult{
		Sentiment:  models.SentimentNeutral,
		Confidence: NeutralScore * 100,
		Model:      model,
		RawLabel:   r,
	}
	switch {
	case strings.Contains(r, "positive"):
		result.Sentiment = models.SentimentPositive
		result.Score = PolarScore
		result.Confidence = PolarScore * 100
	case strings.Contains(r, "negative"):
		result.Sentiment = models.SentimentNegative
		result.Score = -PolarScore
		result.Confidence = PolarScore * 100
	}
	result.Raw = []models.LabelScore{{Label: result.Sentiment, Score: result.Confidence / 100}}
	return result
}
