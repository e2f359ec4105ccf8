package llm

import (
	"strings"
	"testing"

	"github.com/bobmcallan/folio/internal/models"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		reply     string
		sentiment string
		score     float64
	}{
		{"positive", models.SentimentPositive, 0.9},
		{"  Negative.\n", models.SentimentNegative, -0.9},
		{"neutral", models.SentimentNeutral, 0},
		{"I am not sure", models.SentimentNeutral, 0},
		{"", models.SentimentNeutral, 0},
	}
	for _, tt := range tests {
		got := ParseReply(tt.reply, "test-model")
		if got.Sentiment != tt.sentiment || got.Score != tt.score {
			t.Errorf("ParseReply(%q) = (%s, %v), want (%s, %v)", tt.reply, got.Sentiment, got.Score, tt.sentiment, tt.score)
		}
		if got.Model != "test-model" {
			t.Errorf("Model = %q", got.Model)
		}
	}
}

func TestSentimentPrompt_IncludesText(t *testing.T) {
	p := SentimentPrompt("AAPL beats estimates")
	if !strings.Contains(p, "AAPL beats estimates") || !strings.Contains(p, `"neutral"`) {
		t.Errorf("unexpected prompt: %s", p)
	}
}
