package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// UnexpectedFormatMessage is reported when the classifier's payload could
// not be interpreted.
const UnexpectedFormatMessage = "Unexpected API response format"

// AnalyzeSentiment classifies free text. A malformed provider payload yields
// a neutral result with an explanatory detail rather than an error.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.NewValidationError("Text is required")
	}
	if s.sentiment == nil {
		return nil, fmt.Errorf("sentiment analysis: %w", common.ErrNotConfigured)
	}

	res, err := s.sentiment.AnalyzeSentiment(ctx, text)
	if errors.Is(err, common.ErrMalformedResponse) {
		s.logger.Warn().Err(err).Msg("Sentiment payload malformed, returning neutral")
		return &models.SentimentResponse{
			Sentiment:  models.SentimentNeutral,
			Score:      0,
			Confidence: 50,
			Details:    models.SentimentDetails{Error: UnexpectedFormatMessage},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sentiment analysis: %w", err)
	}

	model := res.Model
	if model == "" {
		model = s.sentiment.Model()
	}
	return &models.SentimentResponse{
		Sentiment:  res.Sentiment,
		Score:      res.Score,
		Confidence: res.Confidence,
		Details: models.SentimentDetails{
			RawResults: res.Raw,
			Model:      model,
		},
	}, nil
}
