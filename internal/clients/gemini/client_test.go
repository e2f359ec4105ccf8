package gemini

import (
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/bobmcallan/folio/internal/common"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "posi"}, {Text: "tive"}}},
		}},
	}

	got, err := extractTextFromResponse(resp)
	if err != nil {
		t.Fatalf("extractTextFromResponse: %v", err)
	}
	if got != "positive" {
		t.Errorf("text = %q, want %q", got, "positive")
	}
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"empty parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: ""}}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			if !errors.Is(err, common.ErrMalformedResponse) {
				t.Errorf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}
