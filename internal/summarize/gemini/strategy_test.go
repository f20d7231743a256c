package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/genai"

	"tubescribe/internal/config"
	"tubescribe/internal/summarize"
	"tubescribe/pkg/models"
)

func TestAttemptWithoutKeyIsUnavailable(t *testing.T) {
	s := New(config.SummarizerConfig{GeminiModel: "gemini-2.0-flash"})

	_, err := s.Attempt(context.Background(), models.ModeCurator, "텍스트")

	require.Error(t, err)
	assert.ErrorIs(t, err, summarize.ErrUnavailable)
}

func TestCollectText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: `{"title":`},
					{Text: `"제목"}`},
				},
			},
		}},
	}

	assert.Equal(t, `{"title":"제목"}`, collectText(resp))
	assert.Equal(t, "", collectText(nil))
	assert.Equal(t, "", collectText(&genai.GenerateContentResponse{}))
}
