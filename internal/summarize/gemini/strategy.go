// Package gemini summarizes transcripts with the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"tubescribe/internal/config"
	"tubescribe/internal/summarize"
	"tubescribe/pkg/models"
	"tubescribe/pkg/prompt"
)

type Strategy struct {
	apiKey  string
	model   string
	prompts *prompt.Builder
}

func New(cfg config.SummarizerConfig) *Strategy {
	return &Strategy{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		prompts: prompt.NewBuilder().WithMaxRunes(cfg.MaxPromptRunes),
	}
}

func (s *Strategy) Name() string { return "gemini" }

func (s *Strategy) Attempt(ctx context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set: %w", summarize.ErrUnavailable)
	}

	p, err := s.prompts.Build(mode, text)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(p), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := collectText(resp)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("gemini returned no text")
	}

	return summarize.DecodeModelResult(mode, raw)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

var _ summarize.Strategy = (*Strategy)(nil)
