// Package ollama summarizes transcripts with a locally running Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"tubescribe/internal/config"
	"tubescribe/internal/summarize"
	"tubescribe/pkg/models"
	"tubescribe/pkg/prompt"
)

type Strategy struct {
	baseURL string
	model   string
	client  *http.Client
	prompts *prompt.Builder
}

func New(cfg config.SummarizerConfig) *Strategy {
	return &Strategy{
		baseURL: strings.TrimRight(cfg.OllamaBaseURL, "/"),
		model:   cfg.OllamaModel,
		client:  &http.Client{Timeout: cfg.Timeout},
		prompts: prompt.NewBuilder().WithMaxRunes(cfg.MaxPromptRunes),
	}
}

func (s *Strategy) Name() string { return "ollama" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (s *Strategy) Attempt(ctx context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error) {
	p, err := s.prompts.Build(mode, text)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateRequest{
		Model:  s.model,
		Prompt: p,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// A local server that is not running means this tier is simply
		// not installed, not that summarization failed.
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return nil, fmt.Errorf("ollama not reachable at %s: %w", s.baseURL, summarize.ErrUnavailable)
		}
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ollama model %q not found: %w", s.model, summarize.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("ollama: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return nil, fmt.Errorf("ollama returned no text")
	}

	return summarize.DecodeModelResult(mode, parsed.Response)
}

var _ summarize.Strategy = (*Strategy)(nil)
