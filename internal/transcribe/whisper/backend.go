// Package whisper runs a local whisper.cpp binary for speech recognition.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tubescribe/internal/config"
	"tubescribe/internal/transcribe"
	"tubescribe/pkg/executor"
	"tubescribe/pkg/models"
)

// Backend implements transcribe.Backend over the whisper.cpp CLI.
type Backend struct {
	cfg  config.WhisperConfig
	exec executor.Executor
}

func New(cfg config.WhisperConfig, exec executor.Executor) *Backend {
	return &Backend{cfg: cfg, exec: exec}
}

func (b *Backend) Name() string { return models.MethodWhisper }

// Transcribe runs whisper.cpp with JSON output and parses the sidecar file it
// produces next to the audio.
func (b *Backend) Transcribe(ctx context.Context, audioPath string, opts transcribe.Options) (*models.BackendResult, error) {
	model := opts.Model
	if model == "" {
		model = "base"
	}
	modelPath := filepath.Join(b.cfg.ModelDir, "ggml-"+model+".bin")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("whisper model %q not found at %s", model, modelPath)
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-oj",
		"-l", b.cfg.Language,
		"-t", strconv.Itoa(b.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := b.exec.Execute(ctx, b.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper output missing: %w", err)
	}

	return parseOutput(raw)
}

// whisper.cpp JSON output: offsets are milliseconds.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseOutput(raw []byte) (*models.BackendResult, error) {
	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	var sb strings.Builder
	segments := make([]models.Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		segments = append(segments, models.Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
	}

	if sb.Len() == 0 {
		return nil, fmt.Errorf("whisper produced no transcription")
	}

	return &models.BackendResult{
		Text:     sb.String(),
		Language: out.Result.Language,
		Segments: segments,
	}, nil
}

var _ transcribe.Backend = (*Backend)(nil)
