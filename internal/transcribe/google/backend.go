// Package google calls the Google Speech-to-Text synchronous recognition API.
package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"tubescribe/internal/config"
	"tubescribe/internal/transcribe"
	"tubescribe/pkg/models"
)

// Synchronous recognition rejects payloads over ~10 MB of audio content.
const maxSyncAudioBytes = 10 << 20

const fallbackLanguage = "en-US"

// Backend implements transcribe.Backend over the speech:recognize REST
// endpoint. The v1p1beta1 surface is used because it accepts MP3 input.
type Backend struct {
	cfg    config.GoogleConfig
	client *http.Client
}

func New(cfg config.GoogleConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (b *Backend) Name() string { return models.MethodGoogle }

func (b *Backend) Transcribe(ctx context.Context, audioPath string, _ transcribe.Options) (*models.BackendResult, error) {
	if b.cfg.APIKey == "" {
		return nil, fmt.Errorf("google speech api key not configured")
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) > maxSyncAudioBytes {
		return nil, fmt.Errorf("audio too large for synchronous recognition: %d bytes (limit %d)",
			len(audio), maxSyncAudioBytes)
	}

	encoding := encodingForFile(audioPath)
	content := base64.StdEncoding.EncodeToString(audio)

	// Primary language first, then one retry in the fallback language when
	// nothing was recognized.
	text, err := b.recognize(ctx, content, encoding, b.cfg.Language)
	if err != nil {
		return nil, err
	}
	language := b.cfg.Language
	if text == "" && b.cfg.Language != fallbackLanguage {
		text, err = b.recognize(ctx, content, encoding, fallbackLanguage)
		if err != nil {
			return nil, err
		}
		language = fallbackLanguage
	}
	if text == "" {
		return nil, fmt.Errorf("speech not recognized")
	}

	return &models.BackendResult{
		Text:     text,
		Language: language,
	}, nil
}

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding                   string `json:"encoding,omitempty"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (b *Backend) recognize(ctx context.Context, content, encoding, language string) (string, error) {
	reqBody := recognizeRequest{
		Config: recognizeConfig{
			Encoding:                   encoding,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
		Audio: recognizeAudio{Content: content},
	}
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1p1beta1/speech:recognize?key=%s",
		strings.TrimRight(b.cfg.BaseURL, "/"), url.QueryEscape(b.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("google speech api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("google speech api error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google speech api: unexpected status %d", resp.StatusCode)
	}

	var sb strings.Builder
	for _, r := range parsed.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		t := strings.TrimSpace(r.Alternatives[0].Transcript)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	return sb.String(), nil
}

func encodingForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "MP3"
	case ".wav":
		// WAV headers carry the sample rate; let the API read it.
		return ""
	case ".flac":
		return "FLAC"
	case ".ogg":
		return "OGG_OPUS"
	default:
		return ""
	}
}

var _ transcribe.Backend = (*Backend)(nil)
