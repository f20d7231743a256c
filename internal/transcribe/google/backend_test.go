package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubescribe/internal/config"
	"tubescribe/internal/transcribe"
)

func testConfig(baseURL string) config.GoogleConfig {
	return config.GoogleConfig{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Language: "ko-KR",
		Timeout:  5 * time.Second,
	}
}

func writeAudioFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func recognizeResult(transcripts ...string) map[string]any {
	results := make([]map[string]any, 0, len(transcripts))
	for _, tr := range transcripts {
		results = append(results, map[string]any{
			"alternatives": []map[string]any{{"transcript": tr, "confidence": 0.9}},
		})
	}
	return map[string]any{"results": results}
}

func TestTranscribeSuccess(t *testing.T) {
	var gotReq recognizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1p1beta1/speech:recognize", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(recognizeResult("안녕하세요", "반갑습니다"))
	}))
	defer server.Close()

	path := writeAudioFile(t, "audio.mp3", []byte("fake mp3 bytes"))
	backend := New(testConfig(server.URL))

	res, err := backend.Transcribe(context.Background(), path, transcribe.Options{})

	require.NoError(t, err)
	assert.Equal(t, "안녕하세요 반갑습니다", res.Text)
	assert.Equal(t, "ko-KR", res.Language)
	assert.Equal(t, "MP3", gotReq.Config.Encoding)
	assert.Equal(t, "ko-KR", gotReq.Config.LanguageCode)
	assert.NotEmpty(t, gotReq.Audio.Content)
}

func TestTranscribeFallbackLanguage(t *testing.T) {
	var languages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recognizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		languages = append(languages, req.Config.LanguageCode)
		if req.Config.LanguageCode == "ko-KR" {
			json.NewEncoder(w).Encode(recognizeResult())
			return
		}
		json.NewEncoder(w).Encode(recognizeResult("hello world"))
	}))
	defer server.Close()

	path := writeAudioFile(t, "audio.mp3", []byte("fake"))
	backend := New(testConfig(server.URL))

	res, err := backend.Transcribe(context.Background(), path, transcribe.Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"ko-KR", "en-US"}, languages)
	assert.Equal(t, "hello world", res.Text)
	assert.Equal(t, "en-US", res.Language)
}

func TestTranscribeNothingRecognized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(recognizeResult())
	}))
	defer server.Close()

	path := writeAudioFile(t, "audio.mp3", []byte("fake"))
	backend := New(testConfig(server.URL))

	_, err := backend.Transcribe(context.Background(), path, transcribe.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "speech not recognized")
}

func TestTranscribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "API key not valid"},
		})
	}))
	defer server.Close()

	path := writeAudioFile(t, "audio.mp3", []byte("fake"))
	backend := New(testConfig(server.URL))

	_, err := backend.Transcribe(context.Background(), path, transcribe.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestTranscribeMissingAPIKey(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.APIKey = ""
	backend := New(cfg)

	_, err := backend.Transcribe(context.Background(), "/nonexistent.mp3", transcribe.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

func TestTranscribeAudioTooLarge(t *testing.T) {
	path := writeAudioFile(t, "big.mp3", make([]byte, maxSyncAudioBytes+1))
	backend := New(testConfig("http://unused"))

	_, err := backend.Transcribe(context.Background(), path, transcribe.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestEncodingForFile(t *testing.T) {
	assert.Equal(t, "MP3", encodingForFile("a.mp3"))
	assert.Equal(t, "", encodingForFile("a.wav"))
	assert.Equal(t, "FLAC", encodingForFile("a.FLAC"))
	assert.Equal(t, "", encodingForFile("a.xyz"))
}
