package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubescribe/internal/config"
	"tubescribe/internal/summarize"
	"tubescribe/pkg/models"
)

func testStrategy(baseURL string) *Strategy {
	return New(config.SummarizerConfig{
		OllamaBaseURL: baseURL,
		OllamaModel:   "llama3",
		Timeout:       5 * time.Second,
	})
}

func TestAttemptSuccess(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(generateResponse{
			Response: `{"title":"제목","one_line_summary":"요약","key_points":["하나"]}`,
		})
	}))
	defer server.Close()

	res, err := testStrategy(server.URL).Attempt(context.Background(), models.ModeCurator, "본문 텍스트")

	require.NoError(t, err)
	require.NotNil(t, res.Curator)
	assert.Equal(t, "제목", res.Curator.Title)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, "json", gotReq.Format)
	assert.Contains(t, gotReq.Prompt, "본문 텍스트")
}

func TestAttemptHonorsMaxPromptRunes(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(generateResponse{
			Response: `{"title":"제목","one_line_summary":"요약","key_points":["하나"]}`,
		})
	}))
	defer server.Close()

	s := New(config.SummarizerConfig{
		OllamaBaseURL:  server.URL,
		OllamaModel:    "llama3",
		MaxPromptRunes: 4,
		Timeout:        5 * time.Second,
	})

	_, err := s.Attempt(context.Background(), models.ModeCurator, "본문 텍스트가 아주 깁니다")

	require.NoError(t, err)
	assert.Contains(t, gotReq.Prompt, "본문 텍")
	assert.NotContains(t, gotReq.Prompt, "본문 텍스트")
}

func TestAttemptServerUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testStrategy(server.URL).Attempt(context.Background(), models.ModeCurator, "text")

	assert.ErrorIs(t, err, summarize.ErrUnavailable)
}

func TestAttemptModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testStrategy(server.URL).Attempt(context.Background(), models.ModeCurator, "text")

	assert.ErrorIs(t, err, summarize.ErrUnavailable)
}

func TestAttemptModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	defer server.Close()

	_, err := testStrategy(server.URL).Attempt(context.Background(), models.ModeCurator, "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
	assert.NotErrorIs(t, err, summarize.ErrUnavailable)
}

func TestAttemptInvalidJSONFromModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "i am not json"})
	}))
	defer server.Close()

	_, err := testStrategy(server.URL).Attempt(context.Background(), models.ModeCurator, "text")

	require.Error(t, err)
}
