package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tubescribe/internal/api/response"
	"tubescribe/pkg/models"
)

// Summarizer produces a structured summary for the requested mode.
type Summarizer interface {
	Summarize(ctx context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error)
}

// The path segment for timeline mode differs from the internal mode name.
var pathModes = map[string]models.SummaryMode{
	"key_summary":      models.ModeKeySummary,
	"curator":          models.ModeCurator,
	"timeline_summary": models.ModeTimeline,
}

// NewSummarizeHandler returns an http.HandlerFunc for POST /summarize/{mode}.
// Summarization is synchronous; the fallback chain guarantees a result, so a
// chain error means even the deterministic tier faulted.
func NewSummarizeHandler(svc Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, ok := pathModes[chi.URLParam(r, "mode")]
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_MODE",
				"mode must be key_summary, curator or timeline_summary", nil)
			return
		}

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		result, err := svc.Summarize(r.Context(), mode, req.Text)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "PROCESSING_ERROR",
				"Summarization failed", err.Error())
			return
		}

		response.JSON(w, http.StatusOK, result.Payload())
	}
}
