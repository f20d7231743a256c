package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"tubescribe/pkg/models"
)

// SanitizeModelJSON strips markdown code fences and surrounding prose from a
// model response, leaving the raw JSON document. Models frequently wrap
// output in ```json fences even when told not to.
func SanitizeModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Trim any leading/trailing prose around the outermost JSON value.
	start := strings.IndexAny(s, "{[")
	end := strings.LastIndexAny(s, "}]")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

// DecodeModelResult parses a model's JSON response into the result shape for
// the given mode.
func DecodeModelResult(mode models.SummaryMode, raw string) (*models.SummaryResult, error) {
	clean := SanitizeModelJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("empty model response")
	}

	res := &models.SummaryResult{Mode: mode}
	switch mode {
	case models.ModeKeySummary:
		if err := json.Unmarshal([]byte(clean), &res.KeySummary); err != nil {
			return nil, fmt.Errorf("decode key_summary response: %w", err)
		}
	case models.ModeCurator:
		var cs models.CuratorSummary
		if err := json.Unmarshal([]byte(clean), &cs); err != nil {
			return nil, fmt.Errorf("decode curator response: %w", err)
		}
		res.Curator = &cs
	case models.ModeTimeline:
		if err := json.Unmarshal([]byte(clean), &res.Timeline); err != nil {
			return nil, fmt.Errorf("decode timeline response: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown summary mode %q", mode)
	}
	return res, nil
}
