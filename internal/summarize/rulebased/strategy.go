package rulebased

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"tubescribe/internal/summarize"
	"tubescribe/pkg/models"
)

const nearEmptyRunes = 20

const placeholderSummary = "요약할 내용이 충분하지 않습니다"

// Strategy is the last tier of the fallback chain. It always produces a
// result: near-empty input yields an empty timeline, or a single placeholder
// entry for the other modes.
type Strategy struct{}

func New() *Strategy { return &Strategy{} }

func (s *Strategy) Name() string { return "rulebased" }

func (s *Strategy) Attempt(_ context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error) {
	text = strings.TrimSpace(text)
	nearEmpty := utf8.RuneCountInString(text) < nearEmptyRunes

	res := &models.SummaryResult{Mode: mode}
	switch mode {
	case models.ModeKeySummary:
		if nearEmpty {
			res.KeySummary = []models.ParagraphSummary{{ParagraphSummary: placeholderSummary}}
			return res, nil
		}
		res.KeySummary = keySummary(text)
		if len(res.KeySummary) == 0 {
			res.KeySummary = []models.ParagraphSummary{{ParagraphSummary: placeholderSummary}}
		}
	case models.ModeCurator:
		if nearEmpty {
			res.Curator = &models.CuratorSummary{
				Title:          placeholderSummary,
				OneLineSummary: placeholderSummary,
				KeyPoints:      []string{placeholderSummary},
			}
			return res, nil
		}
		res.Curator = curator(text)
	case models.ModeTimeline:
		if nearEmpty {
			res.Timeline = []models.TimelineSection{}
			return res, nil
		}
		res.Timeline = timeline(text)
	default:
		return nil, fmt.Errorf("unknown summary mode %q", mode)
	}
	return res, nil
}

var _ summarize.Strategy = (*Strategy)(nil)
