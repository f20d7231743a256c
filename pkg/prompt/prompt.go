// Package prompt builds the instructions sent to generative summarizers.
// Every template demands strict JSON output matching the wire shape of the
// requested summary mode.
package prompt

import (
	"fmt"
	"strings"

	"tubescribe/pkg/models"
)

// DefaultMaxRunes caps the transcript portion of a prompt. Long transcripts
// are truncated rather than rejected so a summary is always attempted.
const DefaultMaxRunes = 24000

// Builder assembles mode-specific summarization prompts.
type Builder struct {
	maxRunes int
}

func NewBuilder() *Builder {
	return &Builder{maxRunes: DefaultMaxRunes}
}

// WithMaxRunes overrides the transcript length cap. Values below 1 are
// ignored.
func (b *Builder) WithMaxRunes(n int) *Builder {
	if n >= 1 {
		b.maxRunes = n
	}
	return b
}

const keySummaryTemplate = `다음 텍스트를 문단별로 나누어 각 문단의 핵심 내용을 요약해 주세요.

출력은 반드시 아래 형식의 JSON 배열만 출력하세요. 다른 설명은 쓰지 마세요:
[{"paragraph_summary": "문단 요약"}]

텍스트:
%s`

const curatorTemplate = `다음 텍스트를 읽고 큐레이션 요약을 작성해 주세요.

출력은 반드시 아래 형식의 JSON 객체만 출력하세요. 다른 설명은 쓰지 마세요:
{"title": "제목", "one_line_summary": "한 줄 요약", "key_points": ["핵심 포인트 1", "핵심 포인트 2", "핵심 포인트 3"]}

텍스트:
%s`

const timelineTemplate = `다음 텍스트를 시간 구간별로 나누어 타임라인 요약을 작성해 주세요.

출력은 반드시 아래 형식의 JSON 배열만 출력하세요. 다른 설명은 쓰지 마세요:
[{"timestamp": "1-3분", "subtitle": "소제목", "summary": "구간 요약", "keywords": ["키워드1", "키워드2"], "oneline_summary": "~에 대한 내용입니다"}]

텍스트:
%s`

// Build returns the full prompt for the given mode, with the text truncated
// to the builder's rune cap.
func (b *Builder) Build(mode models.SummaryMode, text string) (string, error) {
	truncated := truncateRunes(strings.TrimSpace(text), b.maxRunes)

	switch mode {
	case models.ModeKeySummary:
		return fmt.Sprintf(keySummaryTemplate, truncated), nil
	case models.ModeCurator:
		return fmt.Sprintf(curatorTemplate, truncated), nil
	case models.ModeTimeline:
		return fmt.Sprintf(timelineTemplate, truncated), nil
	}
	return "", fmt.Errorf("unknown summary mode %q", mode)
}

// truncateRunes cuts s to at most n runes, never splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
