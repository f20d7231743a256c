package rulebased

import (
	"strings"
	"unicode/utf8"

	"tubescribe/pkg/models"
)

const (
	shortParagraphRunes = 30
	minSummaryRunes     = 6
)

// keySummary condenses each paragraph to its lead sentence plus the longest
// of the remaining sentences. Short paragraphs pass through verbatim.
func keySummary(text string) []models.ParagraphSummary {
	var out []models.ParagraphSummary
	for _, paragraph := range splitParagraphs(text) {
		s := summarizeParagraph(paragraph)
		if utf8.RuneCountInString(s) < minSummaryRunes {
			continue
		}
		out = append(out, models.ParagraphSummary{ParagraphSummary: s})
	}
	return out
}

func summarizeParagraph(paragraph string) string {
	if utf8.RuneCountInString(paragraph) < shortParagraphRunes {
		return paragraph
	}

	sentences := splitSentences(paragraph, 0)
	if len(sentences) <= 2 {
		return paragraph
	}

	first := sentences[0]
	longest := ""
	for _, s := range sentences[1:] {
		if utf8.RuneCountInString(s) > utf8.RuneCountInString(longest) {
			longest = s
		}
	}
	return strings.TrimSpace(first) + ". " + strings.TrimSpace(longest) + "."
}
