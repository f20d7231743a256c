// Package rulebased is the deterministic summarization tier. It never calls
// out to a model and succeeds for any non-empty input, so the fallback chain
// always terminates with a usable result.
package rulebased

import (
	"strings"
	"unicode/utf8"
)

const minLineFragmentRunes = 10

// splitParagraphs breaks text into paragraph units on blank lines. A text
// with no blank-line structure is re-split on single newlines, dropping
// fragments shorter than 10 characters.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) > 1 {
		return paragraphs
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if utf8.RuneCountInString(l) >= minLineFragmentRunes {
			lines = append(lines, l)
		}
	}
	return lines
}

// splitSentences breaks text on periods, trims each piece, and keeps only
// sentences longer than minRunes.
func splitSentences(text string, minRunes int) []string {
	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minRunes {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// truncateWords returns the first n words of s followed by an ellipsis.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}

// longestOf returns up to n of the longest sentences from the given slice,
// preserving no particular order beyond length ranking.
func longestOf(sentences []string, n int) []string {
	sorted := make([]string, len(sentences))
	copy(sorted, sentences)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if utf8.RuneCountInString(sorted[j]) > utf8.RuneCountInString(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
