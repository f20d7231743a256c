package rulebased

import (
	"strings"
	"unicode/utf8"

	"tubescribe/pkg/models"
)

const (
	curatorMinSentenceRunes = 10
	titleMaxRunes           = 100
	titleMaxWords           = 10
	maxKeyPoints            = 3
	overlapThreshold        = 0.5
)

const placeholderPoint = "요약할 핵심 내용을 찾지 못했습니다"

// curator builds a title, a one-line summary, and up to three key points
// from the longest sentences in the text.
func curator(text string) *models.CuratorSummary {
	sentences := splitSentences(text, curatorMinSentenceRunes)
	if len(sentences) == 0 {
		return &models.CuratorSummary{
			Title:          placeholderPoint,
			OneLineSummary: placeholderPoint,
			KeyPoints:      []string{placeholderPoint},
		}
	}

	title := sentences[0]
	if utf8.RuneCountInString(title) > titleMaxRunes {
		title = truncateWords(title, titleMaxWords)
	}

	firstFive := sentences
	if len(firstFive) > 5 {
		firstFive = firstFive[:5]
	}
	oneLine := strings.Join(longestOf(firstFive, 2), ". ")

	return &models.CuratorSummary{
		Title:          title,
		OneLineSummary: oneLine,
		KeyPoints:      keyPoints(sentences),
	}
}

// keyPoints picks the longest sentences, rejecting candidates that share
// more than half their words with an already-chosen point.
func keyPoints(sentences []string) []string {
	if len(sentences) < maxKeyPoints {
		return sentences
	}

	var points []string
	for _, candidate := range longestOf(sentences, len(sentences)) {
		if len(points) == maxKeyPoints {
			break
		}
		if overlapsAny(candidate, points) {
			continue
		}
		points = append(points, candidate)
	}
	if len(points) == 0 {
		points = []string{placeholderPoint}
	}
	return points
}

func overlapsAny(candidate string, chosen []string) bool {
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return false
	}

	for _, point := range chosen {
		pointSet := make(map[string]struct{})
		for _, w := range strings.Fields(point) {
			pointSet[w] = struct{}{}
		}
		shared := 0
		for _, w := range words {
			if _, ok := pointSet[w]; ok {
				shared++
			}
		}
		if float64(shared) > overlapThreshold*float64(len(words)) {
			return true
		}
	}
	return false
}
