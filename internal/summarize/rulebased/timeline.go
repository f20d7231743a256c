package rulebased

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tubescribe/pkg/models"
)

const (
	timelineMinSentenceRunes = 15
	maxSentencesPerSection   = 4
	maxRunesPerSection       = 300
	maxSections              = 8
	subtitleMaxRunes         = 60
	subtitleMaxWords         = 8
	sectionMinutes           = 3
)

// timeline groups sentences into sequential sections and synthesizes a
// pseudo-timestamp for each, since plain text carries no timing data.
func timeline(text string) []models.TimelineSection {
	sentences := splitSentences(text, timelineMinSentenceRunes)
	if len(sentences) == 0 {
		return []models.TimelineSection{}
	}

	groups := groupSentences(sentences)
	if len(groups) > maxSections {
		groups = groups[:maxSections]
	}

	sections := make([]models.TimelineSection, 0, len(groups))
	for i, group := range groups {
		sections = append(sections, buildSection(i, group))
	}
	return sections
}

// groupSentences packs sentences into runs of at most 4 sentences or 300
// characters, whichever limit is hit first.
func groupSentences(sentences []string) [][]string {
	var groups [][]string
	var current []string
	runes := 0

	for _, s := range sentences {
		n := utf8.RuneCountInString(s)
		if len(current) > 0 && (len(current) == maxSentencesPerSection || runes+n > maxRunesPerSection) {
			groups = append(groups, current)
			current = nil
			runes = 0
		}
		current = append(current, s)
		runes += n
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func buildSection(index int, group []string) models.TimelineSection {
	first := group[0]

	subtitle := first
	if utf8.RuneCountInString(subtitle) > subtitleMaxRunes {
		subtitle = truncateWords(subtitle, subtitleMaxWords)
	}

	summary := strings.Join(longestOf(group, 2), ". ")

	return models.TimelineSection{
		Timestamp:      fmt.Sprintf("%d-%d분", sectionMinutes*index+1, sectionMinutes*(index+1)),
		Subtitle:       subtitle,
		Summary:        summary,
		Keywords:       extractKeywords(strings.Join(group, " ")),
		OnelineSummary: colloquialize(first),
	}
}
