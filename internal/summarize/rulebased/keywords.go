package rulebased

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const maxKeywords = 4

// Korean particles and filler words that carry no topical signal.
var stopwords = map[string]struct{}{
	"그리고":  {},
	"그래서":  {},
	"하지만":  {},
	"그런데":  {},
	"그러나":  {},
	"또한":   {},
	"이것":   {},
	"저것":   {},
	"그것":   {},
	"이런":   {},
	"그런":   {},
	"저런":   {},
	"여기":   {},
	"저기":   {},
	"거기":   {},
	"오늘":   {},
	"지금":   {},
	"정말":   {},
	"진짜":   {},
	"매우":   {},
	"아주":   {},
	"너무":   {},
	"좀":    {},
	"이제":   {},
	"바로":   {},
	"같이":   {},
	"함께":   {},
	"대해":   {},
	"대해서":  {},
	"있습니다": {},
	"합니다":  {},
	"입니다":  {},
	"the":  {},
	"and":  {},
	"this": {},
	"that": {},
	"with": {},
	"for":  {},
}

// extractKeywords returns the top 4 most frequent words of length > 1 that
// appear more than once, excluding stopwords. Ties break toward the word
// seen first.
func extractKeywords(text string) []string {
	freq := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,!?\"'()[]")
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, ok := firstSeen[w]; !ok {
			firstSeen[w] = i
		}
		freq[w]++
	}

	var candidates []string
	for w, n := range freq {
		if n > 1 {
			candidates = append(candidates, w)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if freq[candidates[i]] != freq[candidates[j]] {
			return freq[candidates[i]] > freq[candidates[j]]
		}
		return firstSeen[candidates[i]] < firstSeen[candidates[j]]
	})

	if len(candidates) > maxKeywords {
		candidates = candidates[:maxKeywords]
	}
	return candidates
}
