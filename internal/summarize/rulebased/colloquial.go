package rulebased

import "strings"

// Formal endings rewritten to their casual equivalents. Order matters:
// longer endings must be checked before their suffixes.
var endingRewrites = []struct {
	formal string
	casual string
}{
	{"하겠습니다", "할게요"},
	{"되었습니다", "됐어요"},
	{"였습니다", "였어요"},
	{"았습니다", "았어요"},
	{"었습니다", "었어요"},
	{"입니다", "이에요"},
	{"합니다", "해요"},
	{"됩니다", "돼요"},
	{"습니다", "어요"},
}

const genericRestatement = "에 대한 내용입니다"

// colloquialize rewrites a formal first sentence into a casual one-line
// restatement. Sentences without a recognized formal ending get a generic
// suffix instead.
func colloquialize(sentence string) string {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sentence), "."))
	if s == "" {
		return ""
	}

	for _, r := range endingRewrites {
		if strings.HasSuffix(s, r.formal) {
			return strings.TrimSuffix(s, r.formal) + r.casual
		}
	}
	return s + genericRestatement
}
