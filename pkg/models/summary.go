package models

// SummaryMode selects one of the three summary output shapes.
type SummaryMode string

const (
	ModeKeySummary SummaryMode = "key_summary"
	ModeCurator    SummaryMode = "curator"
	ModeTimeline   SummaryMode = "timeline"
)

// ParagraphSummary is one entry of a key_summary result.
type ParagraphSummary struct {
	ParagraphSummary string `json:"paragraph_summary"`
}

// CuratorSummary is the curator-mode result.
type CuratorSummary struct {
	Title          string   `json:"title"`
	OneLineSummary string   `json:"one_line_summary"`
	KeyPoints      []string `json:"key_points"`
}

// TimelineSection is one entry of a timeline result. Timestamp is synthesized
// as "<start>-<end>분" with end = start + 2.
type TimelineSection struct {
	Timestamp      string   `json:"timestamp"`
	Subtitle       string   `json:"subtitle"`
	Summary        string   `json:"summary"`
	Keywords       []string `json:"keywords"`
	OnelineSummary string   `json:"oneline_summary"`
}

// SummaryResult is a tagged union over the three summary shapes; exactly the
// field matching Mode is populated. Results are produced and returned per
// request, never stored.
type SummaryResult struct {
	Mode       SummaryMode
	KeySummary []ParagraphSummary
	Curator    *CuratorSummary
	Timeline   []TimelineSection
}

// Payload returns the wire shape for the result's mode.
func (r *SummaryResult) Payload() any {
	switch r.Mode {
	case ModeKeySummary:
		if r.KeySummary == nil {
			return []ParagraphSummary{}
		}
		return r.KeySummary
	case ModeCurator:
		return r.Curator
	case ModeTimeline:
		if r.Timeline == nil {
			return []TimelineSection{}
		}
		return r.Timeline
	}
	return nil
}

// NonEmpty reports structural validity: a usable result for the mode. The
// fallback chain uses it to decide whether a generative tier actually
// produced something before accepting its output. Timeline results may be
// legitimately empty for near-empty input, but a generative tier returning
// an empty timeline still falls through to the deterministic tier.
func (r *SummaryResult) NonEmpty() bool {
	switch r.Mode {
	case ModeKeySummary:
		return len(r.KeySummary) > 0
	case ModeCurator:
		return r.Curator != nil && (r.Curator.Title != "" || len(r.Curator.KeyPoints) > 0)
	case ModeTimeline:
		return len(r.Timeline) > 0
	}
	return false
}
