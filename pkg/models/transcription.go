package models

import "encoding/json"

// Transcription method names. "both" dispatches every registered backend.
const (
	MethodWhisper = "whisper"
	MethodGoogle  = "google"
	MethodBoth    = "both"
)

// Segment is one timed slice of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// BackendResult is the outcome of a single speech-to-text backend. A backend
// fault is carried as success=false plus error, never as a Go error past the
// coordinator.
type BackendResult struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	Success  bool      `json:"success"`
	Method   string    `json:"method"`
	Error    string    `json:"error,omitempty"`
}

// TranscriptionResult is the outcome of a transcription dispatch. Backends is
// keyed by backend name; single-backend methods carry exactly one entry and
// "both" carries one per requested backend, so "both" is not a special case
// internally.
//
// Error is set only for dispatch-level failures (precondition violations,
// unsupported method) that happen before any backend runs.
type TranscriptionResult struct {
	Method   string
	Success  bool
	Error    string
	Backends map[string]*BackendResult
}

// OK reports whether the enclosing job should be marked successful. For
// "both" the dispatch itself completing counts as success even when both
// inner backends failed; their failures are carried inside the result.
func (r *TranscriptionResult) OK() bool {
	if r.Error != "" {
		return false
	}
	if r.Method == MethodBoth {
		return true
	}
	b := r.Backends[r.Method]
	return b != nil && b.Success
}

// FailureMessage returns the human-readable cause when OK() is false.
func (r *TranscriptionResult) FailureMessage() string {
	if r.Error != "" {
		return r.Error
	}
	if b := r.Backends[r.Method]; b != nil && b.Error != "" {
		return b.Error
	}
	return "transcription failed"
}

// MarshalJSON reproduces the wire shapes clients expect: single-backend
// results marshal flat, "both" marshals one object per backend plus
// success/method, and dispatch-level failures marshal as an empty-text error
// result.
func (r *TranscriptionResult) MarshalJSON() ([]byte, error) {
	if r.Method != MethodBoth {
		if b := r.Backends[r.Method]; b != nil {
			return json.Marshal(b)
		}
		return json.Marshal(struct {
			Text    string `json:"text"`
			Error   string `json:"error,omitempty"`
			Success bool   `json:"success"`
			Method  string `json:"method,omitempty"`
		}{Error: r.Error, Method: r.Method})
	}

	out := make(map[string]any, len(r.Backends)+2)
	for name, b := range r.Backends {
		out[name] = b
	}
	out["success"] = r.Success
	out["method"] = r.Method
	return json.Marshal(out)
}
