// Package models contains shared data models used across the tubescribe codebase.
package models

import "time"

// Pipeline stage status strings. Status is a human-readable progress string
// that only ever advances; parameters (format, method) are appended by the
// orchestrator where useful.
const (
	StatusSubmitted       = "submitted"
	StatusFetchingInfo    = "fetching video info"
	StatusExtractingAudio = "extracting audio"
	StatusTranscribing    = "transcribing"
	StatusCompleted       = "completed"
	StatusFailed          = "failed"
)

// Job tracks one async transcription pipeline run. The API returns a job_id
// on POST /transcribe; the client polls GET /status/{job_id} until completed
// is true, at which point exactly one of result/error is set.
//
// A job is written only by the pipeline orchestrator. Once completed it is
// never mutated again (the store enforces this).
type Job struct {
	ID        string               `json:"id"`
	Status    string               `json:"status"`
	Completed bool                 `json:"completed"`
	Success   bool                 `json:"success"`
	Result    *TranscriptionResult `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Terminal reports whether the job has reached COMPLETED or FAILED.
func (j *Job) Terminal() bool { return j.Completed }
