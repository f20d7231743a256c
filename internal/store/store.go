// Package store keeps job records in a bounded, time-evicting in-memory
// registry. Jobs intentionally do not survive the process: there is no
// database behind this interface.
package store

import (
	"errors"

	"tubescribe/pkg/models"
)

var ErrNotFound = errors.New("job not found")

// Store is the job registry interface. Implementations must be safe for
// concurrent use: the pipeline goroutine writes while status handlers read.
type Store interface {
	// Create initializes a job in the submitted stage and returns a copy.
	Create(id string) *models.Job
	// Update merges the given fields into an existing job. Unknown ids and
	// jobs that already reached a terminal state are ignored silently; the
	// orchestrator is the only writer and never updates after completion.
	Update(id string, fields ...Field)
	// Get returns a copy of the job, or ErrNotFound.
	Get(id string) (*models.Job, error)
	// Len reports how many live jobs the registry currently holds.
	Len() int
}

// Field applies one partial update to a job record.
type Field func(*models.Job)

// WithStatus advances the human-readable progress string.
func WithStatus(status string) Field {
	return func(j *models.Job) { j.Status = status }
}

// WithResult marks the job completed and successful with its result.
func WithResult(result *models.TranscriptionResult) Field {
	return func(j *models.Job) {
		j.Status = models.StatusCompleted
		j.Completed = true
		j.Success = true
		j.Result = result
	}
}

// WithError marks the job completed and failed with a human-readable cause.
func WithError(msg string) Field {
	return func(j *models.Job) {
		j.Status = models.StatusFailed
		j.Completed = true
		j.Success = false
		j.Error = msg
	}
}
