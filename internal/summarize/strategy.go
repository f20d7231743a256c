// Package summarize produces structured summaries of transcript text by
// trying a sequence of strategies in order, falling back on failure.
package summarize

import (
	"context"
	"errors"

	"tubescribe/pkg/models"
)

// ErrUnavailable signals that a strategy cannot run at all (missing API key,
// backend not reachable). The chain falls through to the next strategy
// without treating it as a hard failure.
var ErrUnavailable = errors.New("summarizer unavailable")

// ErrExhausted is returned when every strategy in the chain failed or
// produced an empty result.
var ErrExhausted = errors.New("all summarizers exhausted")

// Strategy produces a summary of the given text in the requested mode.
// Returning ErrUnavailable (possibly wrapped), any other error, or an empty
// result all cause the chain to try the next strategy.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error)
}
