package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"tubescribe/pkg/models"
)

// Chain runs strategies in registration order. Non-final strategies fall
// through on any error or empty result; the final strategy's outcome is
// returned as-is so its error reaches the caller.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

func NewChain(logger *slog.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     logger,
	}
}

// Summarize tries each strategy until one yields a non-empty result.
func (c *Chain) Summarize(ctx context.Context, mode models.SummaryMode, text string) (*models.SummaryResult, error) {
	if len(c.strategies) == 0 {
		return nil, ErrExhausted
	}

	for i, s := range c.strategies {
		final := i == len(c.strategies)-1

		res, err := s.Attempt(ctx, mode, text)
		if err != nil {
			if final {
				return nil, fmt.Errorf("%s: %w", s.Name(), err)
			}
			c.logger.Debug("summarizer failed, falling back",
				"strategy", s.Name(),
				"mode", string(mode),
				"error", err)
			continue
		}
		if res == nil || !res.NonEmpty() {
			if final {
				return res, nil
			}
			c.logger.Debug("summarizer returned empty result, falling back",
				"strategy", s.Name(),
				"mode", string(mode))
			continue
		}

		c.logger.Info("summary produced",
			"strategy", s.Name(),
			"mode", string(mode))
		return res, nil
	}

	return nil, ErrExhausted
}
