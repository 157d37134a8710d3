package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Connect retries fn with exponential backoff for up to maxElapsed. It is
// meant for dialing dependencies at startup.
func Connect[T any](ctx context.Context, name string, maxElapsed time.Duration, logger *zap.Logger, fn func() (T, error)) (T, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.Multiplier = 2.0
	exp.MaxInterval = 5 * time.Second
	exp.RandomizationFactor = 0.5
	exp.Reset()

	attempt := 0
	op := func() (T, error) {
		attempt++
		v, err := fn()
		if err != nil {
			logger.Warn("dependency not ready",
				zap.String("dependency", name),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return v, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
}
