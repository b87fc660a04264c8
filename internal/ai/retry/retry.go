// Package retry wraps flaky provider calls with bounded retries and
// exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Policy bounds how often and how fast an operation is retried. The
// delay doubles after every failed attempt.
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
}

func (p Policy) withDefaults() Policy {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = time.Second
	}
	return p
}

// Do runs fn until it succeeds or the policy is exhausted. Context
// cancellation interrupts the backoff sleep and surfaces ctx.Err().
func Do[T any](ctx context.Context, log *zap.Logger, op string, policy Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	policy = policy.withDefaults()
	delay := policy.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if log != nil {
			log.Warn("operation failed",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", policy.Attempts),
				zap.Error(err),
			)
		}

		if attempt == policy.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return zero, fmt.Errorf("%s failed after %d attempts: %w", op, policy.Attempts, lastErr)
}
