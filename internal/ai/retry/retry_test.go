package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDo_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), zap.NewNop(), "flaky", Policy{Attempts: 3, InitialDelay: time.Millisecond},
		func(context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("boom")
			}
			return "ok", nil
		})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")
	_, err := Do(context.Background(), zap.NewNop(), "hopeless", Policy{Attempts: 3, InitialDelay: time.Millisecond},
		func(context.Context) (int, error) {
			attempts++
			return 0, boom
		})

	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "hopeless failed after 3 attempts: boom")
}

func TestDo_BackoffDoubles(t *testing.T) {
	var calls []time.Time
	start := time.Now()
	_, _ = Do(context.Background(), zap.NewNop(), "timed", Policy{Attempts: 3, InitialDelay: 20 * time.Millisecond},
		func(context.Context) (int, error) {
			calls = append(calls, time.Now())
			return 0, errors.New("boom")
		})

	if assert.Len(t, calls, 3) {
		first := calls[1].Sub(calls[0])
		second := calls[2].Sub(calls[1])
		assert.GreaterOrEqual(t, first, 20*time.Millisecond)
		assert.GreaterOrEqual(t, second, 40*time.Millisecond)
	}
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, zap.NewNop(), "cancelled", Policy{Attempts: 3, InitialDelay: time.Hour},
		func(context.Context) (int, error) {
			return 0, errors.New("boom")
		})

	assert.ErrorIs(t, err, context.Canceled)
}
