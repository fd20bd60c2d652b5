package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caseatlas/caseatlas/pkg/errors"
)

func TestRetryPolicyFirstSuccess(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	out, err := policy.Do(context.Background(), func() (string, error) {
		calls++
		return "answer", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicyRetriesEverythingByDefault(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	_, err := policy.Do(context.Background(), func() (string, error) {
		calls++
		return "", errors.NewBackendError("long-form", 400, "bad request")
	})

	assert.ErrorIs(t, err, errors.ErrExhaustedRetries)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyRecoversMidway(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, Backoff: time.Millisecond}

	calls := 0
	out, err := policy.Do(context.Background(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.NewBackendError("long-form", 500, "overloaded")
		}
		return "answer", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 3, calls)
}

func TestShortFormPolicyStopsOnFatal(t *testing.T) {
	policy := ShortFormPolicy()
	policy.Backoff = time.Millisecond

	calls := 0
	_, err := policy.Do(context.Background(), func() (string, error) {
		calls++
		return "", errors.NewBackendError("short-form", 401, "bad key")
	})

	assert.ErrorIs(t, err, errors.ErrFatal)
	assert.NotErrorIs(t, err, errors.ErrExhaustedRetries)
	assert.Equal(t, 1, calls)
}

func TestShortFormPolicyRetriesRateLimits(t *testing.T) {
	policy := ShortFormPolicy()
	policy.Backoff = time.Millisecond

	calls := 0
	_, err := policy.Do(context.Background(), func() (string, error) {
		calls++
		return "", errors.NewBackendError("short-form", 429, "slow down")
	})

	assert.ErrorIs(t, err, errors.ErrExhaustedRetries)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyHonorsCancellation(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, Backoff: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := policy.Do(ctx, func() (string, error) {
		return "", errors.NewBackendError("long-form", 500, "down")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
