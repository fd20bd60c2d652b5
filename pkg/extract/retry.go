package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/errors"
	"github.com/caseatlas/caseatlas/pkg/logging"
)

// RetryPolicy describes how a backend's failures are retried: how many
// attempts, how long to wait between them and which error classes are
// worth another attempt. Policies are values so backend behaviors stay
// independently testable.
type RetryPolicy struct {
	// MaxAttempts bounds the total number of calls, first try included.
	MaxAttempts int

	// Backoff is the fixed wait between attempts.
	Backoff time.Duration

	// Retryable decides whether a failure class is worth another
	// attempt. A nil Retryable retries everything.
	Retryable func(error) bool
}

// LongFormPolicy retries every failure of the long-context backend,
// bounded at five attempts.
func LongFormPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: constants.LongFormMaxAttempts,
		Backoff:     constants.RetryBackoff,
	}
}

// ShortFormPolicy retries only rate-limit failures of the short-context
// backend, bounded at three attempts. Any other failure is fatal.
func ShortFormPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: constants.ShortFormMaxAttempts,
		Backoff:     constants.RetryBackoff,
		Retryable:   errors.IsRateLimited,
	}
}

// Do runs fn under the policy. It returns the first success, the first
// non-retryable failure, or ErrExhaustedRetries wrapping the last
// failure once attempts run out. The backoff sleep respects context
// cancellation.
func (p RetryPolicy) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return "", err
		}

		if attempt == p.MaxAttempts {
			break
		}

		logging.Ctx(ctx).Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", p.MaxAttempts).
			Dur("backoff", p.Backoff).
			Msg("Backend call failed, backing off")

		select {
		case <-time.After(p.Backoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", &exhaustedError{attempts: p.MaxAttempts, last: lastErr}
}

// exhaustedError marks a retry ceiling hit, wrapping the last failure.
type exhaustedError struct {
	attempts int
	last     error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("exhausted %d attempts: %v", e.attempts, e.last)
}

func (e *exhaustedError) Unwrap() error { return e.last }

func (e *exhaustedError) Is(target error) bool {
	return target == errors.ErrExhaustedRetries
}
