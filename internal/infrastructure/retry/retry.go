// Package retry provides a generic retry mechanism with exponential backoff.
// Catalog calls go through it so transient upstream failures do not surface
// as empty result sets.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Config holds the retry configuration options.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay increases after each retry.
	Multiplier float64

	// JitterFactor is the factor for random jitter (0.0 to 1.0).
	// A value of 0.1 means up to 10% jitter will be added.
	JitterFactor float64

	// RetryIf is an optional predicate to determine if an error is retryable.
	// If nil, all errors are considered retryable.
	RetryIf func(error) bool
}

// DefaultConfig provides sensible defaults for retry behavior.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
	RetryIf:      nil,
}

// CatalogConfig is tuned for calls to the upstream catalog API.
var CatalogConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
	RetryIf:      nil,
}

// Do executes the function with retry logic.
// It returns nil if the function succeeds, or the last error if all attempts fail.
func Do(ctx context.Context, fn func() error, cfg Config) error {
	_, err := DoWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	}, cfg)
	return err
}

// DoWithResult executes a function that returns a value with retry logic.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var result T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if cfg.RetryIf != nil && !cfg.RetryIf(lastErr) {
			return result, lastErr
		}

		// Don't sleep after the last attempt.
		if attempt == cfg.MaxAttempts {
			break
		}

		sleepTime := calculateSleepTime(delay, cfg.MaxDelay, cfg.JitterFactor)

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(sleepTime):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return result, lastErr
}

// calculateSleepTime caps the delay and adds random jitter so concurrent
// retries do not synchronize against the upstream.
func calculateSleepTime(delay, maxDelay time.Duration, jitterFactor float64) time.Duration {
	if maxDelay > 0 && delay > maxDelay {
		delay = maxDelay
	}
	if jitterFactor > 0 {
		jitter := time.Duration(rand.Float64() * jitterFactor * float64(delay))
		delay += jitter
	}
	return delay
}
