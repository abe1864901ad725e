package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RetryPolicy bounds how a transaction is re-run after a retryable failure.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the backoff unit; the wait after failed attempt n (0-based)
	// is BaseDelay * 2^n.
	BaseDelay time.Duration
	// IsRetryable classifies errors. Defaults to IsRetryable.
	IsRetryable func(error) bool
	// OnRetry is called before each backoff sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryPolicy returns three attempts with a 50ms base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   50 * time.Millisecond,
		IsRetryable: IsRetryable,
	}
}

// Backoff returns the delay after the given failed attempt (0-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<attempt)
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	if p.IsRetryable == nil {
		p.IsRetryable = IsRetryable
	}
	return p
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("transaction failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// WithRetryableTransaction runs fn inside a transaction, re-running the whole
// transaction when it fails with an error the policy deems retryable.
// Non-retryable errors are returned unchanged after the first failure.
func WithRetryableTransaction(ctx context.Context, db *gorm.DB, policy RetryPolicy, fn func(tx *gorm.DB) error) error {
	policy = policy.normalized()

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if !policy.IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == policy.MaxAttempts-1 {
			break
		}

		delay := policy.Backoff(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt+1, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: policy.MaxAttempts, Err: lastErr}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
