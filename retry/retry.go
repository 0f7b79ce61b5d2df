// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retry

import (
	"context"
	"log/slog"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first. Must be > 0.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt. It doubles on each retry.
	// Zero retries immediately.
	BaseDelay time.Duration

	// Retryable reports whether an error is worth another attempt.
	// A nil Retryable retries every error.
	Retryable func(error) bool

	// Logger receives debug output about retries. Defaults to slog.Default().
	Logger *slog.Logger
}

// Backoff returns the go-retry schedule for p: exponential from BaseDelay,
// capped at MaxAttempts-1 retries.
func (p Policy) Backoff() goretry.Backoff {
	var b goretry.Backoff
	if p.BaseDelay > 0 {
		b = goretry.NewExponential(p.BaseDelay)
	} else {
		b = goretry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	}
	return goretry.WithMaxRetries(uint64(max(p.MaxAttempts-1, 0)), b)
}

// Do runs operation until it succeeds, returns a non-retryable error,
// the attempts run out, or ctx is done.
// Returns the error from the last attempt if all attempts fail.
func (p Policy) Do(ctx context.Context, operation func() error) error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attempt := 0
	return goretry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		attempt++
		err := operation()
		if err == nil {
			if attempt > 1 {
				logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt < p.MaxAttempts {
			logger.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", p.MaxAttempts, "err", err)
		}
		return goretry.RetryableError(err)
	})
}

// WithBackoff retries an operation with exponential backoff on any error.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
func WithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	return Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}.Do(ctx, operation)
}
