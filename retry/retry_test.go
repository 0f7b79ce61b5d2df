package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := WithBackoff(context.Background(), operation, 3, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := WithBackoff(context.Background(), operation, 5, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should succeed on third attempt")
}

func TestWithBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func() error {
		attempts++
		return expectedErr
	}

	err := WithBackoff(context.Background(), operation, 3, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the original error")
	assert.Equal(t, 3, attempts, "should attempt exactly maxAttempts times")
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	}

	err := WithBackoff(ctx, operation, 10, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2, "should stop when context is canceled")
}

func TestWithBackoff_InvalidMaxAttempts(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
	}{
		{"zero", 0},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WithBackoff(context.Background(), func() error { return nil }, tt.maxAttempts, time.Millisecond)
			assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		})
	}
}

func TestPolicy_StopsOnNonRetryable(t *testing.T) {
	transient := errors.New("connection reset")
	fatal := errors.New("syntax error")

	attempts := 0
	policy := Policy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, transient) },
	}

	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return transient
		}
		return fatal
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 2, attempts)
}

func TestPolicy_SingleRetry(t *testing.T) {
	transient := errors.New("busy")
	attempts := 0
	policy := Policy{MaxAttempts: 2, Retryable: func(error) bool { return true }}

	err := policy.Do(context.Background(), func() error {
		attempts++
		return transient
	})
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 2, attempts)
}

func TestPolicy_BackoffDoubles(t *testing.T) {
	var stamps []time.Time
	policy := Policy{MaxAttempts: 3, BaseDelay: 20 * time.Millisecond}

	_ = policy.Do(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		return errors.New("fail")
	})

	require.Len(t, stamps, 3)
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 40*time.Millisecond)
}

func TestPolicy_BackoffSchedule(t *testing.T) {
	b := Policy{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond}.Backoff()

	d, stop := b.Next()
	assert.False(t, stop)
	assert.Equal(t, 10*time.Millisecond, d)

	d, stop = b.Next()
	assert.False(t, stop)
	assert.Equal(t, 20*time.Millisecond, d)

	_, stop = b.Next()
	assert.True(t, stop, "two retries for three attempts")
}

func TestPolicy_ZeroDelayBackoff(t *testing.T) {
	b := Policy{MaxAttempts: 2}.Backoff()

	d, stop := b.Next()
	assert.False(t, stop)
	assert.Zero(t, d)

	_, stop = b.Next()
	assert.True(t, stop)
}
