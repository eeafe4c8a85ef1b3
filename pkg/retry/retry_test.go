package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstTry", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		var calls int
		c := retry.Config{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), c, func() error {
			calls++
			if calls < 3 {
				return errTest
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		c := retry.Config{
			MaxAttempts: 3,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
		err := retry.Do(t.Context(), c, func() error {
			calls++
			return errTest
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTest)
		assert.Equal(t, 3, calls)
	})

	t.Run("StopsOnNonRetryable", func(t *testing.T) {
		var calls int
		c := retry.Config{
			MaxAttempts: 5,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return false },
		}
		err := retry.Do(t.Context(), c, func() error {
			calls++
			return errTest
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := retry.Do(ctx, retry.Config{MaxAttempts: 3}, func() error {
			return errTest
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDoWithResult(t *testing.T) {
	c := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}

	var calls int
	v, err := retry.DoWithResult(t.Context(), c, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errTest
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
