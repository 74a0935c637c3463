package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	require.Equal(t, time.Millisecond, b.NextDuration)

	want := []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, w := range want {
		require.NoError(t, b.Backoff(context.Background()))
		require.Equal(t, w, b.NextDuration, "step %d", i)
	}
	require.Equal(t, 3, b.Count())

	b.Reset()
	require.Equal(t, 0, b.Count())
	require.Equal(t, time.Millisecond, b.NextDuration)
}

func TestLinear(t *testing.T) {
	b := NewLinear(time.Millisecond, 0)
	require.Equal(t, time.Millisecond, b.NextDuration)
	require.NoError(t, b.Backoff(context.Background()))
	require.Equal(t, 2*time.Millisecond, b.NextDuration)
}

func TestBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	b := NewExponential(time.Second, 0)
	require.Equal(t, context.DeadlineExceeded, b.Backoff(ctx))
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("eventually succeeds", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewExponential(time.Millisecond, 0), 5, func() error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 2, func() error {
			calls++
			return errBoom
		})
		require.Equal(t, errBoom, err)
		require.Equal(t, 2, calls)
	})

	t.Run("permanent stops", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 5, func() error {
			calls++
			return Permanent(errBoom)
		})
		require.Equal(t, errBoom, err)
		require.Equal(t, 1, calls)
	})

	t.Run("context done keeps last error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := Retry(ctx, NewLinear(50*time.Millisecond, 0), 0, func() error {
			return errBoom
		})
		require.Equal(t, errBoom, err)
	})
}
