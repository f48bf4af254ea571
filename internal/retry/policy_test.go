package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, BackoffFixed, p.Mode)
	assert.Equal(t, 100*time.Millisecond, p.Initial)
	assert.Equal(t, time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(BackoffLinear, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, BackoffLinear, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	unknown := NewPolicy("jittered", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), unknown)
}

func TestDelayModes(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{"fixed", NewPolicy(BackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3),
			[]time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}},
		{"linear", NewPolicy(BackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5),
			[]time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}},
		{"exponential", NewPolicy(BackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5),
			[]time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 160 * time.Millisecond, 160 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "attempt %d", i+1)
			}
		})
	}

	assert.Zero(t, DefaultPolicy().Delay(0))
	assert.Zero(t, DefaultPolicy().Delay(-3))
	assert.Equal(t, time.Minute, NewPolicy(BackoffExponential, time.Second, time.Minute, 100).Delay(90))
}

func TestDo(t *testing.T) {
	fast := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 3)
	errTransient := errors.New("transient")

	t.Run("succeeds after retries", func(t *testing.T) {
		calls := 0
		err := fast.Do(t.Context(), nil, func() error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := fast.Do(t.Context(), nil, func() error {
			calls++
			return errTransient
		})
		require.ErrorIs(t, err, errTransient)
		assert.Equal(t, 4, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := fast.Do(t.Context(), func(error) bool { return false }, func() error {
			calls++
			return errTransient
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		calls := 0
		err := NewPolicy(BackoffFixed, time.Hour, time.Hour, 3).Do(ctx, nil, func() error {
			calls++
			return errTransient
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
