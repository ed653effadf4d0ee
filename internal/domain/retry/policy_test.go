package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"creative-hub/services/messaging-api/internal/domain/retry"
)

func TestPolicy_CalculateDelay(t *testing.T) {
	tests := []struct {
		name        string
		policy      retry.Policy
		attempt     int
		expectedMin time.Duration
		expectedMax time.Duration
	}{
		{
			name: "fixed backoff - attempt 1",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffFixed,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        1 * time.Second,
				JitterFactor:    0,
			},
			attempt:     1,
			expectedMin: 100 * time.Millisecond,
			expectedMax: 100 * time.Millisecond,
		},
		{
			name: "fixed backoff - attempt 5",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffFixed,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        1 * time.Second,
				JitterFactor:    0,
			},
			attempt:     5,
			expectedMin: 100 * time.Millisecond,
			expectedMax: 100 * time.Millisecond,
		},
		{
			name: "linear backoff - attempt 3",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffLinear,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        1 * time.Second,
				JitterFactor:    0,
			},
			attempt:     3,
			expectedMin: 300 * time.Millisecond,
			expectedMax: 300 * time.Millisecond,
		},
		{
			name: "exponential backoff - attempt 3",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffExponential,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        10 * time.Second,
				JitterFactor:    0,
			},
			attempt:     3,
			expectedMin: 400 * time.Millisecond,
			expectedMax: 400 * time.Millisecond,
		},
		{
			name: "exponential backoff capped at max delay",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffExponential,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        500 * time.Millisecond,
				JitterFactor:    0,
			},
			attempt:     10,
			expectedMin: 500 * time.Millisecond,
			expectedMax: 500 * time.Millisecond,
		},
		{
			name: "jitter keeps delay within factor bounds",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffFixed,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        1 * time.Second,
				JitterFactor:    0.5,
			},
			attempt:     1,
			expectedMin: 50 * time.Millisecond,
			expectedMax: 150 * time.Millisecond,
		},
		{
			name: "attempt zero yields no delay",
			policy: retry.Policy{
				BackoffStrategy: retry.BackoffExponential,
				InitialDelay:    100 * time.Millisecond,
				MaxDelay:        1 * time.Second,
			},
			attempt:     0,
			expectedMin: 0,
			expectedMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay := tt.policy.CalculateDelay(tt.attempt)
			if delay < tt.expectedMin || delay > tt.expectedMax {
				t.Errorf("CalculateDelay(%d) = %v, want between %v and %v",
					tt.attempt, delay, tt.expectedMin, tt.expectedMax)
			}
		})
	}
}

func TestPolicy_Execute(t *testing.T) {
	policy := retry.Policy{
		MaxRetries:      2,
		InitialDelay:    time.Millisecond,
		MaxDelay:        time.Millisecond,
		BackoffStrategy: retry.BackoffFixed,
	}

	attempts := 0
	err := policy.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		attempts++
		if attempt < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestPolicy_Execute_Exhausted(t *testing.T) {
	policy := retry.Policy{
		MaxRetries:      1,
		InitialDelay:    time.Millisecond,
		MaxDelay:        time.Millisecond,
		BackoffStrategy: retry.BackoffFixed,
	}

	wantErr := errors.New("persistent")
	attempts := 0
	err := policy.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		attempts++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Execute error = %v, want %v", err, wantErr)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestPolicy_Execute_ContextCancelled(t *testing.T) {
	policy := retry.Policy{
		MaxRetries:      5,
		InitialDelay:    time.Hour,
		MaxDelay:        time.Hour,
		BackoffStrategy: retry.BackoffFixed,
	}

	ctx, cancel := context.WithCancel(context.Background())
	err := policy.Execute(ctx, func(ctx context.Context, attempt int) error {
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute error = %v, want context.Canceled", err)
	}
}

func TestNoRetryPolicy(t *testing.T) {
	policy := retry.NoRetryPolicy()

	attempts := 0
	_ = policy.Execute(context.Background(), func(ctx context.Context, attempt int) error {
		attempts++
		return errors.New("boom")
	})
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
