package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("openai status 429: rate limited")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDoStopsAtAttemptBudget(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("connection reset by peer")
	})
	if err == nil {
		t.Fatal("expected the final error to surface")
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestDoDoesNotRetryAuthFailure(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("openai status 401: invalid api key")
	})
	if err == nil {
		t.Fatal("expected the auth error to surface")
	}
	if calls != 1 {
		t.Fatalf("auth failures must not be retried, got %d calls", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, fastConfig(), func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("timeout awaiting response")
	})
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("cancelled context must stop the loop, got %d calls", calls)
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("openai status 429: rate limited"), true},
		{errors.New("rate limit exceeded"), true},
		{errors.New("openai status 500"), true},
		{errors.New("openai status 503: server_error"), true},
		{errors.New("request timeout"), true},
		{errors.New("connection refused"), true},
		{errors.New("connection reset by peer"), true},
		{errors.New("unexpected EOF"), true},
		{context.DeadlineExceeded, true},
		{errors.New("openai status 400: invalid_request_error"), false},
		{errors.New("openai status 401: bad api key"), false},
		{errors.New("openai status 403"), false},
		{context.Canceled, false},
		{errors.New("no json object found in llm response"), false},
	}
	for _, tc := range cases {
		name := "nil"
		if tc.err != nil {
			name = tc.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := IsTransient(tc.err); got != tc.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsTransientWrappedError(t *testing.T) {
	err := fmt.Errorf("complete: %w", errors.New("openai status 429"))
	if !IsTransient(err) {
		t.Fatal("wrapped transient errors must stay transient")
	}
}
