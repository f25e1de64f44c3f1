package wait

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fast = Options{
	Timeout:         time.Second,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

func TestUntil_MetAfterRetries(t *testing.T) {
	calls := 0
	err := Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 checks, got %d", calls)
	}
}

func TestUntil_FirstCheckImmediate(t *testing.T) {
	calls := 0
	err := Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		calls++
		return true, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 check, got %d", calls)
	}
}

func TestUntil_Timeout(t *testing.T) {
	opts := Options{
		Timeout:         20 * time.Millisecond,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}

	err := Until(context.Background(), opts, func(ctx context.Context) (bool, error) {
		return false, nil
	})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestUntil_ConditionError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	err := Until(context.Background(), fast, func(ctx context.Context) (bool, error) {
		calls++
		return false, boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected condition error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("condition error should stop polling, got %d checks", calls)
	}
}

func TestUntil_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, fast, func(ctx context.Context) (bool, error) {
		return false, nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUntil_ZeroTimeoutDisabled(t *testing.T) {
	called := false
	err := Until(context.Background(), Options{}, func(ctx context.Context) (bool, error) {
		called = true
		return false, nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("condition should not be checked when waiting is disabled")
	}
}
