package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 5, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got != 42 {
		t.Fatalf("got=%d want=42", got)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
}

func TestDo_SucceedsAttemptK(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 5, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got != "ok" {
		t.Fatalf("got=%q want=ok", got)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0
	wantErr := errors.New("still broken")
	_, err := Do(context.Background(), 5, func(context.Context) (int, error) {
		calls++
		return 0, wantErr
	})
	if calls != 5 {
		t.Fatalf("calls=%d want=5", calls)
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want=%v", err, wantErr)
	}
}

func TestDo_CancelledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, 5, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	})
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}
