package lockstate

import (
	"context"
	"testing"
	"time"
)

func TestValidateTimeout_AcceptsAllowedValues(t *testing.T) {
	for _, d := range AllowedTimeouts {
		if err := ValidateTimeout(d); err != nil {
			t.Fatalf("ValidateTimeout(%v) = %v, want nil", d, err)
		}
	}
}

func TestValidateTimeout_RejectsOthers(t *testing.T) {
	for _, d := range []time.Duration{0, 3 * time.Minute, 90 * time.Second, time.Hour + time.Minute} {
		if err := ValidateTimeout(d); err != ErrInvalidTimeout {
			t.Fatalf("ValidateTimeout(%v) = %v, want ErrInvalidTimeout", d, err)
		}
	}
}

func TestAutoLocker_FiresAfterIdleTimeout(t *testing.T) {
	a := NewAutoLocker()
	fired := make(chan struct{})

	ctx := context.Background()
	a.lastActivity = time.Now().Add(-2 * time.Minute)
	a.Start(ctx, 1*time.Minute, func() { close(fired) })
	defer a.Stop()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("onTimeout was not called")
	}
}

func TestAutoLocker_StopPreventsFire(t *testing.T) {
	a := NewAutoLocker()
	fired := make(chan struct{})

	ctx := context.Background()
	a.Start(ctx, 1*time.Minute, func() { close(fired) })
	a.Stop()

	select {
	case <-fired:
		t.Fatalf("onTimeout fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAutoLocker_RecordActivityDebounced(t *testing.T) {
	a := NewAutoLocker()
	first := a.lastActivity

	a.RecordActivity()
	if a.lastActivity != first {
		t.Fatalf("expected RecordActivity to be debounced immediately after construction")
	}
}

// TestAutoLocker_OnTimeoutCanCallStopWithoutDeadlock guards against a
// self-join: production wiring has onTimeout call back into Stop (locking
// the vault stops its own idle timer). If Start's firing goroutine ever
// calls onTimeout before its own wg.Done(), this hangs forever.
func TestAutoLocker_OnTimeoutCanCallStopWithoutDeadlock(t *testing.T) {
	a := NewAutoLocker()
	done := make(chan struct{})

	ctx := context.Background()
	a.lastActivity = time.Now().Add(-2 * time.Minute)
	a.Start(ctx, 1*time.Minute, func() {
		a.Stop()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("onTimeout calling Stop() deadlocked")
	}
}

func TestAutoLocker_StartIsIdempotentToCallTwice(t *testing.T) {
	a := NewAutoLocker()
	ctx := context.Background()

	a.Start(ctx, 5*time.Minute, func() {})
	a.Start(ctx, 5*time.Minute, func() {})
	a.Stop()
}
