package headless5250

import (
	"context"
	"testing"
	"time"
)

func writeText(t *testing.T, s *Screen, row, col byte, text string) {
	t.Helper()
	data := []byte{0x11, row, col}
	for _, r := range text {
		b, ok := CodePage37.Encode(r)
		if !ok {
			t.Fatalf("cannot encode %q", r)
		}
		data = append(data, b)
	}
	if err := s.WriteOrders(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForTextAlreadyPresent(t *testing.T) {
	s := New()
	writeText(t, s, 1, 1, "READY")

	start := time.Now()
	if !s.WaitForText("READY", 5*time.Second) {
		t.Fatal("expected immediate success")
	}
	if time.Since(start) > time.Second {
		t.Error("success must return without waiting out the timeout")
	}
}

func TestWaitForTextZeroTimeout(t *testing.T) {
	s := New()

	// Non-positive timeout means a single check, never an infinite wait.
	start := time.Now()
	if s.WaitForText("NOPE", 0) {
		t.Fatal("expected failure for absent text")
	}
	if s.WaitForText("NOPE", -time.Second) {
		t.Fatal("expected failure for negative timeout")
	}
	if time.Since(start) > time.Second {
		t.Error("non-positive timeout must not block")
	}

	writeText(t, s, 1, 1, "NOPE")
	if !s.WaitForText("NOPE", 0) {
		t.Error("expected single check to succeed on present text")
	}
}

func TestWaitForTextDelayed(t *testing.T) {
	s := New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.WriteOrders([]byte{0x11, 3, 1, 0xD6, 0xD2}) // "OK"
	}()

	if !s.WaitForText("OK", 5*time.Second) {
		t.Fatal("expected text to arrive before the timeout")
	}
}

func TestWaitForTextTimeout(t *testing.T) {
	s := New()

	start := time.Now()
	if s.WaitForText("NEVER", 50*time.Millisecond) {
		t.Fatal("expected timeout failure")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("failure must take the full timeout, returned after %v", elapsed)
	}
}

func TestWaitForTextDisappear(t *testing.T) {
	s := New()
	writeText(t, s, 2, 1, "BUSY")

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.Clear()
	}()

	if !s.WaitForTextDisappear("BUSY", 5*time.Second) {
		t.Fatal("expected text to disappear before the timeout")
	}
}

func TestWaitForCursor(t *testing.T) {
	s := New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.SetCursor(10, 20)
	}()

	if !s.WaitForCursor(10, 20, 5*time.Second) {
		t.Fatal("expected cursor to arrive before the timeout")
	}
}

func TestWaitForUnlock(t *testing.T) {
	s := New()
	s.SetKeyboardLocked(true)

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.SetKeyboardLocked(false)
	}()

	if !s.WaitForUnlock(5 * time.Second) {
		t.Fatal("expected unlock before the timeout")
	}
}

func TestWaitForOIAClear(t *testing.T) {
	s := New()
	s.SetInputInhibited(InhibitSystemWait)

	if s.WaitForOIAClear(0) {
		t.Fatal("expected failure while input inhibited")
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.SetInputInhibited(InhibitNotInhibited)
	}()

	if !s.WaitForOIAClear(5 * time.Second) {
		t.Fatal("expected OIA to clear before the timeout")
	}
}

func TestWaitCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if s.WaitForTextContext(ctx, "NEVER", 10*time.Second) {
		t.Fatal("expected cancelled wait to fail")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation must return promptly, not wait out the timeout")
	}
}

func TestWaitConcurrentWaiters(t *testing.T) {
	s := New()
	done := make(chan bool, 3)

	for i := 0; i < 3; i++ {
		go func() { done <- s.WaitForText("SHARED", 5*time.Second) }()
	}

	time.Sleep(20 * time.Millisecond)
	writeText(t, s, 1, 1, "SHARED")

	for i := 0; i < 3; i++ {
		if !<-done {
			t.Fatal("expected every waiter to observe the text")
		}
	}
}
