package headless5250

import (
	"context"
	"time"
)

// waitFor blocks until the predicate holds, the timeout elapses, or the
// context is cancelled. A non-positive timeout means "check once, no
// waiting" - it never blocks and is never treated as infinite. On success
// the wait returns immediately; on failure it returns only after the full
// timeout. The predicate runs under the read lock; the lock is never held
// while sleeping. Waits are woken by the notification channel the decoder
// closes on every mutation, so there is no fixed poll granularity.
func (s *Screen) waitFor(ctx context.Context, timeout time.Duration, pred func() bool) bool {
	s.mu.RLock()
	ok := pred()
	ch := s.notify
	s.mu.RUnlock()
	if ok || timeout <= 0 {
		return ok
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			// Final check: a mutation may have raced the timer.
			s.mu.RLock()
			ok = pred()
			s.mu.RUnlock()
			return ok
		case <-ch:
			s.mu.RLock()
			ok = pred()
			ch = s.notify
			s.mu.RUnlock()
			if ok {
				return true
			}
		}
	}
}

// WaitForText blocks until the text appears anywhere on the screen.
func (s *Screen) WaitForText(text string, timeout time.Duration) bool {
	return s.WaitForTextContext(context.Background(), text, timeout)
}

// WaitForTextContext is WaitForText with cancellation. A cancelled wait
// returns false promptly and leaves no state locked.
func (s *Screen) WaitForTextContext(ctx context.Context, text string, timeout time.Duration) bool {
	return s.waitFor(ctx, timeout, func() bool { return s.containsText(text) })
}

// WaitForTextDisappear blocks until the text is no longer on the screen.
func (s *Screen) WaitForTextDisappear(text string, timeout time.Duration) bool {
	return s.WaitForTextDisappearContext(context.Background(), text, timeout)
}

// WaitForTextDisappearContext is WaitForTextDisappear with cancellation.
func (s *Screen) WaitForTextDisappearContext(ctx context.Context, text string, timeout time.Duration) bool {
	return s.waitFor(ctx, timeout, func() bool { return !s.containsText(text) })
}

// WaitForCursor blocks until the cursor reaches the 1-based row/col.
func (s *Screen) WaitForCursor(row, col int, timeout time.Duration) bool {
	return s.WaitForCursorContext(context.Background(), row, col, timeout)
}

// WaitForCursorContext is WaitForCursor with cancellation.
func (s *Screen) WaitForCursorContext(ctx context.Context, row, col int, timeout time.Duration) bool {
	return s.waitFor(ctx, timeout, func() bool {
		return s.cursor.Row == row && s.cursor.Col == col
	})
}

// WaitForUnlock blocks until the keyboard unlocks.
func (s *Screen) WaitForUnlock(timeout time.Duration) bool {
	return s.WaitForUnlockContext(context.Background(), timeout)
}

// WaitForUnlockContext is WaitForUnlock with cancellation.
func (s *Screen) WaitForUnlockContext(ctx context.Context, timeout time.Duration) bool {
	return s.waitFor(ctx, timeout, func() bool { return !s.oia.locked })
}

// WaitForOIAClear blocks until the keyboard is unlocked and input is not
// inhibited.
func (s *Screen) WaitForOIAClear(timeout time.Duration) bool {
	return s.WaitForOIAClearContext(context.Background(), timeout)
}

// WaitForOIAClearContext is WaitForOIAClear with cancellation.
func (s *Screen) WaitForOIAClearContext(ctx context.Context, timeout time.Duration) bool {
	return s.waitFor(ctx, timeout, func() bool {
		return !s.oia.locked && s.oia.inputInhibited == InhibitNotInhibited
	})
}
