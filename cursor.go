package headless5250

import "fmt"

// Cursor tracks the text cursor. Row and Col are 1-based externally.
// Active (drawing enabled) and Shown (currently visible, e.g. blink phase)
// are independent flags; both persist across screen rewrites unless
// explicitly changed.
type Cursor struct {
	Row    int
	Col    int
	Active bool
	Shown  bool
}

// NewCursor creates a cursor at (1,1), active and shown.
func NewCursor() *Cursor {
	return &Cursor{Row: 1, Col: 1, Active: true, Shown: true}
}

// CursorPos returns the 1-based cursor row and column.
func (s *Screen) CursorPos() (row, col int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Row, s.cursor.Col
}

// CursorLinearPos returns the cursor position as a linear index.
func (s *Screen) CursorLinearPos() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linearPos(s.cursor.Row, s.cursor.Col)
}

// CursorActive returns true if cursor drawing is enabled.
func (s *Screen) CursorActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Active
}

// CursorShown returns true if the cursor is currently visible.
func (s *Screen) CursorShown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Shown
}

// SetCursorActive enables or disables cursor drawing.
func (s *Screen) SetCursorActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Active = active
	s.signal()
}

// SetCursorShown sets cursor visibility (blink phase).
func (s *Screen) SetCursorShown(shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Shown = shown
	s.signal()
}

// SetCursor places the cursor at the 1-based row/col. Out-of-range input
// is clamped into the screen rectangle: interactive cursor placement is
// forgiving, unlike protocol SBA addressing which is strict.
func (s *Screen) SetCursor(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clamp(row, 1, s.rows)
	s.cursor.Col = clamp(col, 1, s.cols)
	s.signal()
}

// MoveCursor moves the cursor to the given linear position. The move is
// rejected while the keyboard is locked, and for any position outside
// [0, rows*cols): out-of-range moves always fail with a range error rather
// than being clamped or tolerated.
func (s *Screen) MoveCursor(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.oia.locked {
		return ErrKeyboardLocked
	}
	if pos < 0 || pos >= s.rows*s.cols {
		return fmt.Errorf("%w: %d", ErrCursorRange, pos)
	}
	s.cursor.Row = pos/s.cols + 1
	s.cursor.Col = pos%s.cols + 1
	s.signal()
	return nil
}

// GotoField moves the cursor to the start of the nth field, 1-based, and
// updates current-field tracking. Fails without moving for n <= 0 or n
// beyond the field count. Cursor show/active flags are not altered.
func (s *Screen) GotoField(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.fields.Field(n)
	if f == nil {
		return fmt.Errorf("%w: %d", ErrNoField, n)
	}
	s.fields.SetCurrent(n)
	s.cursor.Row = f.StartPos/s.cols + 1
	s.cursor.Col = f.StartPos%s.cols + 1
	s.signal()
	return nil
}

// Tab moves the cursor to the start of the next unprotected field, wrapping
// past the end of the field table. The cursor stays put if the screen has
// no unprotected fields.
func (s *Screen) Tab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabLocked(1)
}

// Backtab moves the cursor to the start of the previous unprotected field,
// wrapping past the start of the field table.
func (s *Screen) Backtab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabLocked(-1)
}

func (s *Screen) tabLocked(dir int) {
	pos := s.linearPos(s.cursor.Row, s.cursor.Col)
	var n int
	if dir >= 0 {
		n = s.fields.NextUnprotected(pos)
	} else {
		n = s.fields.PrevUnprotected(pos)
	}
	if n == 0 {
		return
	}
	f := s.fields.Field(n)
	s.fields.SetCurrent(n)
	s.cursor.Row = f.StartPos/s.cols + 1
	s.cursor.Col = f.StartPos%s.cols + 1
	s.signal()
}

// Home moves the cursor to the insert cursor position from the last IC
// order, or (1,1) if none was received.
func (s *Screen) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = s.homePos/s.cols + 1
	s.cursor.Col = s.homePos%s.cols + 1
	s.signal()
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
