package headless5250

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := New()

	if s.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", s.Rows())
	}
	if s.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", s.Cols())
	}
	if s.Length() != 1920 {
		t.Errorf("expected 1920 positions, got %d", s.Length())
	}
	if s.IsKeyboardLocked() {
		t.Error("expected keyboard unlocked on a fresh screen")
	}
}

func TestScreenWithSize(t *testing.T) {
	s := New(WithSize(27, 132))

	if s.Rows() != 27 || s.Cols() != 132 {
		t.Errorf("expected 27x132, got %dx%d", s.Rows(), s.Cols())
	}

	// Bottom-right addressing must work on the larger screen.
	err := s.WriteOrders([]byte{0x11, 27, 132, 0xC1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Planes().Char(27*132-1) != 'A' {
		t.Error("expected write at the last cell")
	}
}

func TestScreenWithSizeDefaultsInvalid(t *testing.T) {
	s := New(WithSize(0, -5))

	if s.Rows() != 24 || s.Cols() != 80 {
		t.Errorf("expected defaults for invalid size, got %dx%d", s.Rows(), s.Cols())
	}
}

func TestGetText(t *testing.T) {
	s := New()
	writeText(t, s, 3, 5, "HELLO WORLD")

	if got := s.GetText(3, 5, 5); got != "HELLO" {
		t.Errorf("expected 'HELLO', got %q", got)
	}
	if got := s.GetText(3, 11, 5); got != "WORLD" {
		t.Errorf("expected 'WORLD', got %q", got)
	}

	// Length past the row end is cut at the row boundary.
	if got := s.GetText(3, 78, 10); len(got) != 3 {
		t.Errorf("expected 3 chars at row end, got %q", got)
	}

	// Out-of-range coordinates return nothing.
	if got := s.GetText(0, 1, 5); got != "" {
		t.Errorf("expected empty for row 0, got %q", got)
	}
	if got := s.GetText(25, 1, 5); got != "" {
		t.Errorf("expected empty for row 25, got %q", got)
	}
}

func TestRowText(t *testing.T) {
	s := New()
	writeText(t, s, 2, 1, "FIRST")

	row := s.RowText(2)
	if !strings.HasPrefix(row, "FIRST") {
		t.Errorf("expected row to start with 'FIRST', got %q", row)
	}
	if len(row) != 80 {
		t.Errorf("expected full 80-char row, got %d", len(row))
	}
}

func TestScreenString(t *testing.T) {
	s := New()
	writeText(t, s, 1, 1, "TOP")
	writeText(t, s, 3, 1, "THIRD")

	got := s.String()
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (trailing blanks omitted), got %d", len(lines))
	}
	if lines[0] != "TOP" || lines[1] != "" || lines[2] != "THIRD" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestContainsText(t *testing.T) {
	s := New()
	writeText(t, s, 5, 20, "SIGN ON")

	if !s.ContainsText("SIGN ON") {
		t.Error("expected text found")
	}
	if s.ContainsText("SIGN OFF") {
		t.Error("expected text not found")
	}
}

func TestScreenClear(t *testing.T) {
	s := New()
	s.WriteOrders([]byte{0x11, 1, 1, 0xC1, 0x11, 3, 1, 0x1D, 0x40, 0x00, 0x20, 0x00, 0x05})
	s.SetCursorShown(false)

	s.Clear()

	if s.Planes().Char(0) != ' ' {
		t.Error("expected characters cleared")
	}
	if s.Fields().Count() != 0 {
		t.Error("expected field table cleared")
	}
	if s.CursorShown() {
		t.Error("cursor visibility must survive a clear")
	}
}

func TestIsInField(t *testing.T) {
	s := New()
	s.WriteOrders([]byte{
		0x11, 5, 10, 0x1D, 0x40, 0x00, 0x20, 0x00, 0x05, // input at (5,11)
		0x11, 7, 10, 0x1D, 0x60, 0x00, 0x20, 0x00, 0x05, // bypass at (7,11)
	})

	if !s.IsInField(5, 11) || !s.IsInField(5, 15) {
		t.Error("expected positions inside the input field")
	}
	if s.IsInField(5, 16) {
		t.Error("expected position after the field outside")
	}
	if s.IsInField(7, 11) {
		t.Error("protected fields are not input fields")
	}
	if s.IsInField(0, 1) || s.IsInField(25, 81) {
		t.Error("out-of-range coordinates are never in a field")
	}
}

func TestErrorRowFromHeader(t *testing.T) {
	s := New()

	s.WriteOrders([]byte{0x01, 0x04, 0x00, 0x00, 22})

	if s.ErrorRow() != 22 {
		t.Errorf("expected error row 22, got %d", s.ErrorRow())
	}
}

func TestSFAttributeCellBeforeData(t *testing.T) {
	s := New()

	// The field's screen attribute occupies the cell before the data.
	err := s.WriteOrders([]byte{0x11, 2, 1, 0x1D, 0x20, 0x00, 0x04, 0xC1, 0xC2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := 80 // attribute cell at (2,1)
	if !s.Planes().IsAttributePlace(pos) {
		t.Error("expected attribute cell")
	}
	if got := s.GetText(2, 2, 2); got != "AB" {
		t.Errorf("expected 'AB', got %q", got)
	}
}
