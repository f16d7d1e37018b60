package headless5250

import "testing"

func TestNewScreenPlanes(t *testing.T) {
	p := NewScreenPlanes(24, 80)

	if p.Rows() != 24 || p.Cols() != 80 {
		t.Errorf("expected 24x80, got %dx%d", p.Rows(), p.Cols())
	}
	if p.Len() != 1920 {
		t.Errorf("expected 1920 positions, got %d", p.Len())
	}
	for _, pos := range []int{0, 960, 1919} {
		if p.Char(pos) != ' ' {
			t.Errorf("expected blank at %d, got %q", pos, p.Char(pos))
		}
	}
}

func TestDisperseAttributeProperties(t *testing.T) {
	// Every attribute byte must disperse to in-range color indices and
	// extended flags inside the valid mask.
	for attr := 0; attr < 256; attr++ {
		if attr == 0 {
			continue // sentinel, never dispersed
		}
		c, ext := disperseAttribute(byte(attr))

		if ext&^ExtendedValidMask != 0 {
			t.Errorf("attr %d: extended flags %#x outside valid mask", attr, ext)
		}
		if ext&ExtendedNonDisplay != 0 {
			continue // non-display maps to color 0
		}
		fg := ColorForeground(c)
		bg := ColorBackground(c)
		if fg < 0 || fg > 0xF {
			t.Errorf("attr %d: foreground %d out of range", attr, fg)
		}
		if bg < 0 || bg > 7 {
			t.Errorf("attr %d: background %d out of range", attr, bg)
		}
	}
}

func TestDisperseAttributeTable(t *testing.T) {
	tests := []struct {
		attr byte
		fg   int
		bg   int
		ext  ExtendedFlags
	}{
		{32, ColorGreen, ColorBlack, 0},
		{33, ColorBlack, ColorGreen, 0},
		{34, ColorWhite, ColorBlack, 0},
		{36, ColorGreen, ColorBlack, ExtendedUnderline},
		{40, ColorRed, ColorBlack, 0},
		{42, ColorRed, ColorBlack, ExtendedBlink},
		{46, ColorRed, ColorBlack, ExtendedUnderline | ExtendedBlink},
		{48, ColorCyan, ColorBlack, ExtendedColSep},
		{51, ColorYellow, ColorBlack, ExtendedColSep},
		{54, ColorBlue, ColorBlack, ExtendedUnderline | ExtendedColSep},
		{56, ColorPink, ColorBlack, 0},
		{58, ColorMagenta, ColorBlack, 0},
		{59, ColorBlue, ColorBlack, 0},
		{62, ColorPink, ColorBlack, ExtendedUnderline},
	}

	for _, tt := range tests {
		c, ext := disperseAttribute(tt.attr)
		if ColorForeground(c) != tt.fg || ColorBackground(c) != tt.bg {
			t.Errorf("attr %d: expected fg=%d bg=%d, got fg=%d bg=%d",
				tt.attr, tt.fg, tt.bg, ColorForeground(c), ColorBackground(c))
		}
		if ext != tt.ext {
			t.Errorf("attr %d: expected extended %#x, got %#x", tt.attr, tt.ext, ext)
		}
	}
}

func TestDisperseAttributeNonDisplay(t *testing.T) {
	for _, attr := range []byte{39, 47, 55, 63} {
		_, ext := disperseAttribute(attr)
		if ext&ExtendedNonDisplay == 0 {
			t.Errorf("attr %d: expected non-display flag", attr)
		}
	}
}

func TestDisperseAttributeUnknownDefaults(t *testing.T) {
	c, ext := disperseAttribute(200)
	if ColorForeground(c) != ColorWhite || ColorBackground(c) != ColorBlack {
		t.Errorf("expected white on black default, got fg=%d bg=%d",
			ColorForeground(c), ColorBackground(c))
	}
	if ext != 0 {
		t.Errorf("expected no extended flags, got %#x", ext)
	}
}

func TestSetScreenAttrDisperses(t *testing.T) {
	p := NewScreenPlanes(24, 80)

	p.SetScreenAttr(100, 36, true)

	if p.CharAttr(100) != 36 {
		t.Errorf("expected raw attr 36, got %d", p.CharAttr(100))
	}
	if !p.IsAttributePlace(100) {
		t.Error("expected attribute place marker")
	}
	if ColorForeground(p.Color(100)) != ColorGreen {
		t.Errorf("expected green foreground, got %d", ColorForeground(p.Color(100)))
	}
	if p.Extended(100)&ExtendedUnderline == 0 {
		t.Error("expected underline flag")
	}
}

func TestSetScreenAttrZeroSentinel(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetScreenAttr(5, 36, true)

	// Attribute zero records the raw byte but leaves derived planes alone.
	p.SetScreenAttr(5, 0, false)

	if p.CharAttr(5) != 0 {
		t.Errorf("expected raw attr 0, got %d", p.CharAttr(5))
	}
	if ColorForeground(p.Color(5)) != ColorGreen {
		t.Error("expected derived color preserved for attr zero")
	}
}

func TestSetCharClearsAttributePlace(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetScreenAttr(7, 32, true)

	p.SetChar(7, 'A')

	if p.Char(7) != 'A' {
		t.Errorf("expected 'A', got %q", p.Char(7))
	}
	if p.IsAttributePlace(7) {
		t.Error("expected attribute place cleared after data write")
	}
}

func TestGUIPlaneIsolation(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetChar(50, 'X')

	p.SetGUIChar(50, '-')

	if p.Char(50) != 'X' {
		t.Error("GUI write must not alter the character plane")
	}
	if p.GUIChar(50) != '-' {
		t.Errorf("expected GUI '-', got %q", p.GUIChar(50))
	}

	p.SetChar(50, 'Y')
	if p.GUIChar(50) != '-' {
		t.Error("data write must not alter the GUI plane")
	}
}

func TestClearPreservesGUI(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetChar(10, 'A')
	p.SetScreenAttr(11, 32, true)
	p.SetGUIChar(12, ':')

	p.Clear()

	if p.Char(10) != ' ' {
		t.Error("expected character plane cleared")
	}
	if p.CharAttr(11) != 0 || p.IsAttributePlace(11) {
		t.Error("expected attribute planes cleared")
	}
	if p.GUIChar(12) != ':' {
		t.Error("expected GUI plane preserved by Clear")
	}

	p.ClearAll()
	if p.GUIChar(12) != 0 {
		t.Error("expected GUI plane cleared by ClearAll")
	}
}

func TestFillInclusive(t *testing.T) {
	p := NewScreenPlanes(24, 80)

	p.Fill(10, 12, '*')

	for pos := 10; pos <= 12; pos++ {
		if p.Char(pos) != '*' {
			t.Errorf("expected '*' at %d, got %q", pos, p.Char(pos))
		}
	}
	if p.Char(9) != ' ' || p.Char(13) != ' ' {
		t.Error("fill must not touch cells outside the inclusive range")
	}
}

func TestTextRowBlanksInvisibleCells(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetChar(0, 'A')
	p.SetScreenAttr(1, 32, true) // attribute cell
	p.SetChar(2, 'B')
	p.SetScreenAttr(3, 39, false) // non-display
	p.SetChar(3, 'S')

	row := p.TextRow(0)

	if row[0] != 'A' || row[2] != 'B' {
		t.Errorf("expected visible chars preserved, got %q", row[:4])
	}
	if row[1] != ' ' {
		t.Error("expected attribute cell rendered as space")
	}
	if row[3] != ' ' {
		t.Error("expected non-display cell rendered as space")
	}
}

func TestDirtyNotification(t *testing.T) {
	var marked []int
	d := dirtyFunc(func(pos int) { marked = append(marked, pos) })
	p := NewScreenPlanesWithDirty(2, 10, d)

	p.SetChar(3, 'A')
	p.SetScreenAttr(4, 32, true)

	if len(marked) < 2 || marked[0] != 3 || marked[1] != 4 {
		t.Errorf("expected dirty marks [3 4], got %v", marked)
	}
}

func TestSetCharWideClaimsSpacerCell(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetChar(10, '漢')
	p.SetChar(12, 'A')

	// The spacer half never appears in row text; the wide rune counts
	// as a single character followed directly by its neighbor.
	row := p.TextRow(0)
	runes := []rune(row)
	if len(runes) != 79 {
		t.Fatalf("expected 79 runes with one spacer skipped, got %d", len(runes))
	}
	if runes[10] != '漢' || runes[11] != 'A' {
		t.Errorf("unexpected row content %q", string(runes[10:12]))
	}
}

func TestSetCharWideAtRowEndHasNoSpacer(t *testing.T) {
	p := NewScreenPlanes(24, 80)
	p.SetChar(79, '漢') // last column, nothing to claim

	if p.Char(80) != ' ' {
		t.Errorf("expected next row untouched, got %q", p.Char(80))
	}
}

// dirtyFunc adapts a function to the DirtyProvider interface.
type dirtyFunc func(pos int)

func (f dirtyFunc) MarkDirty(pos int) { f(pos) }
