package headless5250

// Field format word bits (first FFW byte) as decoded from the SF order.
const (
	ffwBypass      = 0x20 // bit 13: protected from input, skipped by tab
	ffwDupEnable   = 0x10
	ffwModified    = 0x08
	ffwShiftMask   = 0x07
	ffwShiftNum    = 0x03 // numeric shift
	ffwShiftSigned = 0x07 // signed numeric
)

// ScreenField describes one input or output field decoded from a Start of
// Field order. Positions are linear and inclusive on both ends.
type ScreenField struct {
	StartPos    int
	EndPos      int
	Protected   bool
	NumericOnly bool
	Bypass      bool

	ffw1 byte
	ffw2 byte
	attr byte
}

// Length returns the field length in cells.
func (f *ScreenField) Length() int {
	return f.EndPos - f.StartPos + 1
}

// Contains returns true if pos falls inside the field.
func (f *ScreenField) Contains(pos int) bool {
	return pos >= f.StartPos && pos <= f.EndPos
}

// newScreenField decodes the field format word into the field flags.
// Protected fields are bypass fields: the cursor tabs over them.
func newScreenField(startPos, length int, ffw1, ffw2, attr byte) ScreenField {
	shift := ffw1 & ffwShiftMask
	protected := ffw1&ffwBypass != 0
	return ScreenField{
		StartPos:    startPos,
		EndPos:      startPos + length - 1,
		Protected:   protected,
		NumericOnly: shift == ffwShiftNum || shift == ffwShiftSigned,
		Bypass:      protected,
		ffw1:        ffw1,
		ffw2:        ffw2,
		attr:        attr,
	}
}

// FieldTable holds the ordered set of fields for the current screen image.
// The table is rebuilt wholesale whenever a new format is written; it is
// never patched incrementally.
type FieldTable struct {
	fields  []ScreenField
	current int // index into fields, -1 when none
}

// NewFieldTable creates an empty field table.
func NewFieldTable() *FieldTable {
	return &FieldTable{current: -1}
}

// Reset discards all fields, beginning a new screen format.
func (t *FieldTable) Reset() {
	t.fields = t.fields[:0]
	t.current = -1
}

// Add appends a field in screen order.
func (t *FieldTable) Add(f ScreenField) {
	t.fields = append(t.fields, f)
	if t.current < 0 {
		t.current = 0
	}
}

// Count returns the number of fields in the table.
func (t *FieldTable) Count() int { return len(t.fields) }

// Field returns the nth field, 1-based. Returns nil if n is out of range.
func (t *FieldTable) Field(n int) *ScreenField {
	if n <= 0 || n > len(t.fields) {
		return nil
	}
	return &t.fields[n-1]
}

// Current returns the field under current-field tracking, or nil.
func (t *FieldTable) Current() *ScreenField {
	if t.current < 0 || t.current >= len(t.fields) {
		return nil
	}
	return &t.fields[t.current]
}

// SetCurrent updates current-field tracking to the nth field, 1-based.
// Out-of-range values are ignored.
func (t *FieldTable) SetCurrent(n int) {
	if n >= 1 && n <= len(t.fields) {
		t.current = n - 1
	}
}

// FieldAt returns the field containing pos, or nil if pos falls outside
// every field.
func (t *FieldTable) FieldAt(pos int) *ScreenField {
	for i := range t.fields {
		if t.fields[i].Contains(pos) {
			return &t.fields[i]
		}
	}
	return nil
}

// NextUnprotected returns the 1-based number of the first non-bypass field
// after the field containing pos, wrapping around the table. Returns 0 if
// the table has no unprotected fields.
func (t *FieldTable) NextUnprotected(pos int) int {
	n := len(t.fields)
	if n == 0 {
		return 0
	}
	start := 0
	for i := range t.fields {
		if t.fields[i].StartPos > pos {
			start = i
			break
		}
		start = (i + 1) % n
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if !t.fields[idx].Bypass {
			return idx + 1
		}
	}
	return 0
}

// PrevUnprotected returns the 1-based number of the last non-bypass field
// before the field containing pos, wrapping around the table. Returns 0 if
// the table has no unprotected fields.
func (t *FieldTable) PrevUnprotected(pos int) int {
	n := len(t.fields)
	if n == 0 {
		return 0
	}
	start := n - 1
	for i := n - 1; i >= 0; i-- {
		if t.fields[i].EndPos < pos {
			start = i
			break
		}
		start = (i - 1 + n) % n
	}
	for i := 0; i < n; i++ {
		idx := (start - i + n) % n
		if !t.fields[idx].Bypass {
			return idx + 1
		}
	}
	return 0
}
