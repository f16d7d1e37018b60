package headless5250

import (
	"strings"
	"sync"
)

const (
	// DEFAULT_ROWS is the default screen height (model 2 display).
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default screen width (model 2 display).
	DEFAULT_COLS = 80
)

// Screen is the live 5250 screen model: planes, field table, cursor and
// OIA behind one lock. The order decoder is the single writer; wait
// primitives, snapshots and automation queries are readers. All operations
// are thread-safe via internal locking, but the decoder itself must not be
// driven from two goroutines on the same Screen.
type Screen struct {
	mu sync.RWMutex

	rows int
	cols int

	planes *ScreenPlanes
	fields *FieldTable
	cursor *Cursor
	oia    *OIA

	// Decoder state
	pos      int       // current buffer address, set by SBA and data writes
	curAttr  byte      // governing attribute for data writes, 0 when none
	homePos  int       // insert cursor position, set by IC
	errorRow int       // from the last SOH header
	header   *SOHeader // last decoded SOH, nil before the first header

	windows []window

	codepage  CodePageProvider
	dirty     DirtyProvider
	transport TransportProvider

	// typeahead holds keystrokes submitted while the keyboard was locked,
	// in submission order.
	typeahead []keyToken

	// notify is closed and replaced on every mutation; wait primitives
	// select on it instead of polling.
	notify chan struct{}
}

// Option configures a Screen during construction.
type Option func(*Screen)

// WithSize sets the screen dimensions. Values <= 0 are replaced with the
// defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}
	return func(s *Screen) {
		s.rows = rows
		s.cols = cols
	}
}

// WithCodePage sets the EBCDIC translation used for inbound data bytes and
// outbound keys. Defaults to CCSID 37.
func WithCodePage(p CodePageProvider) Option {
	return func(s *Screen) {
		if p != nil {
			s.codepage = p
		}
	}
}

// WithDirty sets the change notification target for the rendering layer.
// Defaults to a no-op.
func WithDirty(d DirtyProvider) Option {
	return func(s *Screen) {
		if d != nil {
			s.dirty = d
		}
	}
}

// WithTransport sets the outbound transport for AID keys and connection
// actions. Defaults to a no-op.
func WithTransport(t TransportProvider) Option {
	return func(s *Screen) {
		if t != nil {
			s.transport = t
		}
	}
}

// New creates a screen with the given options. Defaults to 24x80, CCSID 37,
// no-op providers, keyboard unlocked, cursor active and shown at (1,1).
func New(opts ...Option) *Screen {
	s := &Screen{
		rows:      DEFAULT_ROWS,
		cols:      DEFAULT_COLS,
		codepage:  CodePage37,
		dirty:     NoopDirty{},
		transport: NoopTransport{},
		notify:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.planes = NewScreenPlanesWithDirty(s.rows, s.cols, s.dirty)
	s.fields = NewFieldTable()
	s.cursor = NewCursor()
	s.oia = NewOIA()
	return s
}

// Rows returns the screen height in character rows.
func (s *Screen) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Cols returns the screen width in character columns.
func (s *Screen) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cols
}

// Length returns the number of screen positions (rows * cols).
func (s *Screen) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows * s.cols
}

// Planes returns the underlying screen planes. The planes are shared,
// not a copy; callers must not mutate them outside the decoder path.
// Use Snapshot for a stable read-only capture.
func (s *Screen) Planes() *ScreenPlanes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planes
}

// Fields returns the current field table. Like Planes, this is shared
// state intended for read access.
func (s *Screen) Fields() *FieldTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fields
}

// OIA returns the operator information area.
func (s *Screen) OIA() *OIA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.oia
}

// ErrorRow returns the error message row from the last SOH header, or 0 if
// none has been received.
func (s *Screen) ErrorRow() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorRow
}

// linearPos converts a 1-based row/col pair to a linear position.
func (s *Screen) linearPos(row, col int) int {
	return (row-1)*s.cols + (col - 1)
}

// signal wakes every waiter. Must be called with the write lock held.
func (s *Screen) signal() {
	close(s.notify)
	s.notify = make(chan struct{})
}

// GetText returns the display text of length chars starting at the 1-based
// row/col. The result stops at the end of the row.
func (s *Screen) GetText(row, col, length int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 1 || row > s.rows || col < 1 || col > s.cols || length <= 0 {
		return ""
	}
	line := []rune(s.planes.TextRow(row - 1))
	start := col - 1
	end := start + length
	if end > len(line) {
		end = len(line)
	}
	if start >= len(line) {
		return ""
	}
	return string(line[start:end])
}

// RowText returns the full display text of the 1-based row.
func (s *Screen) RowText(row int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planes.TextRow(row - 1)
}

// String returns the visible screen content as a newline-separated string
// with trailing blank rows omitted. Implements fmt.Stringer.
func (s *Screen) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, s.rows)
	lastNonEmpty := -1
	for row := 0; row < s.rows; row++ {
		line := strings.TrimRight(s.planes.TextRow(row), " ")
		lines[row] = line
		if line != "" {
			lastNonEmpty = row
		}
	}
	if lastNonEmpty < 0 {
		return ""
	}
	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

// containsText reports whether the visible screen contains the text.
// Caller must hold at least the read lock.
func (s *Screen) containsText(text string) bool {
	for row := 0; row < s.rows; row++ {
		if strings.Contains(s.planes.TextRow(row), text) {
			return true
		}
	}
	return false
}

// ContainsText reports whether the visible screen contains the text.
func (s *Screen) ContainsText(text string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsText(text)
}

// Clear resets the character and attribute planes and discards the field
// table. Cursor show/active state survives, per screen rewrite semantics.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.signal()
}

func (s *Screen) clearLocked() {
	s.planes.Clear()
	s.fields.Reset()
	s.pos = 0
	s.curAttr = 0
	s.homePos = 0
}

// IsInField returns true if the 1-based row/col falls inside an
// unprotected input field.
func (s *Screen) IsInField(row, col int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 1 || row > s.rows || col < 1 || col > s.cols {
		return false
	}
	f := s.fields.FieldAt(s.linearPos(row, col))
	return f != nil && !f.Protected
}
