package headless5250

import "fmt"

// Structured field class and type codes for the GUI extension records
// carried by WDSF orders.
const (
	SFClassGUI = 0xD9

	SFTypeDefineSelection = 0x50
	SFTypeCreateWindow    = 0x51
	SFTypeUnrestrictWin   = 0x52
	SFTypeDefineScrollBar = 0x53
	SFTypeWriteData       = 0x54
	SFTypeRemoveSelection = 0x58
	SFTypeRemoveWindow    = 0x59
	SFTypeRemoveAllGUI    = 0x5F
)

// Minor structure types inside Create Window and Define Selection Field.
const (
	MinorTypeBorder = 0x01
	MinorTypeTitle  = 0x10
	MinorTypeChoice = 0x11
)

// StructuredField is one decoded length-prefixed record from the data
// stream: {u16 total length}{class}{type}{payload}. The declared length
// counts every byte of the record including the two length bytes.
type StructuredField struct {
	Length  uint16
	Class   byte
	Type    byte
	Payload []byte
}

// MinorStructure is a nested {u8 length}{type}{payload} structure inside a
// structured field payload. The declared length counts the length byte.
type MinorStructure struct {
	Length  byte
	Type    byte
	Payload []byte
}

// WindowDef is the decoded payload of a Create Window structured field.
// Rows and Cols are the usable area inside the border; they round-trip as
// unsigned bytes and are not validated against the physical screen here.
type WindowDef struct {
	CursorRestricted bool
	Rows             int
	Cols             int
	Border           *BorderDef
	Title            string
}

// BorderDef is the decoded Border minor structure: presentation attribute
// bytes plus exactly 8 border glyphs in protocol encoding (top-left, top,
// top-right, left, right, bottom-left, bottom, bottom-right).
type BorderDef struct {
	GUIAttr   byte
	MonoAttr  byte
	ColorAttr byte
	Glyphs    [8]byte
}

// SelectionDef is the decoded payload of a Define Selection Field record.
type SelectionDef struct {
	Flag    byte
	Rows    int
	Cols    int
	Choices []string
}

// parseStructuredField reads one structured field record from the stream.
// The declared total length is authoritative: a stream shorter than the
// declaration is a truncation error, never a recoverable condition.
func parseStructuredField(ds *dataStream) (*StructuredField, error) {
	length, err := ds.nextUint16()
	if err != nil {
		return nil, err
	}
	if length < 4 {
		return nil, fmt.Errorf("%w: declared %d", ErrTruncatedRecord, length)
	}
	body, err := ds.segment(int(length) - 2)
	if err != nil {
		return nil, fmt.Errorf("%w: declared %d, available %d",
			ErrTruncatedRecord, length, ds.remaining()+2)
	}
	return &StructuredField{
		Length:  length,
		Class:   body[0],
		Type:    body[1],
		Payload: body[2:],
	}, nil
}

// ParseStructuredFields decodes a stream of structured field records.
// Unknown class or type codes are not fatal: the record is skipped using
// its declared length and decoding continues with the next record.
func ParseStructuredFields(data []byte) ([]*StructuredField, error) {
	ds := newDataStream(data)
	var records []*StructuredField
	for ds.hasNext() {
		sf, err := parseStructuredField(ds)
		if err != nil {
			return records, err
		}
		records = append(records, sf)
	}
	return records, nil
}

// parseMinors walks the minor structures inside a payload. A declared
// minor length below 2 cannot make progress and a length past the parent
// remainder overruns it; both are errors. The loop is bounded by the
// parent length, so hostile length values cannot recurse or spin.
func parseMinors(payload []byte) ([]MinorStructure, error) {
	var minors []MinorStructure
	for off := 0; off < len(payload); {
		length := int(payload[off])
		if length < 2 {
			return nil, fmt.Errorf("%w: declared %d", ErrInvalidMinor, length)
		}
		if off+length > len(payload) {
			return nil, fmt.Errorf("%w: declared %d, %d remaining in parent",
				ErrInvalidMinor, length, len(payload)-off)
		}
		minors = append(minors, MinorStructure{
			Length:  payload[off],
			Type:    payload[off+1],
			Payload: payload[off+2 : off+length],
		})
		off += length
	}
	return minors, nil
}

// ParseWindow decodes a Create Window payload:
// {cursor restrict flag}{reserved}{reserved}{rows}{cols} followed by zero
// or more minor structures. Unknown minor types are skipped by length.
func ParseWindow(sf *StructuredField, cp CodePageProvider) (*WindowDef, error) {
	if len(sf.Payload) < 5 {
		return nil, fmt.Errorf("%w: window payload %d bytes", ErrTruncatedRecord, len(sf.Payload))
	}
	w := &WindowDef{
		CursorRestricted: sf.Payload[0]&0x80 != 0,
		Rows:             int(sf.Payload[3]),
		Cols:             int(sf.Payload[4]),
	}
	minors, err := parseMinors(sf.Payload[5:])
	if err != nil {
		return nil, err
	}
	for _, m := range minors {
		switch m.Type {
		case MinorTypeBorder:
			if len(m.Payload) < 11 {
				return nil, fmt.Errorf("%w: border minor %d bytes", ErrInvalidMinor, len(m.Payload))
			}
			b := &BorderDef{
				GUIAttr:   m.Payload[0],
				MonoAttr:  m.Payload[1],
				ColorAttr: m.Payload[2],
			}
			copy(b.Glyphs[:], m.Payload[3:11])
			w.Border = b
		case MinorTypeTitle:
			w.Title = decodeBytes(m.Payload, cp)
		}
	}
	return w, nil
}

// ParseSelection decodes a Define Selection Field payload:
// {flag}{reserved}{rows}{cols} followed by choice minor structures.
func ParseSelection(sf *StructuredField, cp CodePageProvider) (*SelectionDef, error) {
	if len(sf.Payload) < 4 {
		return nil, fmt.Errorf("%w: selection payload %d bytes", ErrTruncatedRecord, len(sf.Payload))
	}
	sel := &SelectionDef{
		Flag: sf.Payload[0],
		Rows: int(sf.Payload[2]),
		Cols: int(sf.Payload[3]),
	}
	minors, err := parseMinors(sf.Payload[4:])
	if err != nil {
		return nil, err
	}
	for _, m := range minors {
		if m.Type == MinorTypeChoice {
			sel.Choices = append(sel.Choices, decodeBytes(m.Payload, cp))
		}
	}
	return sel, nil
}

func decodeBytes(b []byte, cp CodePageProvider) string {
	runes := make([]rune, len(b))
	for i, v := range b {
		runes[i] = cp.Decode(v)
	}
	return string(runes)
}

// window is an applied Create Window tracked for removal.
type window struct {
	pos  int // top-left linear position of the border
	rows int // usable rows inside the border
	cols int // usable cols inside the border
}

// applyStructuredField routes a decoded record to its handler. Unknown
// class or type codes are skipped; the record's declared length already
// consumed its bytes, so the stream stays aligned.
func (s *Screen) applyStructuredField(sf *StructuredField) error {
	if sf.Class != SFClassGUI {
		return nil
	}
	switch sf.Type {
	case SFTypeCreateWindow:
		w, err := ParseWindow(sf, s.codepage)
		if err != nil {
			return err
		}
		s.applyWindow(w)
	case SFTypeDefineSelection:
		if _, err := ParseSelection(sf, s.codepage); err != nil {
			return err
		}
	case SFTypeRemoveWindow:
		s.removeLastWindow()
	case SFTypeRemoveAllGUI:
		s.windows = s.windows[:0]
		s.planes.ClearGUI()
	}
	return nil
}

// applyWindow paints the window border into the GUI overlay plane,
// anchored at the current buffer address. Only the overlay is touched:
// window decoration never corrupts screen data. Windows larger than the
// remaining screen are painted clipped; the parsed dimensions are kept
// as-is for the caller to inspect.
func (s *Screen) applyWindow(w *WindowDef) {
	glyphs := defaultBorderGlyphs
	if w.Border != nil {
		for i, b := range w.Border.Glyphs {
			if b != 0 {
				glyphs[i] = s.codepage.Decode(b)
			}
		}
	}

	startRow := s.pos / s.cols
	startCol := s.pos % s.cols
	endRow := startRow + w.Rows + 1
	endCol := startCol + w.Cols + 1

	set := func(row, col int, r rune) {
		if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
			return
		}
		s.planes.SetGUIChar(row*s.cols+col, r)
	}

	set(startRow, startCol, glyphs[0])
	set(startRow, endCol, glyphs[2])
	set(endRow, startCol, glyphs[5])
	set(endRow, endCol, glyphs[7])
	for col := startCol + 1; col < endCol; col++ {
		set(startRow, col, glyphs[1])
		set(endRow, col, glyphs[6])
	}
	for row := startRow + 1; row < endRow; row++ {
		set(row, startCol, glyphs[3])
		set(row, endCol, glyphs[4])
	}

	s.windows = append(s.windows, window{pos: s.pos, rows: w.Rows, cols: w.Cols})
}

// removeLastWindow clears the most recent window's border decoration.
func (s *Screen) removeLastWindow() {
	if len(s.windows) == 0 {
		return
	}
	w := s.windows[len(s.windows)-1]
	s.windows = s.windows[:len(s.windows)-1]

	startRow := w.pos / s.cols
	startCol := w.pos % s.cols
	for row := startRow; row <= startRow+w.rows+1 && row < s.rows; row++ {
		for col := startCol; col <= startCol+w.cols+1 && col < s.cols; col++ {
			if row == startRow || row == startRow+w.rows+1 ||
				col == startCol || col == startCol+w.cols+1 {
				s.planes.SetGUIChar(row*s.cols+col, 0)
			}
		}
	}
}

// WindowCount returns the number of applied windows.
func (s *Screen) WindowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}

// defaultBorderGlyphs is the fallback border when a Create Window carries
// no Border minor: corners, horizontal and vertical line drawing.
var defaultBorderGlyphs = [8]rune{'.', '-', '.', ':', ':', ':', '-', ':'}
