package headless5250

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled adds per-cell colors and display flags.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull adds raw attribute bytes and the field table.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a read-only capture of the screen model, taken atomically
// under the shared lock. It is the supported way for tests and
// diagnostics to inspect plane state.
type Snapshot struct {
	Size   SnapshotSize    `json:"size"`
	Cursor SnapshotCursor  `json:"cursor"`
	OIA    SnapshotOIA     `json:"oia"`
	Lines  []SnapshotLine  `json:"lines"`
	Fields []SnapshotField `json:"fields,omitempty"`
}

// SnapshotSize holds screen dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state (1-based coordinates).
type SnapshotCursor struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Active bool `json:"active"`
	Shown  bool `json:"shown"`
}

// SnapshotOIA holds operator information area flags.
type SnapshotOIA struct {
	KeyboardLocked bool `json:"keyboard_locked"`
	InputInhibited int  `json:"input_inhibited"`
	MessageWait    bool `json:"message_wait,omitempty"`
	KeysBuffered   bool `json:"keys_buffered,omitempty"`
}

// SnapshotLine is one screen row.
type SnapshotLine struct {
	Text  string         `json:"text"`
	Cells []SnapshotCell `json:"cells,omitempty"`
}

// SnapshotCell is one screen position with full plane data.
type SnapshotCell struct {
	Char        string `json:"char"`
	Attr        byte   `json:"attr,omitempty"`
	Fg          int    `json:"fg"`
	Bg          int    `json:"bg"`
	Underline   bool   `json:"underline,omitempty"`
	Blink       bool   `json:"blink,omitempty"`
	Reverse     bool   `json:"reverse,omitempty"`
	ColSep      bool   `json:"col_sep,omitempty"`
	NonDisplay  bool   `json:"non_display,omitempty"`
	IsAttribute bool   `json:"is_attribute,omitempty"`
	GUI         string `json:"gui,omitempty"`
}

// SnapshotField is one field table entry (linear inclusive positions).
type SnapshotField struct {
	Start       int  `json:"start"`
	End         int  `json:"end"`
	Protected   bool `json:"protected,omitempty"`
	NumericOnly bool `json:"numeric_only,omitempty"`
	Bypass      bool `json:"bypass,omitempty"`
}

// Snapshot creates a snapshot of the current screen state. The detail
// parameter controls how much information is included.
func (s *Screen) Snapshot(detail SnapshotDetail) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Size: SnapshotSize{Rows: s.rows, Cols: s.cols},
		Cursor: SnapshotCursor{
			Row:    s.cursor.Row,
			Col:    s.cursor.Col,
			Active: s.cursor.Active,
			Shown:  s.cursor.Shown,
		},
		OIA: SnapshotOIA{
			KeyboardLocked: s.oia.locked,
			InputInhibited: s.oia.inputInhibited,
			MessageWait:    s.oia.messageLight,
			KeysBuffered:   s.oia.keysBuffered,
		},
	}

	for row := 0; row < s.rows; row++ {
		line := SnapshotLine{Text: s.planes.TextRow(row)}
		if detail == SnapshotDetailStyled || detail == SnapshotDetailFull {
			line.Cells = make([]SnapshotCell, s.cols)
			for col := 0; col < s.cols; col++ {
				pos := row*s.cols + col
				ext := s.planes.Extended(pos)
				cell := SnapshotCell{
					Char:       string(s.planes.Char(pos)),
					Fg:         ColorForeground(s.planes.Color(pos)),
					Bg:         ColorBackground(s.planes.Color(pos)),
					Underline:  ext&ExtendedUnderline != 0,
					Blink:      ext&ExtendedBlink != 0,
					Reverse:    ext&ExtendedReverse != 0,
					ColSep:     ext&ExtendedColSep != 0,
					NonDisplay: ext&ExtendedNonDisplay != 0,
				}
				if detail == SnapshotDetailFull {
					cell.Attr = s.planes.CharAttr(pos)
					cell.IsAttribute = s.planes.IsAttributePlace(pos)
				}
				if g := s.planes.GUIChar(pos); g != 0 {
					cell.GUI = string(g)
				}
				line.Cells[col] = cell
			}
		}
		snap.Lines = append(snap.Lines, line)
	}

	if detail == SnapshotDetailFull {
		for n := 1; n <= s.fields.Count(); n++ {
			f := s.fields.Field(n)
			snap.Fields = append(snap.Fields, SnapshotField{
				Start:       f.StartPos,
				End:         f.EndPos,
				Protected:   f.Protected,
				NumericOnly: f.NumericOnly,
				Bypass:      f.Bypass,
			})
		}
	}

	return snap
}
