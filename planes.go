package headless5250

// ScreenPlanes stores the parallel per-position planes that make up a 5250
// screen image. All planes are indexed by linear position row*cols+col and
// are always allocated together with the same length.
//
// ScreenPlanes performs no bounds checking: the order decoder validates
// addresses before writing. The GUI overlay plane is isolated from the
// character and attribute planes; window decoration never leaks into screen
// data and vice versa.
type ScreenPlanes struct {
	rows int
	cols int

	chars    []rune          // displayed glyphs
	attr     []byte          // raw 5250 attribute bytes
	color    []uint16        // packed bg<<8|fg, derived by dispersal
	extended []ExtendedFlags // derived by dispersal
	isAttr   []bool          // true where the cell carries an attribute byte
	gui      []rune          // window/border decoration overlay

	dirty DirtyProvider
}

// NewScreenPlanes allocates planes for a rows x cols screen with no dirty
// notification.
func NewScreenPlanes(rows, cols int) *ScreenPlanes {
	return NewScreenPlanesWithDirty(rows, cols, NoopDirty{})
}

// NewScreenPlanesWithDirty allocates planes for a rows x cols screen. Every
// plane mutation is reported to the given DirtyProvider.
func NewScreenPlanesWithDirty(rows, cols int, dirty DirtyProvider) *ScreenPlanes {
	size := rows * cols
	p := &ScreenPlanes{
		rows:     rows,
		cols:     cols,
		chars:    make([]rune, size),
		attr:     make([]byte, size),
		color:    make([]uint16, size),
		extended: make([]ExtendedFlags, size),
		isAttr:   make([]bool, size),
		gui:      make([]rune, size),
		dirty:    dirty,
	}
	for i := range p.chars {
		p.chars[i] = ' '
	}
	return p
}

// Rows returns the screen height in character rows.
func (p *ScreenPlanes) Rows() int { return p.rows }

// Cols returns the screen width in character columns.
func (p *ScreenPlanes) Cols() int { return p.cols }

// Len returns the number of screen positions (rows * cols).
func (p *ScreenPlanes) Len() int { return len(p.chars) }

// SetChar writes a display character at pos. The raw attribute, color and
// GUI planes are untouched; the is-attribute marker is cleared because the
// cell now carries data.
func (p *ScreenPlanes) SetChar(pos int, r rune) {
	p.chars[pos] = r
	p.isAttr[pos] = false
	p.dirty.MarkDirty(pos)
	// A double-width character claims the next cell on the row as its
	// spacer half.
	if isWideRune(r) && (pos+1)%p.cols != 0 {
		p.chars[pos+1] = wideSpacer
		p.isAttr[pos+1] = false
		p.dirty.MarkDirty(pos + 1)
	}
}

// Char returns the display character at pos.
func (p *ScreenPlanes) Char(pos int) rune { return p.chars[pos] }

// SetScreenAttr writes a raw attribute byte at pos and disperses it into
// the color and extended planes. The raw plane is written unconditionally;
// attribute zero is a no-visual-change sentinel that leaves the color and
// extended planes alone. The is-attribute marker is set or cleared per
// isAttrCell.
func (p *ScreenPlanes) SetScreenAttr(pos int, attr byte, isAttrCell bool) {
	p.attr[pos] = attr
	p.isAttr[pos] = isAttrCell
	if attr != 0 {
		color, extended := disperseAttribute(attr)
		p.color[pos] = color
		p.extended[pos] = extended & ExtendedValidMask
	}
	p.dirty.MarkDirty(pos)
}

// CharAttr returns the raw attribute byte at pos.
func (p *ScreenPlanes) CharAttr(pos int) byte { return p.attr[pos] }

// Color returns the packed color value at pos (background<<8|foreground).
func (p *ScreenPlanes) Color(pos int) uint16 { return p.color[pos] }

// Extended returns the extended highlighting flags at pos.
func (p *ScreenPlanes) Extended(pos int) ExtendedFlags { return p.extended[pos] }

// IsAttributePlace returns true if the cell at pos carries an attribute
// byte governing the field that follows it.
func (p *ScreenPlanes) IsAttributePlace(pos int) bool { return p.isAttr[pos] }

// SetGUIChar writes a decoration codepoint into the GUI overlay plane.
// No other plane is touched.
func (p *ScreenPlanes) SetGUIChar(pos int, r rune) {
	p.gui[pos] = r
	p.dirty.MarkDirty(pos)
}

// GUIChar returns the GUI overlay codepoint at pos, or 0 if the cell has
// no decoration.
func (p *ScreenPlanes) GUIChar(pos int) rune { return p.gui[pos] }

// ClearGUI removes all GUI overlay decoration.
func (p *ScreenPlanes) ClearGUI() {
	for i := range p.gui {
		if p.gui[i] != 0 {
			p.gui[i] = 0
			p.dirty.MarkDirty(i)
		}
	}
}

// Fill writes the same character to every position in [start, end]
// inclusive. Attribute planes are untouched.
func (p *ScreenPlanes) Fill(start, end int, r rune) {
	for pos := start; pos <= end; pos++ {
		p.chars[pos] = r
		p.isAttr[pos] = false
		p.dirty.MarkDirty(pos)
	}
}

// Clear resets the character, attribute, color, extended and marker planes
// to their initial state. The GUI overlay survives; RemoveGUI structured
// fields control its lifetime.
func (p *ScreenPlanes) Clear() {
	for i := range p.chars {
		p.chars[i] = ' '
		p.attr[i] = 0
		p.color[i] = 0
		p.extended[i] = 0
		p.isAttr[i] = false
		p.dirty.MarkDirty(i)
	}
}

// ClearAll resets every plane including the GUI overlay.
func (p *ScreenPlanes) ClearAll() {
	p.Clear()
	p.ClearGUI()
}

// TextRow returns the display characters of a row as a string. Non-display
// cells render as spaces; attribute cells render as spaces since they
// occupy a cell but carry no data.
func (p *ScreenPlanes) TextRow(row int) string {
	if row < 0 || row >= p.rows {
		return ""
	}
	runes := make([]rune, 0, p.cols)
	start := row * p.cols
	for col := 0; col < p.cols; col++ {
		pos := start + col
		switch {
		case p.chars[pos] == wideSpacer:
			// second half of a double-width character
		case p.isAttr[pos] || p.chars[pos] == 0:
			runes = append(runes, ' ')
		case p.extended[pos]&ExtendedNonDisplay != 0:
			runes = append(runes, ' ')
		default:
			runes = append(runes, p.chars[pos])
		}
	}
	return string(runes)
}

// SetDirtyProvider replaces the dirty notification target.
func (p *ScreenPlanes) SetDirtyProvider(d DirtyProvider) {
	if d == nil {
		d = NoopDirty{}
	}
	p.dirty = d
}
