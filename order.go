package headless5250

import "fmt"

// 5250 display stream order codes.
const (
	OrderSOH  = 0x01 // Start of Header
	OrderRA   = 0x02 // Repeat to Address
	OrderEA   = 0x03 // Erase to Address
	OrderTD   = 0x10 // Transparent Data
	OrderSBA  = 0x11 // Set Buffer Address
	OrderIC   = 0x13 // Insert Cursor
	OrderMC   = 0x14 // Move Cursor
	OrderWDSF = 0x15 // Write to Display Structured Field
	OrderSF   = 0x1D // Start of Field
)

// SOHeader is the decoded Start of Header order. Fields are present
// incrementally by the declared length; absent fields are zero.
type SOHeader struct {
	Length   int
	Flag     byte
	Reserved byte
	ErrorRow int     // present when Length >= 4
	DataFlag [3]byte // data-included flag bytes, present at Length >= 5/6/7
}

// DataIncluded returns true if the header's data-included flag for the
// given 0-based index (0-23) is set. The 24 flags map across the three
// data-flag bytes, most significant bit first.
func (h *SOHeader) DataIncluded(n int) bool {
	if n < 0 || n >= 24 {
		return false
	}
	return h.DataFlag[n/8]&(0x80>>(n%8)) != 0
}

// WriteOrders decodes a raw 5250 order stream and applies it to the
// screen. Decoding stops at the first malformed order; each order
// validates before it mutates, so a surfaced error leaves the last-good
// screen image intact.
func (s *Screen) WriteOrders(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := newDataStream(data)
	for ds.hasNext() {
		b, err := ds.nextByte()
		if err != nil {
			return err
		}
		switch b {
		case OrderSOH:
			if err := s.decodeSOH(ds); err != nil {
				return err
			}
		case OrderSBA:
			if err := s.decodeSBA(ds); err != nil {
				return err
			}
		case OrderRA:
			if err := s.decodeRA(ds); err != nil {
				return err
			}
		case OrderEA:
			if err := s.decodeEA(ds); err != nil {
				return err
			}
		case OrderIC:
			if err := s.decodeIC(ds); err != nil {
				return err
			}
		case OrderMC:
			if err := s.decodeMC(ds); err != nil {
				return err
			}
		case OrderTD:
			if err := s.decodeTD(ds); err != nil {
				return err
			}
		case OrderSF:
			if err := s.decodeSF(ds); err != nil {
				return err
			}
		case OrderWDSF:
			if err := s.decodeWDSF(ds); err != nil {
				return err
			}
		default:
			s.writeDataByte(b)
		}
	}
	s.signal()
	return nil
}

// decodeSBA handles Set Buffer Address: two 1-based row/col bytes. Any
// address outside the screen rectangle is an error that leaves the current
// buffer address unmoved. A valid SBA fully replaces the prior address and
// does not affect current-field tracking.
func (s *Screen) decodeSBA(ds *dataStream) error {
	rowB, err := ds.nextByte()
	if err != nil {
		return err
	}
	colB, err := ds.nextByte()
	if err != nil {
		return err
	}
	row, col := int(rowB), int(colB)
	if row < 1 || col < 1 || row > s.rows || col > s.cols {
		return fmt.Errorf("%w: SBA row %d col %d", ErrInvalidAddress, row, col)
	}
	s.pos = s.linearPos(row, col)
	s.cursor.Row = row
	s.cursor.Col = col
	return nil
}

// decodeRA handles Repeat to Address: a 1-based target row/col and a fill
// byte. The fill runs inclusively from the current buffer address to the
// target. A target row before the current row is always an error, never a
// silent no-op; a target equal to the current address fills exactly one
// cell. Filling the whole screen is the same cell loop, so the documented
// full-screen-clear equivalence holds bit for bit.
func (s *Screen) decodeRA(ds *dataStream) error {
	rowB, err := ds.nextByte()
	if err != nil {
		return err
	}
	colB, err := ds.nextByte()
	if err != nil {
		return err
	}
	fill, err := ds.nextByte()
	if err != nil {
		return err
	}
	toRow, toCol := int(rowB), int(colB)
	curRow := s.pos/s.cols + 1
	if toRow < curRow {
		return fmt.Errorf("%w: RA target row %d before current row %d",
			ErrInvalidAddress, toRow, curRow)
	}
	end := s.linearPos(toRow, toCol)
	if end < 0 || end >= s.rows*s.cols {
		return fmt.Errorf("%w: RA target row %d col %d", ErrInvalidAddress, toRow, toCol)
	}
	r := s.codepage.Decode(fill)
	s.planes.Fill(s.pos, end, r)
	s.pos = end
	s.advancePos()
	return nil
}

// decodeEA handles Erase to Address: like RA but resets attributes and
// fills with blanks up to the target.
func (s *Screen) decodeEA(ds *dataStream) error {
	rowB, err := ds.nextByte()
	if err != nil {
		return err
	}
	colB, err := ds.nextByte()
	if err != nil {
		return err
	}
	toRow, toCol := int(rowB), int(colB)
	curRow := s.pos/s.cols + 1
	if toRow < curRow {
		return fmt.Errorf("%w: EA target row %d before current row %d",
			ErrInvalidAddress, toRow, curRow)
	}
	end := s.linearPos(toRow, toCol)
	if end < 0 || end >= s.rows*s.cols {
		return fmt.Errorf("%w: EA target row %d col %d", ErrInvalidAddress, toRow, toCol)
	}
	for pos := s.pos; pos <= end; pos++ {
		s.planes.SetChar(pos, ' ')
		s.planes.SetScreenAttr(pos, 0, false)
	}
	s.pos = end
	s.advancePos()
	return nil
}

// decodeSOH handles Start of Header. The declared length (1-7) counts the
// length byte itself plus the payload; trailing stream bytes beyond the
// declared length belong to the next order and are never inspected. A new
// header starts a new screen format, so the field table is rebuilt from
// the SF orders that follow.
func (s *Screen) decodeSOH(ds *dataStream) error {
	lengthB, err := ds.nextByte()
	if err != nil {
		return err
	}
	length := int(lengthB)
	if length < 1 || length > 7 {
		return fmt.Errorf("%w: %d", ErrInvalidSOH, length)
	}
	payload, err := ds.segment(length - 1)
	if err != nil {
		return fmt.Errorf("%w: SOH declared %d", ErrBufferExceeded, length)
	}

	h := SOHeader{Length: length}
	if length >= 2 {
		h.Flag = payload[0]
	}
	if length >= 3 {
		h.Reserved = payload[1]
	}
	if length >= 4 {
		h.ErrorRow = int(payload[2])
	}
	for i := 0; i < 3 && length >= 5+i; i++ {
		h.DataFlag[i] = payload[3+i]
	}

	s.errorRow = h.ErrorRow
	s.header = &h
	s.fields.Reset()
	s.oia.locked = true
	return nil
}

// LastHeader returns the most recently decoded Start of Header, or nil if
// none has been received.
func (s *Screen) LastHeader() *SOHeader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.header
}

// decodeIC handles Insert Cursor: a strict 1-based row/col that becomes
// the home position and the cursor location.
func (s *Screen) decodeIC(ds *dataStream) error {
	rowB, err := ds.nextByte()
	if err != nil {
		return err
	}
	colB, err := ds.nextByte()
	if err != nil {
		return err
	}
	row, col := int(rowB), int(colB)
	if row < 1 || col < 1 || row > s.rows || col > s.cols {
		return fmt.Errorf("%w: IC row %d col %d", ErrInvalidAddress, row, col)
	}
	s.homePos = s.linearPos(row, col)
	s.cursor.Row = row
	s.cursor.Col = col
	return nil
}

// decodeMC handles Move Cursor: a strict 1-based row/col that moves the
// cursor without changing the home position.
func (s *Screen) decodeMC(ds *dataStream) error {
	rowB, err := ds.nextByte()
	if err != nil {
		return err
	}
	colB, err := ds.nextByte()
	if err != nil {
		return err
	}
	row, col := int(rowB), int(colB)
	if row < 1 || col < 1 || row > s.rows || col > s.cols {
		return fmt.Errorf("%w: MC row %d col %d", ErrInvalidAddress, row, col)
	}
	s.cursor.Row = row
	s.cursor.Col = col
	return nil
}

// decodeTD handles Transparent Data: a u16 length that counts its own two
// bytes, then raw display bytes written without attribute interpretation.
func (s *Screen) decodeTD(ds *dataStream) error {
	length, err := ds.nextUint16()
	if err != nil {
		return err
	}
	if length < 2 {
		return fmt.Errorf("%w: TD declared %d", ErrBufferExceeded, length)
	}
	payload, err := ds.segment(int(length) - 2)
	if err != nil {
		return fmt.Errorf("%w: TD declared %d", ErrBufferExceeded, length)
	}
	for _, b := range payload {
		if s.pos < 0 || s.pos >= s.rows*s.cols {
			return nil
		}
		s.planes.SetChar(s.pos, s.codepage.Decode(b))
		s.advancePos()
	}
	return nil
}

// decodeSF handles Start of Field. An input field carries a two-byte field
// format word (first byte has 0x40 set) before the attribute; an output
// field carries the attribute alone. The attribute byte occupies the cell
// at the current address; the field data area follows it.
func (s *Screen) decodeSF(ds *dataStream) error {
	first, err := ds.peekByte()
	if err != nil {
		return err
	}

	var ffw1, ffw2 byte
	input := first&0x40 != 0
	if input {
		if ffw1, err = ds.nextByte(); err != nil {
			return err
		}
		if ffw2, err = ds.nextByte(); err != nil {
			return err
		}
	}
	attr, err := ds.nextByte()
	if err != nil {
		return err
	}
	length, err := ds.nextUint16()
	if err != nil {
		return err
	}
	if s.pos+int(length) >= s.rows*s.cols {
		return fmt.Errorf("%w: SF at %d length %d", ErrInvalidAddress, s.pos, length)
	}

	s.planes.SetScreenAttr(s.pos, attr, true)
	s.curAttr = attr
	start := s.pos + 1
	f := newScreenField(start, int(length), ffw1, ffw2, attr)
	if !input {
		f.Protected = true
		f.Bypass = true
	}
	s.fields.Add(f)
	s.pos = start
	return nil
}

// decodeWDSF hands a Write to Display Structured Field record off to the
// structured field parser and applies the result.
func (s *Screen) decodeWDSF(ds *dataStream) error {
	sf, err := parseStructuredField(ds)
	if err != nil {
		return err
	}
	return s.applyStructuredField(sf)
}

// writeDataByte writes one data byte at the current buffer address and
// advances it. Bytes in the attribute range (0x20-0x3F) occupy a cell as
// an attribute and become the governing attribute for the characters that
// follow; everything else is display data run through the code page and
// colored by the governing attribute.
func (s *Screen) writeDataByte(b byte) {
	if s.pos < 0 || s.pos >= s.rows*s.cols {
		return
	}
	if b >= 0x20 && b <= 0x3F {
		s.planes.SetScreenAttr(s.pos, b, true)
		s.curAttr = b
		s.advancePos()
		return
	}
	s.planes.SetChar(s.pos, s.codepage.Decode(b))
	if s.curAttr != 0 {
		s.planes.SetScreenAttr(s.pos, s.curAttr, false)
	}
	s.advancePos()
}

// advancePos moves the buffer address forward one cell, wrapping at the
// end of the screen.
func (s *Screen) advancePos() {
	s.pos++
	if s.pos >= s.rows*s.cols {
		s.pos = 0
	}
}
