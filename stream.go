package headless5250

import (
	"errors"
	"fmt"
)

// Decode errors surfaced by the order decoder and structured field parser.
var (
	// ErrBufferExceeded reports a read past the end of the order stream.
	ErrBufferExceeded = errors.New("headless5250: buffer length exceeded")
	// ErrInvalidAddress reports an SBA or RA address outside the screen.
	ErrInvalidAddress = errors.New("headless5250: invalid buffer address")
	// ErrInvalidSOH reports a Start of Header with a bad length.
	ErrInvalidSOH = errors.New("headless5250: invalid SOH length")
	// ErrTruncatedRecord reports a structured field whose declared length
	// exceeds the available bytes.
	ErrTruncatedRecord = errors.New("headless5250: truncated structured field")
	// ErrInvalidMinor reports a minor structure whose declared length does
	// not fit inside its parent record.
	ErrInvalidMinor = errors.New("headless5250: invalid minor structure length")
	// ErrKeyboardLocked reports an operation rejected while the keyboard is
	// locked.
	ErrKeyboardLocked = errors.New("headless5250: keyboard locked")
	// ErrCursorRange reports a cursor move to a position outside the screen.
	ErrCursorRange = errors.New("headless5250: cursor position out of range")
	// ErrNoField reports a field number with no matching field.
	ErrNoField = errors.New("headless5250: no such field")
)

// dataStream is a bounds-checked reader over a raw order byte stream.
// Every read reports ErrBufferExceeded instead of panicking on underrun.
type dataStream struct {
	buf []byte
	pos int
}

func newDataStream(buf []byte) *dataStream {
	return &dataStream{buf: buf}
}

// remaining returns the number of unread bytes.
func (s *dataStream) remaining() int {
	return len(s.buf) - s.pos
}

// hasNext returns true if at least one byte is unread.
func (s *dataStream) hasNext() bool {
	return s.pos < len(s.buf)
}

// nextByte consumes and returns one byte.
func (s *dataStream) nextByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, fmt.Errorf("%w: pos %d", ErrBufferExceeded, s.pos)
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// nextUint16 consumes and returns a big-endian 16-bit value.
func (s *dataStream) nextUint16() (uint16, error) {
	hi, err := s.nextByte()
	if err != nil {
		return 0, err
	}
	lo, err := s.nextByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// peekByte returns the byte at the current position without consuming it.
func (s *dataStream) peekByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, fmt.Errorf("%w: pos %d", ErrBufferExceeded, s.pos)
	}
	return s.buf[s.pos], nil
}

// segment consumes and returns the next n bytes as a subslice.
func (s *dataStream) segment(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, fmt.Errorf("%w: pos %d length %d", ErrBufferExceeded, s.pos, n)
	}
	seg := s.buf[s.pos : s.pos+n]
	s.pos += n
	return seg, nil
}

// skip advances past n bytes.
func (s *dataStream) skip(n int) error {
	if n < 0 || s.pos+n > len(s.buf) {
		return fmt.Errorf("%w: pos %d skip %d", ErrBufferExceeded, s.pos, n)
	}
	s.pos += n
	return nil
}
