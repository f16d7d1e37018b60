package headless5250

import (
	"golang.org/x/text/encoding/charmap"
)

// CodePage translates between EBCDIC protocol bytes and display characters
// using a charmap table. It implements CodePageProvider.
type CodePage struct {
	name string
	cm   *charmap.Charmap
}

// Built-in EBCDIC code pages. CCSID 37 is the US/Canada default; 1047 is
// the Latin-1 open systems variant; 1140 is CCSID 37 with the euro sign.
var (
	CodePage37   = &CodePage{name: "37", cm: charmap.CodePage037}
	CodePage1047 = &CodePage{name: "1047", cm: charmap.CodePage1047}
	CodePage1140 = &CodePage{name: "1140", cm: charmap.CodePage1140}
)

// NewCodePage returns the named built-in code page, or nil if the name is
// unknown. Names match CCSID numbers ("37", "1047", "1140").
func NewCodePage(name string) *CodePage {
	switch name {
	case "37", "037":
		return CodePage37
	case "1047":
		return CodePage1047
	case "1140":
		return CodePage1140
	}
	return nil
}

// Name returns the CCSID name of the code page.
func (c *CodePage) Name() string { return c.name }

// Decode maps an EBCDIC byte to its display character.
func (c *CodePage) Decode(b byte) rune {
	return c.cm.DecodeByte(b)
}

// Encode maps a display character back to its EBCDIC byte. The second
// result is false if the character is not representable in this code page.
func (c *CodePage) Encode(r rune) (byte, bool) {
	return c.cm.EncodeRune(r)
}

var _ CodePageProvider = (*CodePage)(nil)
