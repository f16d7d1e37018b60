package headless5250

// ExtendedFlags is a bitmask of 5250 extended highlighting attributes.
type ExtendedFlags byte

const (
	// ExtendedNonDisplay suppresses rendering of the cell content.
	ExtendedNonDisplay ExtendedFlags = 0x01
	// ExtendedColSep draws column separator dots beside the cell.
	ExtendedColSep ExtendedFlags = 0x02
	// ExtendedBlink makes the cell content blink.
	ExtendedBlink ExtendedFlags = 0x04
	// ExtendedUnderline underlines the cell content.
	ExtendedUnderline ExtendedFlags = 0x08
	// ExtendedReverse swaps foreground and background.
	ExtendedReverse ExtendedFlags = 0x10
)

// ExtendedValidMask covers every extended flag the dispersal table can
// produce. Bits outside this mask never appear in the extended plane.
const ExtendedValidMask = ExtendedNonDisplay | ExtendedColSep | ExtendedBlink |
	ExtendedUnderline | ExtendedReverse

// Display color indices. Backgrounds use 0-7; foregrounds may additionally
// use the bright range up to 0xF.
const (
	ColorBlack   = 0x0
	ColorBlue    = 0x1
	ColorGreen   = 0x2
	ColorCyan    = 0x3
	ColorRed     = 0x4
	ColorMagenta = 0x5
	ColorYellow  = 0x6
	ColorWhite   = 0x7
	ColorPink    = 0xD // bright magenta
)

// packColor packs a background/foreground pair into the color plane format:
// high byte background, low byte foreground.
func packColor(bg, fg int) uint16 {
	return uint16(bg)<<8&0xff00 | uint16(fg)&0x00ff
}

// ColorBackground extracts the background index from a packed color value.
func ColorBackground(c uint16) int {
	return int(c >> 8)
}

// ColorForeground extracts the foreground index from a packed color value.
func ColorForeground(c uint16) int {
	return int(c & 0xff)
}

// defaultColor is the fallback mapping for attribute bytes absent from the
// table: white on black with no extended highlighting.
var defaultColor = packColor(ColorBlack, ColorWhite)

// disperseAttribute maps a raw 5250 attribute byte to its color plane and
// extended plane values. The mapping is total: bytes outside the known
// 32-63 range produce the default mapping rather than an error. Attribute
// zero is a sentinel handled by the caller (no visual change) and must not
// be passed here.
//
// Reverse video is encoded by swapping the packed colors, matching how the
// attribute table has always been rendered; the ExtendedReverse flag is
// reserved for structured-field driven highlighting.
func disperseAttribute(attr byte) (color uint16, extended ExtendedFlags) {
	switch attr {
	case 32: // green
		return packColor(ColorBlack, ColorGreen), 0
	case 33: // green/reverse
		return packColor(ColorGreen, ColorBlack), 0
	case 34: // white
		return packColor(ColorBlack, ColorWhite), 0
	case 35: // white/reverse
		return packColor(ColorWhite, ColorBlack), 0
	case 36: // green/underline
		return packColor(ColorBlack, ColorGreen), ExtendedUnderline
	case 37: // green/reverse/underline
		return packColor(ColorGreen, ColorBlack), ExtendedUnderline
	case 38: // white/underline
		return packColor(ColorBlack, ColorWhite), ExtendedUnderline
	case 39: // non-display
		return 0, ExtendedNonDisplay
	case 40: // red
		return packColor(ColorBlack, ColorRed), 0
	case 41: // red/reverse
		return packColor(ColorRed, ColorBlack), 0
	case 42: // red/blink
		return packColor(ColorBlack, ColorRed), ExtendedBlink
	case 43: // red/reverse/blink
		return packColor(ColorRed, ColorBlack), ExtendedBlink
	case 44: // red/underline
		return packColor(ColorBlack, ColorRed), ExtendedUnderline
	case 45: // red/reverse/underline
		return packColor(ColorRed, ColorBlack), ExtendedUnderline
	case 46: // red/underline/blink
		return packColor(ColorBlack, ColorRed), ExtendedUnderline | ExtendedBlink
	case 47: // non-display
		return 0, ExtendedNonDisplay
	case 48: // cyan/column separator
		return packColor(ColorBlack, ColorCyan), ExtendedColSep
	case 49: // cyan/reverse/column separator
		return packColor(ColorCyan, ColorBlack), ExtendedColSep
	case 50: // blue/column separator
		return packColor(ColorBlack, ColorBlue), ExtendedColSep
	case 51: // yellow/column separator
		return packColor(ColorBlack, ColorYellow), ExtendedColSep
	case 52: // cyan/underline/column separator
		return packColor(ColorBlack, ColorCyan), ExtendedUnderline | ExtendedColSep
	case 53: // cyan/reverse/underline/column separator
		return packColor(ColorCyan, ColorBlack), ExtendedUnderline | ExtendedColSep
	case 54: // blue/underline/column separator
		return packColor(ColorBlack, ColorBlue), ExtendedUnderline | ExtendedColSep
	case 55: // non-display/column separator
		return 0, ExtendedNonDisplay | ExtendedColSep
	case 56: // pink
		return packColor(ColorBlack, ColorPink), 0
	case 57: // pink/reverse
		return packColor(ColorMagenta, ColorBlack), 0
	case 58: // magenta
		return packColor(ColorBlack, ColorMagenta), 0
	case 59: // blue
		return packColor(ColorBlack, ColorBlue), 0
	case 60: // blue/reverse
		return packColor(ColorBlue, ColorBlack), 0
	case 61: // magenta/reverse
		return packColor(ColorMagenta, ColorBlack), 0
	case 62: // pink/underline
		return packColor(ColorBlack, ColorPink), ExtendedUnderline
	case 63: // non-display
		return 0, ExtendedNonDisplay
	default:
		return defaultColor, 0
	}
}
