package headless5250

import "github.com/unilibs/uniwidth"

// wideSpacer marks the second cell claimed by a double-width character.
// It never appears in query output.
const wideSpacer rune = '\uffff'

// runeWidth returns the display width: 2 for wide characters (DBCS code
// pages produce CJK ideographs and fullwidth forms), 1 for normal, 0 for
// zero-width characters.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns on the display.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
