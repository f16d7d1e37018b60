package headless5250

import "image/color"

// DefaultPalette maps the 16 display color indices to RGBA values. Indices
// 0-7 are the base 5250 colors; 8-15 are their bright variants, of which
// the data stream only uses pink (0xD).
var DefaultPalette = [16]color.RGBA{
	{0, 0, 0, 255},       // Black
	{36, 114, 200, 255},  // Blue
	{13, 188, 121, 255},  // Green
	{17, 168, 205, 255},  // Cyan
	{205, 49, 49, 255},   // Red
	{188, 63, 188, 255},  // Magenta
	{229, 229, 16, 255},  // Yellow
	{229, 229, 229, 255}, // White

	{102, 102, 102, 255}, // Bright Black
	{59, 142, 234, 255},  // Bright Blue
	{35, 209, 139, 255},  // Bright Green
	{41, 184, 219, 255},  // Bright Cyan
	{241, 76, 76, 255},   // Bright Red
	{214, 112, 214, 255}, // Pink
	{245, 245, 67, 255},  // Bright Yellow
	{255, 255, 255, 255}, // Bright White
}

// DefaultForeground is the default text color (white).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultCursorColor is the default cursor rendering color.
var DefaultCursorColor = color.RGBA{229, 229, 229, 255}

// paletteColor resolves a color index against a palette, falling back to
// the given default for out-of-range indices.
func paletteColor(idx int, palette *[16]color.RGBA, fallback color.RGBA) color.RGBA {
	if idx >= 0 && idx < len(palette) {
		return palette[idx]
	}
	return fallback
}
