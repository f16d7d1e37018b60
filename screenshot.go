package headless5250

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFinder locates font files by name (useful for avoiding font library dependencies).
type FontFinder interface {
	// Find returns the filesystem path to a font file matching the given name.
	Find(name string) (string, error)
}

// ScreenshotConfig controls how the screen is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil and FontName is empty, uses basicfont.Face7x13.
	Font font.Face

	// FontFinder is used to find fonts by name. Optional.
	FontFinder FontFinder

	// FontName is the font name to find using FontFinder.
	FontName string

	// FontSize is the font size when using FontFinder. Default 14.
	FontSize float64

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette is the 16-color display palette. If nil, uses DefaultPalette.
	Palette *[16]color.RGBA

	// DefaultFG is the default foreground color. If nil, uses DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the default background color. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA

	// CursorColor is the cursor color. If nil, uses inverted colors.
	CursorColor *color.RGBA

	// ShowCursor controls whether to render the cursor. Default true.
	ShowCursor *bool

	// ShowGUI controls whether the GUI plane (window borders) is drawn on
	// top of the character plane. Default true.
	ShowGUI *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}

// Screenshot renders the screen to an RGBA image using default settings (basicfont, default palette).
func (s *Screen) Screenshot() *image.RGBA {
	return s.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the screen to an RGBA image with custom font, colors, and cursor settings.
func (s *Screen) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	face := cfg.Font
	if face == nil && cfg.FontFinder != nil && cfg.FontName != "" {
		// Use FontFinder to load font by name
		size := cfg.FontSize
		if size == 0 {
			size = 14
		}
		if path, err := cfg.FontFinder.Find(cfg.FontName); err == nil {
			if loadedFace, err := LoadFont(path, size); err == nil {
				face = loadedFace
			}
		}
	}
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 || cellHeight == 0 {
		metrics := face.Metrics()
		if cellWidth == 0 {
			// Measure a character to get width
			adv, _ := face.GlyphAdvance('M')
			cellWidth = adv.Ceil()
			if cellWidth == 0 {
				cellWidth = 7 // fallback for basicfont
			}
		}
		if cellHeight == 0 {
			cellHeight = metrics.Height.Ceil()
		}
	}

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}

	defaultFG := DefaultForeground
	if cfg.DefaultFG != nil {
		defaultFG = *cfg.DefaultFG
	}

	defaultBG := DefaultBackground
	if cfg.DefaultBG != nil {
		defaultBG = *cfg.DefaultBG
	}

	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	showGUI := true
	if cfg.ShowGUI != nil {
		showGUI = *cfg.ShowGUI
	}

	// Create image
	imgWidth := s.cols * cellWidth
	imgHeight := s.rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	// Fill background
	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, defaultBG)
		}
	}

	metrics := face.Metrics()

	// Render each cell
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			pos := row*s.cols + col

			x := col * cellWidth
			y := row * cellHeight

			packed := s.planes.Color(pos)
			ext := s.planes.Extended(pos)

			fg := defaultFG
			bg := defaultBG
			if packed != 0 {
				fg = paletteColor(ColorForeground(packed), palette, defaultFG)
				bg = paletteColor(ColorBackground(packed), palette, defaultBG)
			}

			if ext&ExtendedReverse != 0 {
				fg, bg = bg, fg
			}

			// Fill cell background
			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, y+py, bg)
				}
			}

			ch := s.planes.Char(pos)
			if showGUI {
				if g := s.planes.GUIChar(pos); g != 0 {
					ch = g
				}
			}

			// Attribute cells and non-display cells render as blank;
			// wide-character spacer cells were drawn by their left half.
			if s.planes.IsAttributePlace(pos) || ext&ExtendedNonDisplay != 0 || ch == wideSpacer {
				ch = ' '
			}

			baseline := y + metrics.Ascent.Ceil()

			if ch != 0 && ch != ' ' {
				d := &font.Drawer{
					Dst:  img,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x, baseline),
				}
				d.DrawString(string(ch))
			}

			if ext&ExtendedUnderline != 0 {
				underlineY := baseline + 2
				for px := 0; px < cellWidth; px++ {
					if underlineY < imgHeight {
						img.Set(x+px, underlineY, fg)
					}
				}
			}

			if ext&ExtendedColSep != 0 {
				sepY := y + cellHeight - 1
				img.Set(x, sepY, fg)
				if x+cellWidth-1 < imgWidth {
					img.Set(x+cellWidth-1, sepY, fg)
				}
			}
		}
	}

	// Draw cursor if visible
	if showCursor && s.cursor.Active && s.cursor.Shown {
		cursorX := (s.cursor.Col - 1) * cellWidth
		cursorY := (s.cursor.Row - 1) * cellHeight

		if cfg.CursorColor != nil {
			// Use specified cursor color
			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					cx, cy := cursorX+px, cursorY+py
					if cx < imgWidth && cy < imgHeight {
						img.Set(cx, cy, cfg.CursorColor)
					}
				}
			}
		} else {
			// Invert colors
			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					cx, cy := cursorX+px, cursorY+py
					if cx < imgWidth && cy < imgHeight {
						existing := img.RGBAAt(cx, cy)
						inverted := color.RGBA{
							R: 255 - existing.R,
							G: 255 - existing.G,
							B: 255 - existing.B,
							A: 255,
						}
						img.Set(cx, cy, inverted)
					}
				}
			}
		}
	}

	return img
}
