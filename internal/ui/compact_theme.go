package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette of the downloader window
var (
	ColorSky    = color.RGBA{R: 0x65, G: 0xAF, B: 0xD4, A: 0xFF}
	ColorCyan   = color.RGBA{R: 0x48, G: 0xCA, B: 0xE4, A: 0xFF}
	ColorPink   = color.RGBA{R: 0xF7, G: 0x25, B: 0x85, A: 0xFF}
	ColorNight  = color.RGBA{R: 0x12, G: 0x1E, B: 0x2A, A: 0xFF}
	ColorInk    = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	ColorFailed = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	ColorDone   = color.RGBA{R: 46, G: 160, B: 67, A: 255}
)

// CompactTheme is a compact theme in the downloader's sky blue palette
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return ColorDone
	case theme.ColorNameError:
		return ColorFailed
	case theme.ColorNamePrimary:
		return ColorPink
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return ColorNight
		}
		return ColorSky
	case theme.ColorNameHeaderBackground:
		return ColorCyan
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.White
		}
		return ColorInk
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
