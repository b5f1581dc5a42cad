package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// palette holds the colours a ViewTheme overrides for one variant.
type palette map[fyne.ThemeColorName]color.Color

var (
	lightPalette = palette{
		theme.ColorNameBackground:       color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf7, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x2e, G: 0x7d, B: 0x5b, A: 0xff},
		theme.ColorNameHover:            color.NRGBA{R: 0xd7, G: 0xec, B: 0xe2, A: 0xff},
		theme.ColorNameFocus:            color.NRGBA{R: 0x1b, G: 0x5e, B: 0x44, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0xe8, G: 0xee, B: 0xea, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0xc3, G: 0xe3, B: 0xd4, A: 0xff},
	}
	darkPalette = palette{
		theme.ColorNameBackground:       color.NRGBA{R: 0x1c, G: 0x1f, B: 0x1d, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x5c, G: 0xbf, B: 0x8f, A: 0xff},
		theme.ColorNameHover:            color.NRGBA{R: 0x2c, G: 0x3a, B: 0x33, A: 0xff},
		theme.ColorNameFocus:            color.NRGBA{R: 0x8f, G: 0xd9, B: 0xb4, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0x26, G: 0x2b, B: 0x28, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0x23, G: 0x5c, B: 0x43, A: 0xff},
	}
)

// ViewTheme is the default theme with a green accent and compact spacing
// suited to dense tables.
type ViewTheme struct{}

var _ fyne.Theme = (*ViewTheme)(nil)

func (m ViewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	p := darkPalette
	if variant == theme.VariantLight {
		p = lightPalette
	}
	if c, ok := p[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m ViewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m ViewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m ViewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameSeparatorThickness:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}
