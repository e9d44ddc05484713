// Package theme provides the application's dark theme.
package theme

import (
	"image/color"

	"MetaCleaner/assets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	accent     = color.NRGBA{R: 0x1f, G: 0xa3, B: 0x8a, A: 0xff} // #1FA38A
	danger     = color.NRGBA{R: 0xc2, G: 0x14, B: 0x3d, A: 0xff} // #C2143D
	background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff} // #1E1E1E
)

type customTheme struct {
	fyne.Theme
}

// NewCustomTheme returns the dark theme regardless of system settings
func NewCustomTheme() fyne.Theme {
	return &customTheme{Theme: theme.DefaultTheme()}
}

// AppIcon returns the application icon
func AppIcon() fyne.Resource {
	return assets.ResourceAppLogo
}

func (t *customTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameButton:
		return background
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection:
		return accent
	case theme.ColorNameError:
		return danger
	case theme.ColorNameForeground, theme.ColorNameForegroundOnError, theme.ColorNameForegroundOnPrimary:
		return color.White
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 150, G: 150, B: 150, A: 255} // #969696
	case theme.ColorNameHeaderBackground:
		return color.NRGBA{R: 58, G: 58, B: 58, A: 255} // #3A3A3A
	case theme.ColorNameHover:
		return color.NRGBA{R: 71, G: 71, B: 71, A: 255} // #474747
	case theme.ColorNameInputBackground:
		return color.Black
	case theme.ColorNameInputBorder, theme.ColorNamePressed, theme.ColorNameOverlayBackground:
		return color.NRGBA{R: 33, G: 33, B: 33, A: 255} // #212121
	case theme.ColorNameMenuBackground:
		return color.NRGBA{R: 41, G: 41, B: 46, A: 255} // #29292E
	case theme.ColorNamePlaceHolder:
		return color.NRGBA{R: 179, G: 179, B: 179, A: 255} // #B3B3B3
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 66, G: 66, B: 66, A: 255} // #424242
	case theme.ColorNameSeparator:
		return color.Black
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 67, G: 200, B: 90, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 152, B: 0, A: 255} // #FF9800
	default:
		return t.Theme.Color(name, theme.VariantDark)
	}
}

func (t *customTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameSeparatorThickness, theme.SizeNameInputBorder:
		return 1
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 22
	case theme.SizeNameSubHeadingText:
		return 17
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 6
	default:
		return t.Theme.Size(name)
	}
}
