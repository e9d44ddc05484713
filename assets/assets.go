// Package assets holds the resources embedded into the binary.
package assets

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed logo.svg
var logoSVG []byte

var (
	// ResourceAppLogo is the application logo used as window icon and in the about window
	ResourceAppLogo fyne.Resource = fyne.NewStaticResource("logo.svg", logoSVG)
)
