package ui

import (
	"context"
	"fmt"
	"time"

	"MetaCleaner/assets"
	"MetaCleaner/common"
	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// versionTimeout bounds the "-ver" call made for the about window
const versionTimeout = 10 * time.Second

// ToolVersioner reports the version of the located metadata tool
type ToolVersioner interface {
	Available() bool
	Version(ctx context.Context) (string, error)
}

// ShowAboutWindow creates and displays the about window.
func ShowAboutWindow(parent fyne.Window, tool ToolVersioner) {
	logo := canvas.NewImageFromResource(assets.ResourceAppLogo)
	logo.FillMode = canvas.ImageFillContain
	logo.SetMinSize(fyne.NewSize(96, 96))

	title := widget.NewLabelWithStyle(common.AppName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	version := widget.NewLabelWithStyle(fmt.Sprintf(locales.Translate("about.label.version"), common.AppVersion), fyne.TextAlignCenter, fyne.TextStyle{})
	toolVersion := widget.NewLabelWithStyle(locales.Translate("about.label.toolchecking"), fyne.TextAlignCenter, fyne.TextStyle{})
	description := widget.NewLabel(locales.Translate("about.label.description"))
	description.Wrapping = fyne.TextWrapWord
	description.Alignment = fyne.TextAlignCenter

	window := fyne.CurrentApp().NewWindow(locales.Translate("about.win.title"))
	window.SetContent(container.NewVBox(logo, title, version, toolVersion, widget.NewSeparator(), description))
	window.Resize(fyne.NewSize(480, 360))
	window.CenterOnScreen()
	window.Show()

	go func() {
		toolVersion.SetText(describeToolVersion(tool))
	}()
}

func describeToolVersion(tool ToolVersioner) string {
	if tool == nil || !tool.Available() {
		return locales.Translate("about.label.toolmissing")
	}
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	v, err := tool.Version(ctx)
	if err != nil {
		return fmt.Sprintf("%s: %v", locales.Translate("about.label.toolerror"), err)
	}
	return fmt.Sprintf(locales.Translate("about.label.toolversion"), v)
}
