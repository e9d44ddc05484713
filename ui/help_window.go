// Package ui provides the secondary windows of the application: settings, help and about.
package ui

import (
	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ShowHelpWindow creates and displays the help window.
func ShowHelpWindow(parent fyne.Window) {
	content := widget.NewRichTextFromMarkdown(locales.Translate("help.content"))
	content.Wrapping = fyne.TextWrapWord

	window := fyne.CurrentApp().NewWindow(locales.Translate("help.win.title"))
	window.SetContent(container.NewVScroll(content))
	window.Resize(fyne.NewSize(640, 480))
	window.CenterOnScreen()
	window.Show()
}
