// common/ui_helpers.go

package common

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	nativedialog "github.com/sqweek/dialog"
)

var (
	logFilePath  string
	logPathMutex sync.RWMutex
)

// SetLogFilePath records where the active log file lives so the log viewer can open it
func SetLogFilePath(path string) {
	logPathMutex.Lock()
	defer logPathMutex.Unlock()
	logFilePath = path
}

// GetLogFilePath returns the path to the log file
func GetLogFilePath() string {
	logPathMutex.RLock()
	defer logPathMutex.RUnlock()
	return logFilePath
}

// ChooseMediaFile opens the native file dialog filtered to MediaExtensions.
// A cancelled dialog returns an empty path and no error.
func ChooseMediaFile(title, startDir string) (string, error) {
	builder := nativedialog.File().
		Title(title).
		Filter(locales.Translate("common.filter.media"), MediaExtensions...).
		Filter(locales.Translate("common.filter.all"), "*")
	if startDir != "" && DirectoryExists(startDir) {
		builder = builder.SetStartDir(startDir)
	}

	path, err := builder.Load()
	if errors.Is(err, nativedialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// CreateNativeFolderBrowseButton creates a folder browse button using the native OS dialog
func CreateNativeFolderBrowseButton(title string, buttonText string, changeHandler func(string)) *widget.Button {
	return widget.NewButtonWithIcon(buttonText, theme.FolderOpenIcon(), func() {
		dirname, err := nativedialog.Directory().Title(title).Browse()
		if err == nil && dirname != "" && changeHandler != nil {
			changeHandler(dirname)
		}
	})
}

// CreateNativeFileBrowseButton creates a file browse button using the native OS dialog
func CreateNativeFileBrowseButton(title string, buttonText string, changeHandler func(string)) *widget.Button {
	return widget.NewButtonWithIcon(buttonText, theme.FileIcon(), func() {
		filename, err := nativedialog.File().Title(title).Filter(locales.Translate("common.filter.all"), "*").Load()
		if err == nil && filename != "" && changeHandler != nil {
			changeHandler(filename)
		}
	})
}

// CreatePathSelectionField creates an entry with file and folder browse buttons.
// The ExifTool location may be either an executable or its installation directory.
func CreatePathSelectionField(title string, entryField *widget.Entry, changeHandler func(string)) fyne.CanvasObject {
	if entryField == nil {
		entryField = widget.NewEntry()
	}
	entryField.SetPlaceHolder(locales.Translate("common.entry.placeholderpath"))

	if changeHandler != nil {
		entryField.OnChanged = changeHandler
	}

	apply := func(path string) {
		entryField.SetText(path)
		if changeHandler != nil {
			changeHandler(path)
		}
	}

	fileBtn := CreateNativeFileBrowseButton(title, "", apply)
	folderBtn := CreateNativeFolderBrowseButton(title, "", apply)

	return container.NewBorder(nil, nil, nil, container.NewHBox(fileBtn, folderBtn), entryField)
}

// CreatePathSelectionFieldWithDelete creates a folder selection field with browse and delete buttons
func CreatePathSelectionFieldWithDelete(title string, entryField *widget.Entry, changeHandler func(string), deleteHandler func()) fyne.CanvasObject {
	if entryField == nil {
		entryField = widget.NewEntry()
	}
	entryField.SetPlaceHolder(locales.Translate("common.entry.placeholderpath"))

	if changeHandler != nil {
		entryField.OnChanged = changeHandler
	}

	browseBtn := CreateNativeFolderBrowseButton(title, "", func(path string) {
		entryField.SetText(path)
		if changeHandler != nil {
			changeHandler(path)
		}
	})

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if deleteHandler != nil {
			deleteHandler()
		}
	})

	return container.NewBorder(nil, nil, deleteBtn, browseBtn, entryField)
}

// CreateSubmitButton creates a standardized submit button with high importance
func CreateSubmitButton(title string, handler func()) *widget.Button {
	btn := widget.NewButton(title, handler)
	btn.Importance = widget.HighImportance
	return btn
}

// CreateSubmitButtonWithIcon creates a standardized submit button with an icon and high importance
func CreateSubmitButtonWithIcon(title string, icon fyne.Resource, handler func()) *widget.Button {
	btn := widget.NewButtonWithIcon(title, icon, handler)
	btn.Importance = widget.HighImportance
	return btn
}

// CreateDangerButton creates a button for destructive actions
func CreateDangerButton(title string, icon fyne.Resource, handler func()) *widget.Button {
	btn := widget.NewButtonWithIcon(title, icon, handler)
	btn.Importance = widget.DangerImportance
	return btn
}

// CreateDisabledSubmitButton creates a submit button that is disabled by default.
func CreateDisabledSubmitButton(title string, handler func()) *widget.Button {
	btn := CreateSubmitButton(title, handler)
	btn.Disable()
	return btn
}

// CreateDescriptionLabel creates a standardized description label with wrapping and bold text
func CreateDescriptionLabel(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// CreateOutputArea creates the read-only monospace area used for tool output
func CreateOutputArea() *widget.Entry {
	out := widget.NewMultiLineEntry()
	out.TextStyle = fyne.TextStyle{Monospace: true}
	out.Wrapping = fyne.TextWrapOff
	out.Disable()
	return out
}

// DisableModuleControls disables multiple UI components at once
func DisableModuleControls(components ...fyne.Disableable) {
	for _, component := range components {
		component.Disable()
	}
}

// SetControlsEnabled enables or disables multiple UI components at once
func SetControlsEnabled(enabled bool, components ...fyne.Disableable) {
	for _, component := range components {
		if enabled {
			component.Enable()
		} else {
			component.Disable()
		}
	}
}

// ShowStandardError displays a standardized error dialog with log folder access
func ShowStandardError(window fyne.Window, err error, context *ErrorContext) *dialog.CustomDialog {
	header := locales.Translate("common.dialog.errorheader")
	if context != nil {
		switch context.Severity {
		case SeverityWarning:
			header = locales.Translate("common.dialog.warningheader")
		case SeverityCritical:
			header = locales.Translate("common.dialog.criticalheader")
		}
	}

	errorMsg := locales.Translate("common.err.unknown")
	if err != nil {
		errorMsg = err.Error()
	}

	messageLabel := widget.NewLabel(errorMsg)
	messageLabel.Wrapping = fyne.TextWrapWord

	openLogsBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.openlogs"),
		theme.FolderOpenIcon(),
		func() {
			ShowLogViewerWindow(window)
		},
	)

	var dlg *dialog.CustomDialog
	okBtn := widget.NewButton(
		locales.Translate("common.button.ok"),
		func() {
			dlg.Hide()
		},
	)
	okBtn.Importance = widget.HighImportance

	content := container.NewVBox(
		messageLabel,
		container.NewHBox(layout.NewSpacer(), openLogsBtn),
		container.NewHBox(layout.NewSpacer(), okBtn, layout.NewSpacer()),
	)

	dlg = dialog.NewCustomWithoutButtons(header, content, window)
	dlg.Resize(fyne.NewSize(420, 200))
	dlg.Show()
	return dlg
}

// ShowPanicDialog creates and shows a custom dialog for panic errors, allowing a custom title.
func ShowPanicDialog(window fyne.Window, title, content string) {
	label := widget.NewLabel(content)
	label.Wrapping = fyne.TextWrapWord
	panicDialog := dialog.NewCustom(title, locales.Translate("common.button.ok"), label, window)
	panicDialog.Show()
}

// ShowLogViewerWindow creates and displays a window with the log file content.
func ShowLogViewerWindow(parent fyne.Window) {
	logPath := GetLogFilePath()

	logText := widget.NewMultiLineEntry()
	logText.TextStyle = fyne.TextStyle{Monospace: true}
	logText.Wrapping = fyne.TextWrapBreak
	logText.Disable()

	scrollContainer := container.NewScroll(logText)

	logWindow := fyne.CurrentApp().NewWindow(locales.Translate("common.logviewer.header"))

	refreshBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.refresh"),
		theme.ViewRefreshIcon(),
		func() {
			loadLogContent(logPath, logText, scrollContainer)
		},
	)
	refreshBtn.Importance = widget.HighImportance
	closeBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.close"),
		theme.CancelIcon(),
		func() {
			logWindow.Close()
		},
	)

	content := container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), refreshBtn, closeBtn),
		nil,
		nil,
		scrollContainer,
	)

	logWindow.SetContent(content)
	logWindow.Resize(fyne.NewSize(800, 600))
	logWindow.CenterOnScreen()

	loadLogContent(logPath, logText, scrollContainer)

	logWindow.Show()
}

// loadLogContent loads the log file into the text widget and scrolls to the end.
func loadLogContent(logPath string, logText *widget.Entry, scrollContainer *container.Scroll) {
	if logPath == "" {
		logText.SetText(locales.Translate("common.err.nolog"))
		return
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		logText.SetText(fmt.Sprintf(locales.Translate("common.err.readlog"), err))
		return
	}

	logText.SetText(string(content))

	lineCount := strings.Count(string(content), "\n")
	if lineCount > 0 {
		logText.CursorRow = lineCount
		logText.Refresh()

		// scrolling only works once the content has been laid out
		go func() {
			time.Sleep(100 * time.Millisecond)
			scrollContainer.ScrollToBottom()
		}()
	}
}

// CreateDynamicEntryList creates and manages a dynamic list of path entry fields.
// It returns the container and a getter for the current non-empty values.
func CreateDynamicEntryList(
	initialEntries []string,
	maxEntries int,
	onChanged func([]string),
) (*fyne.Container, func() []string) {
	entryContainer := container.NewVBox()
	var entries []*widget.Entry

	values := func() []string {
		var out []string
		for _, e := range entries {
			if v := strings.TrimSpace(e.Text); v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	notify := func() {
		if onChanged != nil {
			onChanged(values())
		}
	}

	var addEntry func(path string) *widget.Entry
	addEntry = func(path string) *widget.Entry {
		if len(entries) >= maxEntries {
			return nil
		}

		newEntry := widget.NewEntry()
		if path != "" {
			newEntry.SetText(path)
		}

		field := CreatePathSelectionFieldWithDelete(
			locales.Translate("common.button.browsefolder"),
			newEntry,
			func(path string) {
				// keep one empty row at the end while below the limit
				if path != "" && newEntry == entries[len(entries)-1] && len(entries) < maxEntries {
					addEntry("")
				}
				notify()
			},
			func() {
				for i, entry := range entries {
					if entry == newEntry {
						entryContainer.Remove(entryContainer.Objects[i])
						entries = append(entries[:i], entries[i+1:]...)
						entryContainer.Refresh()
						break
					}
				}
				if len(entries) == 0 {
					addEntry("")
				}
				notify()
			},
		)

		entries = append(entries, newEntry)
		entryContainer.Add(field)
		entryContainer.Refresh()
		return newEntry
	}

	for _, path := range initialEntries {
		if path != "" {
			addEntry(path)
		}
	}
	if len(entries) == 0 || (len(entries) < maxEntries && entries[len(entries)-1].Text != "") {
		addEntry("")
	}

	return entryContainer, values
}
