package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"MetaCleaner/common"
	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// maxSearchPaths limits the extra ExifTool candidates that can be configured
const maxSearchPaths = 5

// ShowSettingsWindow creates and displays the settings dialog.
func ShowSettingsWindow(parent fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler) {
	config := configMgr.GetGlobalConfig()

	var saveButton *widget.Button
	markDirty := func() {
		if saveButton != nil {
			saveButton.SetIcon(nil)
			saveButton.SetText(locales.Translate("settings.write.settings"))
		}
	}

	langItems := common.GetAvailableLanguages()
	langOptions := make([]string, len(langItems))
	for i, lang := range langItems {
		langOptions[i] = lang.Name
	}
	languageSelect := widget.NewSelect(langOptions, func(string) { markDirty() })
	for _, lang := range langItems {
		if lang.Code == config.Language {
			languageSelect.SetSelected(lang.Name)
			break
		}
	}

	toolPathEntry := widget.NewEntry()
	toolPathEntry.SetText(config.ExiftoolPath)
	toolPathField := common.CreatePathSelectionField(locales.Translate("settings.browse.title"), toolPathEntry, func(string) { markDirty() })

	searchPathsList, searchPaths := common.CreateDynamicEntryList(config.SearchPaths, maxSearchPaths, func([]string) { markDirty() })

	journalCheck := widget.NewCheck(locales.Translate("settings.chkbox.journaldisabled"), func(bool) { markDirty() })
	journalCheck.SetChecked(config.JournalDisabled)

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(config.CommandTimeoutSeconds))
	timeoutEntry.Validator = func(s string) error {
		_, err := parseTimeout(s)
		return err
	}
	timeoutEntry.OnChanged = func(string) { markDirty() }

	detectResult := widget.NewLabel("")
	detectResult.Wrapping = fyne.TextWrapBreak
	var detectButton *widget.Button
	detectButton = widget.NewButtonWithIcon(locales.Translate("settings.button.detect"), theme.SearchIcon(), func() {
		probe := config
		probe.ExiftoolPath = toolPathEntry.Text
		probe.SearchPaths = searchPaths()
		detectButton.Disable()
		detectResult.SetText(locales.Translate("settings.status.detecting"))
		go func() {
			defer detectButton.Enable()
			locator := common.NewToolLocator(probe, errorHandler.GetLogger(), nil)
			ref, err := locator.Locate(context.Background())
			if err != nil {
				detectResult.Importance = widget.DangerImportance
				detectResult.SetText(locales.Translate("settings.status.notdetected"))
				return
			}
			detectResult.Importance = widget.SuccessImportance
			detectResult.SetText(fmt.Sprintf(locales.Translate("settings.status.detected"), ref.String(), ref.Kind))
		}()
	})

	saveButton = common.CreateSubmitButton(locales.Translate("settings.write.settings"), func() {
		langCode := ""
		for _, lang := range langItems {
			if lang.Name == languageSelect.Selected {
				langCode = lang.Code
				break
			}
		}

		updated, err := buildGlobalConfig(config, langCode, toolPathEntry.Text, searchPaths(), journalCheck.Checked, timeoutEntry.Text)
		if err == nil {
			var warnings []string
			warnings, err = common.ValidateGlobalConfig(updated)
			for _, w := range warnings {
				errorHandler.GetLogger().Warning("%s", w)
			}
			if err == nil && len(warnings) > 0 {
				errorHandler.ShowWarning(locales.Translate("common.dialog.warningheader"), strings.Join(warnings, "\n"))
			}
		}
		if err == nil {
			err = configMgr.SaveGlobalConfig(updated)
		}
		if err != nil {
			errCtx := &common.ErrorContext{
				Module:      "Settings",
				Operation:   common.OperationSaveSettings,
				Severity:    common.SeverityError,
				Recoverable: true,
			}
			errorHandler.ShowStandardError(fmt.Errorf("%s: %w", locales.Translate("settings.err.save"), err), errCtx)
			return
		}

		if updated.Language != config.Language && updated.Language != "" {
			if err := locales.LoadTranslations(updated.Language); err != nil {
				errorHandler.GetLogger().Error("Failed to load translations for %s: %v", updated.Language, err)
			}
		}
		config = updated
		saveButton.SetText(locales.Translate("settings.status.saved"))
		saveButton.SetIcon(theme.ConfirmIcon())
	})

	restartNote := widget.NewLabel(locales.Translate("settings.label.restart"))
	restartNote.Wrapping = fyne.TextWrapWord
	restartNote.TextStyle = fyne.TextStyle{Italic: true}

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(locales.Translate("settings.lang.sel"), languageSelect),
			widget.NewFormItem(locales.Translate("settings.tool.loc"), container.NewBorder(nil, nil, nil, detectButton, toolPathField)),
			widget.NewFormItem("", detectResult),
			widget.NewFormItem(locales.Translate("settings.tool.extra"), searchPathsList),
			widget.NewFormItem(locales.Translate("settings.tool.timeout"), timeoutEntry),
			widget.NewFormItem("", journalCheck),
		),
		restartNote,
		container.NewHBox(layout.NewSpacer(), saveButton),
	)

	settingsDialog := dialog.NewCustom(
		locales.Translate("settings.win.title"),
		"",
		container.NewVScroll(form),
		parent,
	)

	closeButton := widget.NewButton(locales.Translate("common.button.close"), func() {
		settingsDialog.Hide()
	})
	closeButton.Importance = widget.DangerImportance
	settingsDialog.SetButtons([]fyne.CanvasObject{closeButton})

	settingsDialog.Resize(fyne.NewSize(800, 560))
	settingsDialog.Show()
}

// buildGlobalConfig applies the dialog values to base
func buildGlobalConfig(base common.GlobalCfg, langCode, toolPath string, searchPaths []string, journalDisabled bool, timeoutText string) (common.GlobalCfg, error) {
	timeout, err := parseTimeout(timeoutText)
	if err != nil {
		return base, err
	}

	updated := base
	if langCode != "" {
		updated.Language = langCode
	}
	updated.ExiftoolPath = common.NormalizePath(toolPath)
	updated.SearchPaths = nil
	for _, p := range searchPaths {
		if p = common.NormalizePath(p); p != "" {
			updated.SearchPaths = append(updated.SearchPaths, p)
		}
	}
	updated.JournalDisabled = journalDisabled
	updated.CommandTimeoutSeconds = timeout
	return updated, nil
}

// parseTimeout accepts an empty string as "no timeout"
func parseTimeout(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	seconds, err := strconv.Atoi(text)
	if err != nil || seconds < 0 || seconds > common.MaxCommandTimeoutSeconds {
		return 0, fmt.Errorf(locales.Translate("settings.err.timeout"), common.MaxCommandTimeoutSeconds)
	}
	return seconds, nil
}
