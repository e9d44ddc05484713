// modules/metadata_cleaner.go

// Package modules contains the tabs of the MetaCleaner main window.
// This file implements the metadata cleaner: file selection, summary and detailed views, and the destructive clear.
package modules

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"MetaCleaner/common"
	"MetaCleaner/exiftool"
	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MetadataRunner is the part of exiftool.Runner the cleaner uses
type MetadataRunner interface {
	Reference() exiftool.ToolReference
	Available() bool
	Summary(ctx context.Context, file string) (string, error)
	Detailed(ctx context.Context, file string) (string, error)
	Clear(ctx context.Context, file string) (exiftool.ClearOutcome, error)
}

// ClearRecorder stores a journal entry for each confirmed clear
type ClearRecorder interface {
	Record(entry common.JournalEntry) (common.JournalEntry, error)
}

// MetadataCleanerModule shows and strips the metadata of one selected file.
type MetadataCleanerModule struct {
	*common.ModuleBase
	runner    MetadataRunner
	journal   ClearRecorder
	validator *common.Validator

	ctx    context.Context
	cancel context.CancelFunc

	targetMutex sync.RWMutex
	targetFile  string

	// replaceable in tests
	chooseFile func(title, startDir string) (string, error)
	confirm    func(title, message string, callback func(bool))
	notify     func(title, message string)

	// OnCleared is called after every clear run, successful or not
	OnCleared func()

	content       fyne.CanvasObject
	toolLabel     *widget.Label
	fileLabel     *widget.Label
	selectBtn     *widget.Button
	detailBtn     *widget.Button
	clearBtn      *widget.Button
	detailedCheck *widget.Check
	output        *widget.Entry
}

// NewMetadataCleanerModule creates the cleaner tab. journal may be nil when the history is disabled.
func NewMetadataCleanerModule(window fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler, runner MetadataRunner, journal ClearRecorder) *MetadataCleanerModule {
	ctx, cancel := context.WithCancel(context.Background())
	m := &MetadataCleanerModule{
		ModuleBase: common.NewModuleBase(window, configMgr, errorHandler),
		runner:     runner,
		journal:    journal,
		ctx:        ctx,
		cancel:     cancel,
		chooseFile: common.ChooseMediaFile,
	}
	m.validator = common.NewValidator(m.ModuleBase, m.Logger)
	m.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, m.Window)
	}
	m.notify = func(title, message string) {
		dialog.ShowInformation(title, message, m.Window)
	}

	m.initializeUI()
	m.LoadConfig()
	m.updateControls()
	return m
}

// GetName returns the localized name of this module
func (m *MetadataCleanerModule) GetName() string {
	return locales.Translate("cleaner.label.title")
}

// GetConfigName returns the configuration key for this module
func (m *MetadataCleanerModule) GetConfigName() string {
	return common.ModuleKeyCleaner
}

// GetIcon returns the module's icon resource
func (m *MetadataCleanerModule) GetIcon() fyne.Resource {
	return theme.DocumentIcon()
}

// GetContent returns the module's main UI content
func (m *MetadataCleanerModule) GetContent() fyne.CanvasObject {
	return m.content
}

// TargetFile returns the currently selected file, empty when none is selected
func (m *MetadataCleanerModule) TargetFile() string {
	m.targetMutex.RLock()
	defer m.targetMutex.RUnlock()
	return m.targetFile
}

// Close cancels a running tool invocation
func (m *MetadataCleanerModule) Close() {
	m.cancel()
}

func (m *MetadataCleanerModule) initializeUI() {
	description := common.CreateDescriptionLabel(locales.Translate("cleaner.label.info"))

	m.toolLabel = widget.NewLabel("")
	m.toolLabel.Wrapping = fyne.TextWrapBreak
	m.fileLabel = widget.NewLabel(locales.Translate("cleaner.label.nofile"))
	m.fileLabel.Wrapping = fyne.TextWrapBreak

	m.selectBtn = common.CreateSubmitButtonWithIcon(locales.Translate("cleaner.button.select"), theme.FolderOpenIcon(), m.selectFile)
	m.detailBtn = widget.NewButtonWithIcon(locales.Translate("cleaner.button.detailed"), theme.InfoIcon(), m.showDetailed)
	m.clearBtn = common.CreateDangerButton(locales.Translate("cleaner.button.clear"), theme.DeleteIcon(), m.requestClear)

	m.detailedCheck = widget.NewCheck(locales.Translate("cleaner.chkbox.detailedonselect"), m.CreateBoolChangeHandler(m.SaveConfig))

	m.output = common.CreateOutputArea()
	m.output.SetPlaceHolder(locales.Translate("cleaner.output.placeholder"))
	m.output.SetMinRowsVisible(14)

	form := widget.NewForm(
		widget.NewFormItem(locales.Translate("cleaner.label.tool"), m.toolLabel),
		widget.NewFormItem(locales.Translate("cleaner.label.file"), m.fileLabel),
	)

	buttons := container.NewHBox(m.selectBtn, m.detailBtn, m.clearBtn)

	top := container.NewVBox(description, widget.NewSeparator(), form, buttons, m.detailedCheck)
	main := container.NewBorder(top, nil, nil, nil, container.NewScroll(m.output))

	split := container.NewVSplit(main, m.GetStatusMessagesContainer())
	split.SetOffset(0.8)
	m.content = split
}

// LoadConfig applies the persisted module settings to the UI
func (m *MetadataCleanerModule) LoadConfig() {
	if m.ConfigMgr == nil {
		return
	}
	m.IsLoadingConfig = true
	defer func() { m.IsLoadingConfig = false }()

	cfg := m.ConfigMgr.GetCleanerCfg()
	checked, _ := strconv.ParseBool(cfg.ShowDetailedOnSelect.Value)
	m.detailedCheck.SetChecked(checked)
}

// SaveConfig persists the module settings
func (m *MetadataCleanerModule) SaveConfig() {
	if m.ConfigMgr == nil || m.IsLoadingConfig {
		return
	}
	cfg := m.ConfigMgr.GetCleanerCfg()
	cfg.ShowDetailedOnSelect.Value = strconv.FormatBool(m.detailedCheck.Checked)
	if file := m.TargetFile(); file != "" {
		cfg.LastDirectory.Value = filepath.Dir(file)
	}
	if err := m.ConfigMgr.SaveModuleCfg(common.ModuleKeyCleaner, cfg); err != nil {
		m.Logger.Error("Failed to save cleaner configuration: %v", err)
	}
}

// updateControls applies the control state rules: detail and clear need a tool and a file,
// and nothing is clickable while an operation is running.
func (m *MetadataCleanerModule) updateControls() {
	ref := m.runner.Reference()
	if m.runner.Available() {
		m.toolLabel.SetText(fmt.Sprintf("%s (%s)", ref.String(), ref.Kind))
		m.toolLabel.Importance = widget.MediumImportance
	} else {
		m.toolLabel.SetText(locales.Translate("cleaner.label.toolmissing"))
		m.toolLabel.Importance = widget.DangerImportance
	}
	m.toolLabel.Refresh()

	busy := m.IsBusy()
	ready := m.runner.Available() && m.TargetFile() != "" && !busy
	common.SetControlsEnabled(!busy, m.selectBtn)
	common.SetControlsEnabled(ready, m.detailBtn, m.clearBtn)
}

func (m *MetadataCleanerModule) disableAll() {
	common.DisableModuleControls(m.selectBtn, m.detailBtn, m.clearBtn)
}

func (m *MetadataCleanerModule) selectFile() {
	startDir := ""
	if m.ConfigMgr != nil {
		startDir = m.ConfigMgr.GetCleanerCfg().LastDirectory.Value
	}

	path, err := m.chooseFile(locales.Translate("cleaner.dialog.select"), startDir)
	if err != nil {
		m.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("cleaner.err.select"), err))
		return
	}
	if path == "" {
		return
	}
	m.SelectFile(path)
}

// SelectFile replaces the target file and shows its metadata
func (m *MetadataCleanerModule) SelectFile(path string) {
	m.targetMutex.Lock()
	m.targetFile = path
	m.targetMutex.Unlock()

	m.fileLabel.SetText(path)
	m.AddInfoMessage(fmt.Sprintf(locales.Translate("cleaner.status.selected"), filepath.Base(path)))
	if !common.HasExtension(path, common.MediaExtensions) {
		m.AddWarningMessage(locales.Translate("cleaner.status.unusualext"))
	}
	m.SaveConfig()
	m.updateControls()

	if !m.runner.Available() {
		return
	}
	if m.detailedCheck.Checked {
		m.showDetailed()
		return
	}
	m.showSummary()
}

func (m *MetadataCleanerModule) showSummary() {
	m.runView(common.OperationShowSummary, m.runner.Summary)
}

func (m *MetadataCleanerModule) showDetailed() {
	m.runView(common.OperationShowDetailed, m.runner.Detailed)
}

func (m *MetadataCleanerModule) runView(operation string, view func(context.Context, string) (string, error)) {
	file := m.TargetFile()
	if file == "" || !m.runner.Available() {
		return
	}

	m.RunInBackground(m.GetName(), operation,
		func() {
			m.disableAll()
			m.output.SetText(locales.Translate("cleaner.output.running"))
		},
		func() {
			m.renderView(operation, view, file)
		},
		m.updateControls,
	)
}

func (m *MetadataCleanerModule) renderView(operation string, view func(context.Context, string) (string, error), file string) {
	text, err := view(m.ctx, file)
	if err != nil {
		m.output.SetText(describeRunError(err))
		m.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("cleaner.err.view"), err))
		return
	}
	if text == "" {
		text = locales.Translate("cleaner.output.empty")
	}
	m.output.SetText(text)
	m.Logger.Info("%s completed for %s", operation, file)
}

func (m *MetadataCleanerModule) requestClear() {
	file := m.TargetFile()
	if file == "" || !m.runner.Available() || m.IsBusy() {
		return
	}
	if err := m.validator.Validate(file, true); err != nil {
		return
	}

	m.confirm(
		locales.Translate("cleaner.dialog.confirmtitle"),
		fmt.Sprintf(locales.Translate("cleaner.dialog.confirmmsg"), filepath.Base(file)),
		func(yes bool) {
			if !yes {
				m.AddInfoMessage(locales.Translate("cleaner.status.declined"))
				return
			}
			m.runClear(file)
		},
	)
}

func (m *MetadataCleanerModule) runClear(file string) {
	m.RunInBackground(m.GetName(), common.OperationClearMetadata,
		func() {
			m.disableAll()
			m.AddInfoMessage(fmt.Sprintf(locales.Translate("cleaner.status.clearing"), filepath.Base(file)))
		},
		func() {
			m.clear(file)
			// the summary is refreshed whatever the clear reported
			m.renderView(common.OperationShowSummary, m.runner.Summary, file)
		},
		func() {
			m.updateControls()
			if m.OnCleared != nil {
				m.OnCleared()
			}
		},
	)
}

func (m *MetadataCleanerModule) clear(file string) {
	outcome, err := m.runner.Clear(m.ctx, file)
	if err != nil {
		m.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("cleaner.err.clear"), err))
		m.record(file, outcome, false, err.Error())
		ctx := common.NewErrorContext(m.GetName(), common.OperationClearMetadata)
		m.ErrorHandler.ShowStandardError(errors.New(describeRunError(err)), &ctx)
		return
	}

	m.record(file, outcome, !outcome.Failed, string(outcome.Result.Stderr))

	if outcome.Failed {
		m.AddErrorMessage(fmt.Sprintf(locales.Translate("cleaner.status.clearfailed"), outcome.Reason))
		ctx := common.NewErrorContext(m.GetName(), common.OperationClearMetadata)
		m.ErrorHandler.ShowStandardError(fmt.Errorf("%s: %s", locales.Translate("cleaner.err.clearreported"), outcome.Reason), &ctx)
		return
	}

	m.AddInfoMessage(fmt.Sprintf(locales.Translate("cleaner.status.cleared"), filepath.Base(file)))
	m.notify(locales.Translate("cleaner.dialog.successtitle"), fmt.Sprintf(locales.Translate("cleaner.dialog.successmsg"), filepath.Base(file)))
}

// record writes the journal entry; a journal failure never affects the clear itself
func (m *MetadataCleanerModule) record(file string, outcome exiftool.ClearOutcome, succeeded bool, stderr string) {
	if m.journal == nil {
		return
	}
	entry := common.JournalEntry{
		FilePath:  file,
		ToolPath:  m.runner.Reference().Value,
		ExitCode:  outcome.Result.ExitCode,
		Succeeded: succeeded,
		Stderr:    stderr,
	}
	if _, err := m.journal.Record(entry); err != nil {
		m.AddWarningMessage(fmt.Sprintf("%s: %v", locales.Translate("cleaner.err.journal"), err))
	}
}

// describeRunError turns runner errors into the inline text shown in the output area
func describeRunError(err error) string {
	switch {
	case errors.Is(err, exiftool.ErrToolNotFound):
		return locales.Translate("cleaner.err.toolnotfound")
	case errors.Is(err, exiftool.ErrExecutableNotInDirectory):
		return fmt.Sprintf("%s\n%v", locales.Translate("cleaner.err.nodirexe"), err)
	case errors.Is(err, exiftool.ErrUndecodableOutput):
		return locales.Translate("cleaner.err.undecodable")
	case errors.Is(err, exiftool.ErrNoTargetFile):
		return locales.Translate("cleaner.label.nofile")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s\n%v", locales.Translate("cleaner.err.timeout"), err)
	default:
		return fmt.Sprintf("%s\n%v", locales.Translate("cleaner.err.launch"), err)
	}
}
