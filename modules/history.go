// modules/history.go

package modules

import (
	"fmt"
	"path/filepath"
	"sync"

	"MetaCleaner/common"
	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// historyLimit caps the number of entries shown in the list
const historyLimit = 500

// JournalReader is the part of common.JournalManager the history tab uses
type JournalReader interface {
	List(limit int) ([]common.JournalEntry, error)
	Clear() error
}

// HistoryModule lists the recorded clear operations, newest first.
type HistoryModule struct {
	*common.ModuleBase
	journal JournalReader

	entriesMutex sync.RWMutex
	entries      []common.JournalEntry

	confirm func(title, message string, callback func(bool))

	content    fyne.CanvasObject
	list       *widget.List
	countLabel *widget.Label
	refreshBtn *widget.Button
	clearBtn   *widget.Button
}

// NewHistoryModule creates the history tab. A nil journal shows the disabled state.
func NewHistoryModule(window fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler, journal JournalReader) *HistoryModule {
	m := &HistoryModule{
		ModuleBase: common.NewModuleBase(window, configMgr, errorHandler),
		journal:    journal,
	}
	m.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, m.Window)
	}
	m.initializeUI()
	m.Refresh()
	return m
}

// GetName returns the localized name of this module
func (m *HistoryModule) GetName() string {
	return locales.Translate("history.label.title")
}

// GetConfigName returns the configuration key for this module
func (m *HistoryModule) GetConfigName() string {
	return common.ModuleKeyHistory
}

// GetIcon returns the module's icon resource
func (m *HistoryModule) GetIcon() fyne.Resource {
	return theme.HistoryIcon()
}

// GetContent returns the module's main UI content
func (m *HistoryModule) GetContent() fyne.CanvasObject {
	return m.content
}

// LoadConfig is a no-op, the history tab has no persisted settings
func (m *HistoryModule) LoadConfig() {}

// SaveConfig is a no-op, the history tab has no persisted settings
func (m *HistoryModule) SaveConfig() {}

// Entries returns the entries currently displayed
func (m *HistoryModule) Entries() []common.JournalEntry {
	m.entriesMutex.RLock()
	defer m.entriesMutex.RUnlock()
	return append([]common.JournalEntry(nil), m.entries...)
}

func (m *HistoryModule) initializeUI() {
	description := common.CreateDescriptionLabel(locales.Translate("history.label.info"))
	m.countLabel = widget.NewLabel("")

	m.list = widget.NewList(
		func() int {
			m.entriesMutex.RLock()
			defer m.entriesMutex.RUnlock()
			return len(m.entries)
		},
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewIcon(theme.ConfirmIcon()), nil, widget.NewLabel(""))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			m.entriesMutex.RLock()
			if id >= len(m.entries) {
				m.entriesMutex.RUnlock()
				return
			}
			entry := m.entries[id]
			m.entriesMutex.RUnlock()

			row := item.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			icon := row.Objects[1].(*widget.Icon)
			label.SetText(formatEntry(entry))
			if entry.Succeeded {
				icon.SetResource(theme.ConfirmIcon())
			} else {
				icon.SetResource(theme.ErrorIcon())
			}
		},
	)

	m.refreshBtn = widget.NewButtonWithIcon(locales.Translate("common.button.refresh"), theme.ViewRefreshIcon(), m.Refresh)
	m.clearBtn = common.CreateDangerButton(locales.Translate("history.button.clear"), theme.DeleteIcon(), m.requestClearHistory)

	top := container.NewVBox(description, container.NewHBox(m.refreshBtn, m.clearBtn, m.countLabel))
	m.content = container.NewBorder(top, m.GetStatusMessagesContainer(), nil, nil, m.list)

	if m.journal == nil {
		m.countLabel.SetText(locales.Translate("history.label.disabled"))
		common.DisableModuleControls(m.refreshBtn, m.clearBtn)
	}
}

// Refresh reloads the entries from the journal
func (m *HistoryModule) Refresh() {
	if m.journal == nil {
		return
	}
	entries, err := m.journal.List(historyLimit)
	if err != nil {
		m.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("history.err.load"), err))
		return
	}

	m.entriesMutex.Lock()
	m.entries = entries
	m.entriesMutex.Unlock()

	m.countLabel.SetText(fmt.Sprintf(locales.Translate("history.label.count"), len(entries)))
	m.list.Refresh()
	if len(entries) == 0 {
		m.clearBtn.Disable()
	} else {
		m.clearBtn.Enable()
	}
}

func (m *HistoryModule) requestClearHistory() {
	if m.journal == nil {
		return
	}
	m.confirm(locales.Translate("history.dialog.cleartitle"), locales.Translate("history.dialog.clearmsg"), func(yes bool) {
		if !yes {
			return
		}
		if err := m.journal.Clear(); err != nil {
			m.HandleError(m.GetName(), err, common.OperationJournalRead)
			return
		}
		m.AddInfoMessage(locales.Translate("history.status.cleared"))
		m.Refresh()
	})
}

func formatEntry(entry common.JournalEntry) string {
	status := locales.Translate("history.status.ok")
	if !entry.Succeeded {
		status = fmt.Sprintf(locales.Translate("history.status.failed"), entry.ExitCode)
	}
	return fmt.Sprintf("%s  %s  %s  (%s)",
		entry.ClearedAt.Format("2006-01-02 15:04:05"),
		filepath.Base(entry.FilePath),
		status,
		entry.FilePath,
	)
}
