// main.go

package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"MetaCleaner/assets"
	"MetaCleaner/common"
	"MetaCleaner/exiftool"
	"MetaCleaner/locales"
	"MetaCleaner/modules"
	"MetaCleaner/theme"
	"MetaCleaner/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MetaCleaner is the main application structure.
type MetaCleaner struct {
	app             fyne.App
	mainWindow      fyne.Window
	configMgr       *common.ConfigManager
	journal         *common.JournalManager
	journalOnce     sync.Once
	runner          *exiftool.Runner
	toolWarning     string
	modules         []*moduleInfo
	cleaner         *modules.MetadataCleanerModule
	history         *modules.HistoryModule
	logger          *common.Logger
	errorHandler    *common.ErrorHandler
	tabContainer    *container.AppTabs
	configInitError error
}

// moduleInfo holds information about a module.
type moduleInfo struct {
	module   common.Module
	tabItem  *container.TabItem
	isLoaded bool
	createFn func() common.Module
}

// NewMetaCleaner initializes the main application: logging, configuration, language, theme,
// main window and the ExifTool lookup.
func NewMetaCleaner() *MetaCleaner {
	logger := initLogger()
	common.FlushEarlyLogs(logger)

	fyneApp := app.NewWithID(common.AppID)
	fyneApp.SetIcon(assets.ResourceAppLogo)
	fyneApp.Settings().SetTheme(theme.NewCustomTheme())

	mc := &MetaCleaner{
		app:    fyneApp,
		logger: logger,
	}

	mc.configMgr, mc.configInitError = initConfig(logger)

	if mc.configMgr != nil {
		common.DetectAndSetLanguage(mc.configMgr, mc.logger)
	} else {
		mc.logger.Warning("ConfigManager is not available, using %s", locales.DefaultLanguage)
		if err := locales.LoadTranslations(locales.DefaultLanguage); err != nil {
			mc.logger.Error("Failed to load fallback translations: %v", err)
		}
	}

	mainWindow := fyneApp.NewWindow(locales.Translate("main.app.title"))
	mainWindow.Resize(fyne.NewSize(1000, 700))

	mc.errorHandler = common.NewErrorHandler(mc.logger, mainWindow)
	mc.mainWindow = mainWindow

	mc.logger.Info("%s", locales.Translate("main.log.appstart"))

	mc.locateTool()
	return mc
}

// initLogger opens the log file: working directory if a log exists there, then the
// per-user application directory, then the working directory as fallback.
func initLogger() *common.Logger {
	logPath, err := common.LocateOrCreatePath(common.FileNameLog, common.FolderNameLog)
	if err != nil {
		logPath = common.FileNameLog
	}

	logger, err := common.NewLogger(logPath, common.LogMaxSizeMB, common.LogMaxAgeDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Failed to initialize logger in any location: %v\n", err)
		os.Exit(1)
	}
	common.SetLogFilePath(logger.Path())
	return logger
}

// initConfig loads settings.conf using the same lookup chain as the log file
func initConfig(logger *common.Logger) (*common.ConfigManager, error) {
	cfgPath, err := common.LocateOrCreatePath(common.FileNameSettings, "")
	if err != nil {
		logger.Error("No writable location for %s: %v", common.FileNameSettings, err)
		return nil, err
	}

	if !common.FileExists(cfgPath) {
		if err := common.CreateCfgFile(cfgPath); err != nil {
			logger.Warning("Failed to create config file %s: %v", cfgPath, err)
		} else {
			logger.Info("Created new config file: %s", cfgPath)
		}
	}

	configMgr, err := common.NewConfigManager(cfgPath)
	if err != nil {
		logger.Error("Failed to load configuration from %s: %v", cfgPath, err)
		return nil, err
	}
	if err := configMgr.LoadCfg(); err != nil {
		logger.Warning("Configuration %s could not be read, defaults are used: %v", cfgPath, err)
		return configMgr, fmt.Errorf("%s: %w", locales.Translate("common.err.configload"), err)
	}
	logger.Info("Using config file: %s", cfgPath)
	return configMgr, nil
}

// globalConfig returns the stored global settings, defaults when the config manager is missing
func (mc *MetaCleaner) globalConfig() common.GlobalCfg {
	if mc.configMgr == nil {
		return common.DefaultCfg().Global
	}
	return mc.configMgr.GetGlobalConfig()
}

// locateTool resolves the ExifTool reference once. The warning is shown after the window is visible.
func (mc *MetaCleaner) locateTool() {
	cfg := mc.globalConfig()
	locator := common.NewToolLocator(cfg, mc.logger, func(message string) {
		mc.toolWarning = message
	})

	ref, err := locator.Locate(context.Background())
	if err != nil {
		mc.logger.Warning("%s: %v", common.OperationLocateTool, err)
	}
	mc.runner = common.NewToolRunner(ref, cfg, mc.logger)
}

// getJournal opens the clear journal on first use. Returns nil when disabled or unavailable.
func (mc *MetaCleaner) getJournal() *common.JournalManager {
	mc.journalOnce.Do(func() {
		if mc.globalConfig().JournalDisabled {
			mc.logger.Info("Clear journal is disabled in settings")
			return
		}
		path, err := common.LocateOrCreatePath(common.FileNameJournal, "")
		if err != nil {
			mc.logger.Error("Journal: no writable location: %v", err)
			return
		}
		journal, err := common.NewJournalManager(path, mc.logger)
		if err != nil {
			mc.logger.Error("Journal: failed to initialize for '%s': %v", path, err)
			return
		}
		if err := journal.Connect(); err != nil {
			mc.logger.Error("Journal: failed to open '%s': %v", path, err)
			return
		}
		mc.journal = journal
	})
	return mc.journal
}

// Run builds the GUI and runs the main event loop.
func (mc *MetaCleaner) Run() {
	defer func() {
		if r := recover(); r != nil {
			if mc.errorHandler != nil {
				mc.errorHandler.ShowPanicError(common.AppName, "Run", r)
			} else if mc.logger != nil {
				mc.logger.Critical("PANIC RECOVERED (ErrorHandler not available): %v", r)
			}
		}
	}()

	mc.initModules()
	mc.createMainContent()

	mc.mainWindow.SetCloseIntercept(func() {
		for _, info := range mc.modules {
			if info.isLoaded {
				info.module.SaveConfig()
			}
		}
		if mc.cleaner != nil {
			mc.cleaner.Close()
		}
		mc.mainWindow.Close()
	})

	mc.mainWindow.Show()

	if mc.configInitError != nil {
		mc.logger.Info("Displaying initialization error dialog for: %v", mc.configInitError)
		mc.errorHandler.ShowInitializationErrorDialog(mc.configInitError)
	}
	if mc.toolWarning != "" {
		mc.errorHandler.ShowWarning(locales.Translate("main.dialog.toolmissingtitle"), locales.Translate("main.dialog.toolmissing"))
	}

	mc.app.Run()

	if mc.journal != nil {
		if err := mc.journal.Finalize(); err != nil {
			mc.logger.Error("%s: %v", locales.Translate("journal.err.close"), err)
		}
	}
	mc.logger.Info("%s", locales.Translate("main.log.appstop"))
	mc.logger.Close()
}

// initModules prepares module definitions without initializing them
func (mc *MetaCleaner) initModules() {
	mc.modules = []*moduleInfo{
		{
			createFn: func() common.Module {
				var recorder modules.ClearRecorder
				if journal := mc.getJournal(); journal != nil {
					recorder = journal
				}
				mc.cleaner = modules.NewMetadataCleanerModule(mc.mainWindow, mc.configMgr, mc.errorHandler, mc.runner, recorder)
				mc.cleaner.OnCleared = func() {
					if mc.history != nil {
						mc.history.Refresh()
					}
				}
				return mc.cleaner
			},
		},
		{
			createFn: func() common.Module {
				var reader modules.JournalReader
				if journal := mc.getJournal(); journal != nil {
					reader = journal
				}
				mc.history = modules.NewHistoryModule(mc.mainWindow, mc.configMgr, mc.errorHandler, reader)
				return mc.history
			},
		},
	}
}

// createMainContent creates the main window content with tabs.
// The first tab is built immediately, the others when they are first selected.
func (mc *MetaCleaner) createMainContent() fyne.CanvasObject {
	mc.tabContainer = container.NewAppTabs()

	tabTitles := []struct {
		title string
		icon  fyne.Resource
	}{
		{locales.Translate("cleaner.label.title"), fynetheme.DocumentIcon()},
		{locales.Translate("history.label.title"), fynetheme.HistoryIcon()},
	}

	for i, info := range mc.modules {
		info.tabItem = container.NewTabItemWithIcon(tabTitles[i].title, tabTitles[i].icon, container.NewVBox())
		mc.tabContainer.Append(info.tabItem)
	}

	if len(mc.modules) > 0 {
		mc.loadModule(mc.modules[0])
		mc.tabContainer.Select(mc.modules[0].tabItem)
	}

	mc.tabContainer.OnSelected = func(tab *container.TabItem) {
		for _, info := range mc.modules {
			if info.tabItem == tab {
				if !info.isLoaded {
					mc.loadModule(info)
					mc.tabContainer.Refresh()
				} else if history, ok := info.module.(*modules.HistoryModule); ok {
					history.Refresh()
				}
				break
			}
		}
	}

	mc.tabContainer.SetTabLocation(container.TabLocationTop)

	content := container.NewBorder(mc.createMenuBar(), nil, nil, nil, mc.tabContainer)
	mc.mainWindow.SetContent(content)
	return content
}

func (mc *MetaCleaner) loadModule(info *moduleInfo) {
	info.module = info.createFn()
	info.isLoaded = true
	info.tabItem.Content = info.module.GetContent()
}

// createMenuBar creates a simple horizontal bar with Settings, Help and About buttons.
func (mc *MetaCleaner) createMenuBar() fyne.CanvasObject {
	settingsButton := widget.NewButtonWithIcon(locales.Translate("settings.win.title"), fynetheme.SettingsIcon(), func() {
		if mc.configMgr == nil {
			mc.errorHandler.ShowInitializationErrorDialog(mc.configInitError)
			return
		}
		ui.ShowSettingsWindow(mc.mainWindow, mc.configMgr, mc.errorHandler)
	})
	helpButton := widget.NewButtonWithIcon(locales.Translate("main.menu.help"), fynetheme.HelpIcon(), func() {
		ui.ShowHelpWindow(mc.mainWindow)
	})
	aboutButton := widget.NewButtonWithIcon(locales.Translate("main.menu.about"), fynetheme.InfoIcon(), func() {
		ui.ShowAboutWindow(mc.mainWindow, mc.runner)
	})
	logsButton := widget.NewButtonWithIcon(locales.Translate("common.button.openlogs"), fynetheme.DocumentIcon(), func() {
		common.ShowLogViewerWindow(mc.mainWindow)
	})

	return container.NewHBox(settingsButton, helpButton, aboutButton, layout.NewSpacer(), logsButton)
}

// main is the entry point.
func main() {
	mc := NewMetaCleaner()
	mc.Run()
}
