// common/module_base.go

package common

import (
	"fmt"
	"sync"

	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// Module defines the interface that all modules must implement
type Module interface {
	GetName() string
	GetConfigName() string
	GetIcon() fyne.Resource
	GetContent() fyne.CanvasObject
	LoadConfig()
	SaveConfig()
}

// ModuleBase provides common functionality for all modules
type ModuleBase struct {
	Window          fyne.Window
	ConfigMgr       *ConfigManager
	IsLoadingConfig bool
	ErrorHandler    *ErrorHandler
	Logger          *Logger
	StatusMessages  *StatusMessagesContainer

	mutex sync.Mutex
	busy  bool
	// runAsync starts background work; tests replace it to run synchronously
	runAsync func(func())
}

// NewModuleBase initializes a new ModuleBase
func NewModuleBase(window fyne.Window, configMgr *ConfigManager, errorHandler *ErrorHandler) *ModuleBase {
	if errorHandler == nil {
		errorHandler = NewErrorHandler(nil, window)
	}

	return &ModuleBase{
		Window:         window,
		ConfigMgr:      configMgr,
		ErrorHandler:   errorHandler,
		Logger:         errorHandler.GetLogger(),
		StatusMessages: NewStatusMessagesContainer(),
		runAsync:       func(f func()) { go f() },
	}
}

// SetAsyncRunner replaces the function used to start background operations
func (m *ModuleBase) SetAsyncRunner(run func(func())) {
	m.runAsync = run
}

// CreateModuleLayoutWithStatusMessages places the module content at the top and lets
// the status messages fill the remaining space
func (m *ModuleBase) CreateModuleLayoutWithStatusMessages(moduleContent fyne.CanvasObject) fyne.CanvasObject {
	mainContent := container.NewVBox(moduleContent)
	return container.New(
		layout.NewBorderLayout(mainContent, nil, nil, nil),
		mainContent,
		m.GetStatusMessagesContainer(),
	)
}

// IsBusy reports whether a background operation is in flight
func (m *ModuleBase) IsBusy() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.busy
}

// RunInBackground runs work off the UI thread unless another operation is in flight.
// onStart runs before the work is started and onDone after it finished, both exactly once
// per accepted call. A panic in work is recovered and reported. Returns false if busy.
func (m *ModuleBase) RunInBackground(moduleName, operation string, onStart func(), work func(), onDone func()) bool {
	m.mutex.Lock()
	if m.busy {
		m.mutex.Unlock()
		m.Logger.Info("[%s] %s ignored, another operation is running", moduleName, operation)
		return false
	}
	m.busy = true
	m.mutex.Unlock()

	if onStart != nil {
		onStart()
	}

	m.runAsync(func() {
		defer func() {
			if r := recover(); r != nil {
				m.AddErrorMessage(fmt.Sprintf("%s: %v", locales.Translate("common.err.panic"), r))
				m.ErrorHandler.ShowPanicError(moduleName, operation, r)
			}
			m.mutex.Lock()
			m.busy = false
			m.mutex.Unlock()
			if onDone != nil {
				onDone()
			}
		}()
		work()
	})
	return true
}

// HandleError processes an error with context
func (m *ModuleBase) HandleError(moduleName string, err error, operation string) {
	if m.ErrorHandler == nil || err == nil {
		return
	}

	context := NewErrorContext(moduleName, operation)
	context.Error = err
	m.ErrorHandler.ShowErrorWithContext(context)
}

// AddInfoMessage adds an information message to the status messages container
func (m *ModuleBase) AddInfoMessage(message string) {
	m.Logger.Info("%s", message)
	m.GetStatusMessagesContainer().AddMessage(MessageInfo, message)
}

// AddWarningMessage adds a warning message to the status messages container
func (m *ModuleBase) AddWarningMessage(message string) {
	m.Logger.Warning("%s", message)
	m.GetStatusMessagesContainer().AddMessage(MessageWarning, message)
}

// AddErrorMessage adds an error message to the status messages container
func (m *ModuleBase) AddErrorMessage(message string) {
	m.Logger.Error("%s", message)
	m.GetStatusMessagesContainer().AddMessage(MessageError, message)
}

// ClearStatusMessages clears all status messages
func (m *ModuleBase) ClearStatusMessages() {
	m.GetStatusMessagesContainer().ClearMessages()
}

// GetStatusMessagesContainer returns the status messages container, creating it if needed
func (m *ModuleBase) GetStatusMessagesContainer() *StatusMessagesContainer {
	if m.StatusMessages == nil {
		m.StatusMessages = NewStatusMessagesContainer()
	}
	return m.StatusMessages
}

// CreateChangeHandler prevents unwanted save triggers during config loading
func (m *ModuleBase) CreateChangeHandler(handler func()) func(string) {
	return func(string) {
		if !m.IsLoadingConfig {
			handler()
		}
	}
}

// CreateBoolChangeHandler handles boolean input changes safely
func (m *ModuleBase) CreateBoolChangeHandler(handler func()) func(bool) {
	return func(bool) {
		if !m.IsLoadingConfig {
			handler()
		}
	}
}
