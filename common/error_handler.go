// common/error_handler.go

package common

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"MetaCleaner/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ErrorContext provides additional information about an error
type ErrorContext struct {
	Module      string
	Operation   string
	Error       error
	Severity    Severity
	Recoverable bool
	Timestamp   time.Time
	StackTrace  string
}

// NewErrorContext creates a new error context with defaults
func NewErrorContext(module, operation string) ErrorContext {
	return ErrorContext{
		Module:      module,
		Operation:   operation,
		Severity:    SeverityError,
		Recoverable: true,
		Timestamp:   time.Now(),
	}
}

// ErrorHandler logs application errors and shows them in dialogs
type ErrorHandler struct {
	logger    *Logger
	window    fyne.Window
	isLogging bool
}

// NewErrorHandler creates a new error handler instance. A nil logger discards log output.
func NewErrorHandler(logger *Logger, window fyne.Window) *ErrorHandler {
	if logger == nil {
		logger = NewWriterLogger(nil)
	}

	return &ErrorHandler{
		logger:    logger,
		window:    window,
		isLogging: true,
	}
}

// SetWindow sets the window for displaying error dialogs
func (h *ErrorHandler) SetWindow(window fyne.Window) {
	h.window = window
}

// GetLogger returns the logger instance
func (h *ErrorHandler) GetLogger() *Logger {
	return h.logger
}

// SetLoggingEnabled enables or disables error logging
func (h *ErrorHandler) SetLoggingEnabled(enabled bool) {
	h.isLogging = enabled
}

// ShowError displays an error dialog and logs the error
func (h *ErrorHandler) ShowError(err error) {
	if err == nil {
		return
	}

	if h.isLogging {
		h.logger.Error("%v", err)
	}

	if h.window != nil {
		dialog.ShowError(err, h.window)
	}
}

// ShowErrorWithContext displays an error dialog with context and logs the error
func (h *ErrorHandler) ShowErrorWithContext(context ErrorContext) {
	if context.Error == nil {
		return
	}

	h.logContext(context)

	if h.window != nil {
		h.showErrorDialog(context)
	}
}

// ShowStandardError logs err and shows the standard dialog with log viewer access
func (h *ErrorHandler) ShowStandardError(err error, context *ErrorContext) {
	if err == nil {
		return
	}
	if context == nil {
		ctx := NewErrorContext("", "")
		context = &ctx
	}
	context.Error = err
	h.logContext(*context)

	if h.window != nil {
		ShowStandardError(h.window, err, context)
	}
}

// ShowWarning logs a warning and shows it in an information dialog
func (h *ErrorHandler) ShowWarning(title, message string) {
	if h.isLogging {
		h.logger.Warning("%s: %s", title, message)
	}
	if h.window != nil {
		dialog.ShowInformation(title, message, h.window)
	}
}

// ShowPanicError logs a recovered panic with its stack trace and shows it
func (h *ErrorHandler) ShowPanicError(module, operation string, recovered interface{}) {
	context := NewErrorContext(module, operation)
	context.Error = fmt.Errorf("%s: %v", locales.Translate("common.err.panic"), recovered)
	context.Severity = SeverityCritical
	context.Recoverable = false
	context.StackTrace = string(debug.Stack())

	h.logContext(context)
	h.logger.Critical("Stack trace:\n%s", context.StackTrace)

	if h.window != nil {
		h.showErrorDialog(context)
	}
}

// ShowInitializationErrorDialog shows an error that happened before the main window was ready
func (h *ErrorHandler) ShowInitializationErrorDialog(err error) {
	if err == nil {
		return
	}
	context := NewErrorContext("", "Initialization")
	context.Error = err
	context.Severity = SeverityCritical
	h.logContext(context)

	if h.window != nil {
		ShowPanicDialog(h.window, locales.Translate("common.dialog.criticalheader"), err.Error())
	}
}

// FormatError creates a standardized error message
func (h *ErrorHandler) FormatError(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, err)
}

func (h *ErrorHandler) logContext(context ErrorContext) {
	if !h.isLogging {
		return
	}
	severity := context.Severity
	if severity == "" {
		severity = SeverityError
	}
	if context.Module != "" {
		h.logger.Log(severity, "[%s] %s: %v", context.Module, context.Operation, context.Error)
		return
	}
	h.logger.Log(severity, "%s: %v", context.Operation, context.Error)
}

func (h *ErrorHandler) showErrorDialog(context ErrorContext) {
	message := widget.NewLabel(context.Error.Error())
	message.Wrapping = fyne.TextWrapWord
	message.Resize(fyne.NewSize(400, message.MinSize().Height))

	detailsLabel := widget.NewLabel(fmt.Sprintf("%s: %s\n%s: %s",
		locales.Translate("common.label.module"), context.Module,
		locales.Translate("common.label.operation"), context.Operation))
	detailsLabel.Wrapping = fyne.TextWrapWord
	detailsLabel.Resize(fyne.NewSize(400, detailsLabel.MinSize().Height))

	content := container.NewVBox(
		message,
		widget.NewSeparator(),
		detailsLabel,
	)

	if context.StackTrace != "" {
		showStackTraceBtn := widget.NewButtonWithIcon(locales.Translate("common.button.showdetails"), theme.InfoIcon(), nil)
		stackTraceArea := widget.NewMultiLineEntry()
		stackTraceArea.SetText(context.StackTrace)
		stackTraceArea.Disable()

		showStackTraceBtn.OnTapped = func() {
			if strings.Contains(showStackTraceBtn.Text, locales.Translate("common.button.showdetails")) {
				content.Add(stackTraceArea)
				showStackTraceBtn.SetText(locales.Translate("common.button.hidedetails"))
			} else {
				content.Remove(stackTraceArea)
				showStackTraceBtn.SetText(locales.Translate("common.button.showdetails"))
			}
		}

		content.Add(showStackTraceBtn)
	}

	customDialog := dialog.NewCustom(
		locales.Translate("common.dialog.errorheader"),
		locales.Translate("common.button.ok"),
		content,
		h.window,
	)

	customDialog.Show()
}
