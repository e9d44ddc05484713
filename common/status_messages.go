// common/status_messages.go

package common

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MessageType defines the type of status message
type MessageType int

// Message types constants
const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

// Severity maps the message type to the logging severity
func (t MessageType) Severity() Severity {
	switch t {
	case MessageWarning:
		return SeverityWarning
	case MessageError:
		return SeverityError
	default:
		return SeverityInfo
	}
}

// StatusMessage represents a single status message with its type and content
type StatusMessage struct {
	Type    MessageType
	Content string
	Time    time.Time
}

// StatusMessagesContainer is a widget that displays status messages with icons
type StatusMessagesContainer struct {
	widget.BaseWidget
	mutex     sync.Mutex
	messages  []StatusMessage
	container *fyne.Container
	scroll    *container.Scroll
}

// NewStatusMessagesContainer creates a new status messages container
func NewStatusMessagesContainer() *StatusMessagesContainer {
	smc := &StatusMessagesContainer{}
	smc.ExtendBaseWidget(smc)
	smc.container = container.NewVBox()
	smc.scroll = container.NewScroll(smc.container)
	smc.scroll.SetMinSize(fyne.NewSize(0, 120))
	return smc
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (smc *StatusMessagesContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(smc.scroll)
}

// AddMessage adds a new message to the container
func (smc *StatusMessagesContainer) AddMessage(messageType MessageType, content string) {
	msg := StatusMessage{Type: messageType, Content: content, Time: time.Now()}

	smc.mutex.Lock()
	smc.messages = append(smc.messages, msg)
	smc.mutex.Unlock()

	var icon fyne.Resource
	switch messageType {
	case MessageWarning:
		icon = theme.WarningIcon()
	case MessageError:
		icon = theme.ErrorIcon()
	default:
		icon = theme.InfoIcon()
	}

	messageLabel := widget.NewLabel(msg.Time.Format("15:04:05") + "  " + content)
	messageLabel.Alignment = fyne.TextAlignLeading
	messageLabel.Wrapping = fyne.TextWrapWord
	messageLabel.TextStyle.Bold = messageType != MessageInfo

	smc.container.Add(container.NewBorder(nil, nil, widget.NewIcon(icon), nil, messageLabel))
	smc.scroll.ScrollToBottom()
	smc.Refresh()
}

// AddInfoMessage adds an information message
func (smc *StatusMessagesContainer) AddInfoMessage(content string) {
	smc.AddMessage(MessageInfo, content)
}

// AddWarningMessage adds a warning message
func (smc *StatusMessagesContainer) AddWarningMessage(content string) {
	smc.AddMessage(MessageWarning, content)
}

// AddErrorMessage adds an error message
func (smc *StatusMessagesContainer) AddErrorMessage(content string) {
	smc.AddMessage(MessageError, content)
}

// ClearMessages removes all messages from the container
func (smc *StatusMessagesContainer) ClearMessages() {
	smc.mutex.Lock()
	smc.messages = nil
	smc.mutex.Unlock()

	smc.container.RemoveAll()
	smc.Refresh()
}

// GetMessages returns a copy of all messages
func (smc *StatusMessagesContainer) GetMessages() []StatusMessage {
	smc.mutex.Lock()
	defer smc.mutex.Unlock()
	return append([]StatusMessage(nil), smc.messages...)
}
