// common/severity.go

package common

// Severity represents the severity level of a message or error.
// It is shared by logging, error dialogs and status messages.
type Severity string

const (
	// SeverityInfo is an informational message.
	SeverityInfo Severity = "INFO"

	// SeverityWarning means something is off but the application keeps working,
	// e.g. ExifTool could not be located and tool-dependent controls are disabled.
	SeverityWarning Severity = "WARNING"

	// SeverityError is a failed user action, such as an ExifTool run that could not be launched.
	SeverityError Severity = "ERROR"

	// SeverityCritical is a failure that leaves part of the application unusable.
	SeverityCritical Severity = "CRITICAL"
)
