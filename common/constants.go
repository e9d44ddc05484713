// common/constants.go

// Package common provides shared functionality and constants for the MetaCleaner application.
// This file contains constants used across the application to replace hardcoded strings.
package common

// ModuleKeys - Constants for module identification in configuration
const (
	// ModuleKeyCleaner is the key for the metadata cleaner module
	ModuleKeyCleaner = "Cleaner"

	// ModuleKeyHistory is the key for the clear history module
	ModuleKeyHistory = "History"
)

// OperationNames - Constants for operation names used in ErrorContext
const (
	OperationLocateTool      = "LocateExifTool"
	OperationSelectFile      = "SelectFile"
	OperationShowSummary     = "ShowSummaryMetadata"
	OperationShowDetailed    = "ShowDetailedMetadata"
	OperationClearMetadata   = "ClearMetadata"
	OperationJournalRecord   = "JournalRecord"
	OperationJournalRead     = "JournalRead"
	OperationSaveSettings    = "SaveSettings"
	OperationLoadConfig      = "LoadConfiguration"
	OperationShowToolVersion = "ShowToolVersion"
)

// MediaExtensions lists the extensions offered by the file picker filter.
var MediaExtensions = []string{"jpg", "jpeg", "png", "tiff", "mp4", "mov", "avi"}

// FileNames - Constants for file names
const (
	// FileNameSettings is the name of the configuration file
	FileNameSettings = "settings.conf"

	// FileNameLog is the name of the application log file
	FileNameLog = "metacleaner.log"

	// FileNameJournal is the name of the SQLite clear journal
	FileNameJournal = "history.db"

	// FolderNameLog is the name of the log folder
	FolderNameLog = "log"
)

// Log rotation defaults
const (
	LogMaxSizeMB  = 10
	LogMaxAgeDays = 7
)

// AppIdentifiers - Constants for application identification
const (
	// AppID is the application identifier
	AppID = "com.metacleaner.app"

	// AppName is the application name
	AppName = "MetaCleaner"

	// AppVersion is the application version shown in the about dialog
	AppVersion = "1.2.0"
)

// SQLFragments - Constants for the journal schema
const (
	// SQLTableClearJournal is the name of the table holding clear operations
	SQLTableClearJournal = "clear_journal"
)
