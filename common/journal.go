// common/journal.go

// Package common implements shared functionality used across the MetaCleaner application.
// This file contains the clear journal: a local SQLite database with one row per confirmed clear operation.

package common

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"MetaCleaner/locales"

	"github.com/google/uuid"
	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// maxStderrExcerpt limits the stderr text stored per entry
const maxStderrExcerpt = 2000

// JournalEntry is one recorded clear operation.
type JournalEntry struct {
	ID        string
	FilePath  string
	ToolPath  string
	ClearedAt time.Time
	ExitCode  int
	Succeeded bool
	Stderr    string
}

// JournalManager owns the connection to the clear journal database.
// The database is opened unencrypted; the driver is the same SQLCipher build used for SQLite access elsewhere.
type JournalManager struct {
	db          *sql.DB
	dbPath      string
	isConnected bool
	finalized   bool
	mutex       sync.Mutex
	logger      *Logger
}

// NewJournalManager creates a journal manager for dbPath. The connection is opened lazily.
func NewJournalManager(dbPath string, logger *Logger) (*JournalManager, error) {
	if IsEmptyString(dbPath) {
		return nil, errors.New(locales.Translate("journal.err.path"))
	}
	if err := EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("%s: %w", locales.Translate("journal.err.dirensure"), err)
	}
	if logger == nil {
		logger = NewWriterLogger(nil)
	}

	return &JournalManager{
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// Path returns the database file path
func (m *JournalManager) Path() string {
	return m.dbPath
}

// Connect opens the database and creates the schema if needed
func (m *JournalManager) Connect() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.connectLocked()
}

func (m *JournalManager) connectLocked() error {
	if m.isConnected {
		return nil
	}
	if m.finalized {
		return errors.New(locales.Translate("journal.err.closed"))
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", m.dbPath))
	if err != nil {
		return fmt.Errorf("%s: %w", locales.Translate("journal.err.open"), err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%s: %w", locales.Translate("journal.err.open"), err)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		file_path TEXT NOT NULL,
		tool_path TEXT NOT NULL,
		cleared_at INTEGER NOT NULL,
		exit_code INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		stderr TEXT NOT NULL DEFAULT ''
	)`, SQLTableClearJournal)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("%s: %w", locales.Translate("journal.err.schema"), err)
	}

	m.db = db
	m.isConnected = true
	m.logger.Info("Connected to clear journal: %s", m.dbPath)
	return nil
}

// Record stores an entry. Missing ID and timestamp are filled in.
func (m *JournalManager) Record(entry JournalEntry) (JournalEntry, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.connectLocked(); err != nil {
		return entry, err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ClearedAt.IsZero() {
		entry.ClearedAt = time.Now()
	}
	if len(entry.Stderr) > maxStderrExcerpt {
		entry.Stderr = entry.Stderr[:maxStderrExcerpt]
	}

	query := fmt.Sprintf("INSERT INTO %s (id, file_path, tool_path, cleared_at, exit_code, succeeded, stderr) VALUES (?, ?, ?, ?, ?, ?, ?)", SQLTableClearJournal)
	_, err := m.db.Exec(query,
		entry.ID,
		entry.FilePath,
		entry.ToolPath,
		entry.ClearedAt.UnixNano(),
		entry.ExitCode,
		boolToInt(entry.Succeeded),
		entry.Stderr,
	)
	if err != nil {
		return entry, fmt.Errorf("%s: %w", locales.Translate("journal.err.insert"), err)
	}

	m.logger.Info("Journal entry %s recorded for %s (succeeded=%t)", entry.ID, entry.FilePath, entry.Succeeded)
	return entry, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all entries.
func (m *JournalManager) List(limit int) ([]JournalEntry, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.connectLocked(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, file_path, tool_path, cleared_at, exit_code, succeeded, stderr FROM %s ORDER BY cleared_at DESC, rowid DESC", SQLTableClearJournal)
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locales.Translate("journal.err.query"), err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			entry     JournalEntry
			clearedAt int64
			succeeded int
		)
		if err := rows.Scan(&entry.ID, &entry.FilePath, &entry.ToolPath, &clearedAt, &entry.ExitCode, &succeeded, &entry.Stderr); err != nil {
			return nil, fmt.Errorf("%s: %w", locales.Translate("journal.err.query"), err)
		}
		entry.ClearedAt = time.Unix(0, clearedAt)
		entry.Succeeded = succeeded != 0
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", locales.Translate("journal.err.query"), err)
	}

	return entries, nil
}

// Clear deletes all journal entries
func (m *JournalManager) Clear() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.connectLocked(); err != nil {
		return err
	}
	if _, err := m.db.Exec(fmt.Sprintf("DELETE FROM %s", SQLTableClearJournal)); err != nil {
		return fmt.Errorf("%s: %w", locales.Translate("journal.err.delete"), err)
	}
	m.logger.Info("Clear journal emptied")
	return nil
}

// Finalize closes the database connection. The manager cannot be reused afterwards.
func (m *JournalManager) Finalize() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.finalized {
		return nil
	}
	m.finalized = true

	if !m.isConnected || m.db == nil {
		return nil
	}

	if _, err := m.db.Exec("PRAGMA optimize"); err != nil {
		m.logger.Info("Warning: Failed to optimize journal database: %v", err)
	}

	if err := m.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", locales.Translate("journal.err.close"), err)
	}
	m.isConnected = false
	m.logger.Info("Clear journal finalized: %s", m.dbPath)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
