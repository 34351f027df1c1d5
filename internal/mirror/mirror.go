// Package mirror keeps a durable local snapshot of the last loaded board in SQLite
package mirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/models"
	_ "modernc.org/sqlite"
)

// SnapshotKey is the fixed slot holding the current board
const SnapshotKey = "madboard_current_board"

// Mirror is a single-slot key/value snapshot store.
// Snapshots carry no schema version.
type Mirror struct {
	db *sql.DB
}

// DefaultPath returns ~/.madboard/mirror.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".madboard", "mirror.db"), nil
}

// Open opens (creating if needed) the snapshot database at path
func Open(ctx context.Context, path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}

	closeOnErr := func(err error) (*Mirror, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing mirror db", "error", closeErr)
		}
		return nil, err
	}

	// Set busy timeout to 5 seconds (SQLite will retry for this duration)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return closeOnErr(fmt.Errorf("failed to set busy timeout: %w", err))
	}

	// SQLite benefits from a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		return closeOnErr(fmt.Errorf("failed to create snapshots table: %w", err))
	}

	return &Mirror{db: db}, nil
}

// Close closes the snapshot database
func (m *Mirror) Close() error {
	return m.db.Close()
}

// Save serializes the board tree and overwrites the slot
func (m *Mirror) Save(ctx context.Context, board *models.Board) error {
	if board == nil {
		return errors.New("cannot mirror a nil board")
	}
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to encode board snapshot: %w", err)
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, SnapshotKey, string(data), models.FormatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save board snapshot: %w", err)
	}
	return nil
}

// Load returns the mirrored board and whether one was stored.
// A snapshot that no longer decodes is deleted and reported as absent.
func (m *Mirror) Load(ctx context.Context) (*models.Board, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, SnapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load board snapshot: %w", err)
	}

	var board models.Board
	if err := json.Unmarshal([]byte(value), &board); err != nil {
		slog.Warn("discarding corrupt board snapshot", "key", SnapshotKey, "error", err)
		if clearErr := m.Clear(ctx); clearErr != nil {
			return nil, false, clearErr
		}
		return nil, false, nil
	}
	return &board, true, nil
}

// Clear empties the slot
func (m *Mirror) Clear(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, SnapshotKey); err != nil {
		return fmt.Errorf("failed to clear board snapshot: %w", err)
	}
	return nil
}
