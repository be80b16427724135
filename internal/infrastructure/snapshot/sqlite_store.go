package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore guarda cada snapshot como una fila nueva; Latest devuelve la más reciente.
// El historial queda disponible para inspección manual.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore abre (o crea) la base en path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "bikefactory.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		saved_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Save inserta el snapshot como fila nueva.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots(saved_at, payload) VALUES(?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano), data,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Latest payload de la última fila; nil, nil si la tabla está vacía.
func (s *SQLiteStore) Latest(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return payload, nil
}

// Count número de snapshots guardados.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// Close cierra la base.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Path ruta configurada.
func (s *SQLiteStore) Path() string { return s.path }
