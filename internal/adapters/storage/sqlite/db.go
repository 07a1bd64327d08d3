// Package sqlite es el store local por defecto del catálogo (modernc.org/sqlite,
// sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const (
	DefaultFile = "shelter.db"

	// SchemaVersion se guarda en PRAGMA user_version.
	SchemaVersion = 1
)

var ErrSchemaTooNew = errors.New("database schema is newer than this build")

const createPetsTable = `
CREATE TABLE IF NOT EXISTS pets (
    _id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    breed TEXT,
    gender INTEGER NOT NULL,
    weight INTEGER NOT NULL DEFAULT 0
);
`

// Store es el handle del archivo de base. Se construye una vez al arrancar y
// se cierra al terminar; es seguro para uso concurrente (database/sql).
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open abre o crea el archivo y crea la tabla si no existe.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	clean := filepath.Clean(path)
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := clean + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB expone el handle para tests y diagnósticos.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema: solo "crear si no existe". No hay migraciones; una base con
// versión mayor se rechaza.
func (s *Store) ensureSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("%w: found %d, supported %d", ErrSchemaTooNew, version, SchemaVersion)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createPetsTable); err != nil {
		return fmt.Errorf("create pets table: %w", err)
	}
	if version < SchemaVersion {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
