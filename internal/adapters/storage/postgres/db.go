package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const createPetsTable = `
CREATE TABLE IF NOT EXISTS pets (
	_id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	breed TEXT,
	gender INTEGER NOT NULL,
	weight INTEGER NOT NULL DEFAULT 0
)`

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para un solo usuario local
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea la tabla si no existe. No hay migraciones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createPetsTable); err != nil {
		return fmt.Errorf("create pets table: %w", err)
	}
	return nil
}
