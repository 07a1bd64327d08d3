// Package storage elige el backend del catálogo según la configuración.
package storage

import (
	"context"
	"fmt"
	"strings"

	pg "pet-catalog/internal/adapters/storage/postgres"
	"pet-catalog/internal/adapters/storage/sqlite"
	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/platform/config"
	"pet-catalog/internal/platform/logger"
)

// Store es un pets.Repository con dueño explícito: quien lo abre lo cierra.
type Store interface {
	pets.Repository
	Close() error
}

// Open usa Postgres si hay DB_DSN; si no, el archivo SQLite local.
func Open(ctx context.Context, cfg config.Config, log logger.Logger) (Store, error) {
	if dsn := strings.TrimSpace(cfg.DBDSN); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("using postgres store", nil)
		return pg.NewPetsRepo(db), nil
	}

	st, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Info("using sqlite store", map[string]any{"path": cfg.DBPath})
	return st, nil
}
