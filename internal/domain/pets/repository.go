package pets

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// Repository es el store relacional de una sola tabla. where nil significa
// "todas las filas". Los valores de Insert/Update llegan ya validados.
type Repository interface {
	Query(ctx context.Context, columns []string, where sq.Sqlizer, orderBy []string) (*sql.Rows, error)
	Insert(ctx context.Context, values Values) (int64, error)
	Update(ctx context.Context, values Values, where sq.Sqlizer) (int64, error)
	Delete(ctx context.Context, where sq.Sqlizer) (int64, error)
}
