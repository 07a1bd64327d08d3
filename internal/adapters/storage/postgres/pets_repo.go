package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pet-catalog/internal/domain/pets"

	sq "github.com/Masterminds/squirrel"
)

type PetsRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ pets.Repository = (*PetsRepo)(nil)

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PetsRepo) Close() error {
	return r.db.Close()
}

func (r *PetsRepo) Query(ctx context.Context, columns []string, where sq.Sqlizer, orderBy []string) (*sql.Rows, error) {
	q := r.sb.Select(columns...).From(pets.Table)
	if where != nil {
		q = q.Where(where)
	}
	if len(orderBy) > 0 {
		q = q.OrderBy(orderBy...)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pets: %w", err)
	}
	return rows, nil
}

// Insert usa RETURNING porque pgx no implementa LastInsertId.
func (r *PetsRepo) Insert(ctx context.Context, values pets.Values) (int64, error) {
	sqlStr, args, err := r.sb.Insert(pets.Table).
		SetMap(values).
		Suffix("RETURNING " + pets.ColID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting pet: %w", err)
	}
	return id, nil
}

func (r *PetsRepo) Update(ctx context.Context, values pets.Values, where sq.Sqlizer) (int64, error) {
	q := r.sb.Update(pets.Table).SetMap(values)
	if where != nil {
		q = q.Where(where)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("updating pets: %w", err)
	}
	return res.RowsAffected()
}

func (r *PetsRepo) Delete(ctx context.Context, where sq.Sqlizer) (int64, error) {
	q := r.sb.Delete(pets.Table)
	if where != nil {
		q = q.Where(where)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting pets: %w", err)
	}
	return res.RowsAffected()
}
