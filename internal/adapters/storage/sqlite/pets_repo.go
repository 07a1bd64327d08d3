package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"pet-catalog/internal/domain/pets"

	sq "github.com/Masterminds/squirrel"
)

var _ pets.Repository = (*Store)(nil)

func (s *Store) Query(ctx context.Context, columns []string, where sq.Sqlizer, orderBy []string) (*sql.Rows, error) {
	q := s.sb.Select(columns...).From(pets.Table)
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
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying pets: %w", err)
	}
	return rows, nil
}

// Insert devuelve el rowid asignado.
func (s *Store) Insert(ctx context.Context, values pets.Values) (int64, error) {
	sqlStr, args, err := s.sb.Insert(pets.Table).SetMap(values).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting pet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading row id: %w", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, values pets.Values, where sq.Sqlizer) (int64, error) {
	q := s.sb.Update(pets.Table).SetMap(values)
	if where != nil {
		q = q.Where(where)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building update: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("updating pets: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, where sq.Sqlizer) (int64, error) {
	q := s.sb.Delete(pets.Table)
	if where != nil {
		q = q.Where(where)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting pets: %w", err)
	}
	return res.RowsAffected()
}
