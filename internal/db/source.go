package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDataAccess wraps any failure to reach or query the catalog store.
// Callers report it and do not retry; the POS client re-polls from the
// same watermark.
var ErrDataAccess = errors.New("data access failure")

// Row is one flat record as the store returns it, keyed by column name.
// Join fan-out means several rows may describe the same logical entity.
type Row map[string]any

// RowSource issues a parameterized query and returns its flat rows in
// query order. The only ordering guarantee is the one the SQL asks for.
type RowSource interface {
	FetchRows(ctx context.Context, sql string, args ...any) ([]Row, error)
}

// PoolSource is the production RowSource backed by pgx.
type PoolSource struct {
	pool *pgxpool.Pool
}

func NewPoolSource(pool *pgxpool.Pool) *PoolSource {
	return &PoolSource{pool: pool}
}

func (s *PoolSource) FetchRows(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
		}
		rec := make(Row, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	return out, nil
}
