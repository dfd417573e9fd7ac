package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// table holds the shared read and delete plumbing for one entity type. Entity
// specific queries stay on each repository.
type table[T any] struct {
	db      *database.DB
	name    string
	from    string
	columns string
}

func newTable[T any](db *database.DB, name, columns string) table[T] {
	return table[T]{db: db, name: name, from: name, columns: columns}
}

// join returns a copy of t that selects from a joined FROM clause.
func (t table[T]) join(from, columns string) table[T] {
	t.from = from
	t.columns = columns
	return t
}

func (t table[T]) selectSQL() string {
	return "SELECT " + t.columns + " FROM " + t.from
}

// findOne returns pgx.ErrNoRows when nothing matches.
func (t table[T]) findOne(ctx context.Context, where string, args ...interface{}) (*T, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, t.selectSQL()+" WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

func (t table[T]) findMany(ctx context.Context, suffix string, args ...interface{}) ([]T, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, t.selectSQL()+" "+suffix, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// returning runs a write statement whose RETURNING clause matches T.
func (t table[T]) returning(ctx context.Context, query string, args ...interface{}) (*T, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

func (t table[T]) count(ctx context.Context, where string, args ...interface{}) (int64, error) {
	q := GetQuerier(ctx, t.db)

	query := "SELECT COUNT(*) FROM " + t.from
	if where != "" {
		query += " WHERE " + where
	}

	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// page returns one page of rows plus the unpaginated total for the same WHERE
// clause. Outside a transaction both queries run concurrently on the pool.
func (t table[T]) page(ctx context.Context, where, orderBy string, args []interface{}, limit, offset int) ([]T, int64, error) {
	suffix := ""
	if where != "" {
		suffix = "WHERE " + where
	}
	pageArgs := append(append([]interface{}{}, args...), limit, offset)
	pageSuffix := fmt.Sprintf("%s ORDER BY %s LIMIT $%d OFFSET $%d", suffix, orderBy, len(args)+1, len(args)+2)

	var (
		items []T
		total int64
	)

	if inTransaction(ctx) {
		var err error
		if total, err = t.count(ctx, where, args...); err != nil {
			return nil, 0, fmt.Errorf("failed to count %s: %w", t.name, err)
		}
		if items, err = t.findMany(ctx, pageSuffix, pageArgs...); err != nil {
			return nil, 0, fmt.Errorf("failed to list %s: %w", t.name, err)
		}
		return items, total, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := t.count(gctx, where, args...)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", t.name, err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := t.findMany(gctx, pageSuffix, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", t.name, err)
		}
		items = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// deleteWhere returns the number of removed rows.
func (t table[T]) deleteWhere(ctx context.Context, where string, args ...interface{}) (int64, error) {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, "DELETE FROM "+t.name+" WHERE "+where, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t table[T]) exists(ctx context.Context, where string, args ...interface{}) (bool, error) {
	q := GetQuerier(ctx, t.db)

	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+t.from+" WHERE "+where+")", args...).Scan(&exists)
	return exists, err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
