package terminology

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a repository backed by the reference_concepts table.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const conceptColumns = `key, code, display, system_uri, COALESCE(version,'')`

func (r *repoPG) Resolve(ctx context.Context, system System, text string) (*Concept, error) {
	var c Concept
	err := r.pool.QueryRow(ctx,
		`SELECT `+conceptColumns+` FROM reference_concepts
		 WHERE system = $1 AND key = lower(trim($2))`, string(system), text).
		Scan(&c.Key, &c.Code, &c.Display, &c.SystemURI, &c.Version)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("terminology resolve: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT `+conceptColumns+` FROM reference_concepts
		 WHERE system = $1 AND position(key IN lower(trim($2))) > 0
		 ORDER BY position LIMIT 1`, string(system), text).
		Scan(&c.Key, &c.Code, &c.Display, &c.SystemURI, &c.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("terminology resolve: %w", err)
	}
	return &c, nil
}

func (r *repoPG) Search(ctx context.Context, system System, query string, limit int) ([]*Concept, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT `+conceptColumns+` FROM reference_concepts
		 WHERE system = $1 AND (key ILIKE $2 OR code ILIKE $2 OR display ILIKE $2)
		 ORDER BY position LIMIT $3`, string(system), pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("terminology search: %w", err)
	}
	defer rows.Close()
	var results []*Concept
	for rows.Next() {
		var c Concept
		if err := rows.Scan(&c.Key, &c.Code, &c.Display, &c.SystemURI, &c.Version); err != nil {
			return nil, err
		}
		results = append(results, &c)
	}
	return results, rows.Err()
}

func (r *repoPG) GetByCode(ctx context.Context, system System, code string) (*Concept, error) {
	var c Concept
	err := r.pool.QueryRow(ctx,
		`SELECT `+conceptColumns+` FROM reference_concepts
		 WHERE system = $1 AND code = $2
		 ORDER BY position LIMIT 1`, string(system), code).
		Scan(&c.Key, &c.Code, &c.Display, &c.SystemURI, &c.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("terminology get: %w", err)
	}
	return &c, nil
}
