package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Postgres-backed raw source record repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) List(ctx context.Context) ([]*RawSourceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT source, record_id, updated_at, payload
		 FROM raw_source_records
		 ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}
	defer rows.Close()

	var out []*RawSourceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repoPG) GetBySystem(ctx context.Context, system record.SourceSystem) (*RawSourceRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT source, record_id, updated_at, payload
		 FROM raw_source_records
		 WHERE source = $1`, string(system))
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get source record: %w", err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*RawSourceRecord, error) {
	var rec RawSourceRecord
	var payload []byte
	if err := row.Scan(&rec.Source, &rec.RecordID, &rec.UpdatedAt, &payload); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &rec.Payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
	}
	return &rec, nil
}
