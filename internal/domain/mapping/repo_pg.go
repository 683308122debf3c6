package mapping

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type learningRepoPG struct{ pool *pgxpool.Pool }

// NewLearningRepoPG returns a learning repository backed by the
// learning_history table, one JSONB row per entry.
func NewLearningRepoPG(pool *pgxpool.Pool) LearningRepository {
	return &learningRepoPG{pool: pool}
}

func (r *learningRepoPG) Load(ctx context.Context) ([]LearningEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT entry FROM learning_history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load learning history: %w", err)
	}
	defer rows.Close()

	var entries []LearningEntry
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var entry LearningEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decode learning entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *learningRepoPG) Save(ctx context.Context, entries []LearningEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save learning history: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE learning_history`); err != nil {
		return fmt.Errorf("save learning history: %w", err)
	}
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode learning entry: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO learning_history (entry) VALUES ($1)`, raw); err != nil {
			return fmt.Errorf("save learning history: %w", err)
		}
	}
	return tx.Commit(ctx)
}
