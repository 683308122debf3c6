package source

import (
	"context"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

type memoryRepo struct {
	records []*RawSourceRecord
}

// NewMemoryRepo returns an in-memory repository over the given records,
// preserving their order. With no arguments it serves the sandbox seed data.
func NewMemoryRepo(records ...*RawSourceRecord) Repository {
	if len(records) == 0 {
		records = SeedRecords()
	}
	return &memoryRepo{records: records}
}

func (r *memoryRepo) List(_ context.Context) ([]*RawSourceRecord, error) {
	out := make([]*RawSourceRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memoryRepo) GetBySystem(_ context.Context, system record.SourceSystem) (*RawSourceRecord, error) {
	for _, rec := range r.records {
		if rec.Source == system {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}
