package source

import (
	"context"
	"errors"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// ErrNotFound is returned when no raw record exists for a source system.
var ErrNotFound = errors.New("source record not found")

// Repository provides access to raw source records.
type Repository interface {
	List(ctx context.Context) ([]*RawSourceRecord, error)
	GetBySystem(ctx context.Context, system record.SourceSystem) (*RawSourceRecord, error)
}
