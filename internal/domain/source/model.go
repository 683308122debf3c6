package source

import (
	"time"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// RawSourceRecord is an unmodified record as received from an upstream
// system. The payload shape is source-specific and opaque until extraction.
// Raw records are input only and never mutated.
type RawSourceRecord struct {
	Source    record.SourceSystem    `json:"source"`
	RecordID  string                 `json:"record_id"`
	UpdatedAt time.Time              `json:"updated_at"`
	Payload   map[string]interface{} `json:"payload"`
}

// Provenance builds the provenance stamp for facts derived from this record.
// Derived entities always copy this; provenance is never synthesized.
func (r *RawSourceRecord) Provenance() record.Provenance {
	return record.Provenance{
		Source:         r.Source,
		SourceRecordID: r.RecordID,
		Timestamp:      r.UpdatedAt,
	}
}
