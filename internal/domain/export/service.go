package export

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

const provenanceFooter = "This packet includes source-level provenance and mapping confidence for every section."

// Service builds referral packets and clinical summaries from canonical
// records.
type Service struct {
	now func() time.Time
	log zerolog.Logger
}

// NewService creates an export service.
func NewService(logger zerolog.Logger) *Service {
	return &Service{now: time.Now, log: logger}
}

// BuildSummary assembles the referral packet for a record. The record is not
// modified; audit trailing is the caller's concern via RecordExport.
func (s *Service) BuildSummary(rec *record.CanonicalRecord) Summary {
	problems := make([]ProblemListItem, 0, len(rec.Conditions))
	for _, c := range rec.Conditions {
		problems = append(problems, ProblemListItem{Condition: c.CanonicalName, Confidence: c.Confidence})
	}

	meds := make([]ActiveMedication, 0, len(rec.Medications))
	for _, m := range rec.Medications {
		meds = append(meds, ActiveMedication{Name: m.CanonicalName, Dose: m.Dose, Frequency: m.Frequency})
	}

	allergies := make([]string, 0, len(rec.Allergies))
	for _, a := range rec.Allergies {
		allergies = append(allergies, a.Substance)
	}

	var labs []record.TimelineEvent
	for _, e := range rec.TimelineEvents {
		if e.Type == record.EventLab {
			labs = append(labs, e)
		}
	}

	vitals := rec.Observations
	if len(vitals) > 3 {
		vitals = vitals[len(vitals)-3:]
	}
	if len(labs) > 3 {
		labs = labs[len(labs)-3:]
	}

	return Summary{
		GeneratedAt:         s.now().UTC(),
		Patient:             rec.Patient,
		ProblemList:         problems,
		ActiveMeds:          meds,
		Allergies:           allergies,
		LastVitals:          vitals,
		KeyLabs:             labs,
		UnresolvedConflicts: rec.UnresolvedConflicts(),
		ProvenanceFooter:    provenanceFooter,
	}
}

// RecordExport returns a new record with the export noted on the audit
// trail, newest-first.
func (s *Service) RecordExport(rec *record.CanonicalRecord) *record.CanonicalRecord {
	now := s.now().UTC()
	updated := rec.WithAuditPrepended(record.AuditEntry{
		ID:        fmt.Sprintf("audit-export-%d", now.UnixMilli()),
		Action:    record.AuditExportRun,
		Message:   "Referral packet exported as JSON.",
		Timestamp: now,
	})
	s.log.Info().Int("unresolved_conflicts", len(rec.UnresolvedConflicts())).Msg("referral packet exported")
	return updated
}
