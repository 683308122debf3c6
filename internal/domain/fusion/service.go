package fusion

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/conflict"
	"github.com/recordbridge/recordbridge/internal/domain/dictionary"
	"github.com/recordbridge/recordbridge/internal/domain/record"
	"github.com/recordbridge/recordbridge/internal/domain/source"
	"github.com/recordbridge/recordbridge/internal/domain/terminology"
)

const (
	confEncounter = 0.91
	confLab       = 0.90
)

// Service fuses raw source records into a canonical patient record. Each run
// extracts, normalizes, and merges the selected sources, then hands the
// result to conflict detection.
type Service struct {
	sources   source.Repository
	dict      *dictionary.Store
	conflicts *conflict.Service
	term      *terminology.Service
	now       func() time.Time
	log       zerolog.Logger
}

// NewService creates a fusion service. term may be nil; fusion is correct
// with every terminology lookup missing.
func NewService(sources source.Repository, dict *dictionary.Store, conflicts *conflict.Service, term *terminology.Service, logger zerolog.Logger) *Service {
	return &Service{
		sources:   sources,
		dict:      dict,
		conflicts: conflicts,
		term:      term,
		now:       time.Now,
		log:       logger,
	}
}

// Fuse builds a canonical record from the selected source systems, processed
// in repository order. The first selected source is the demographics
// reference; when nothing matches the selection the first known source is.
func (s *Service) Fuse(ctx context.Context, selected []record.SourceSystem) (*record.CanonicalRecord, error) {
	all, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fusion: load sources: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("fusion: no source records available")
	}

	wanted := make(map[record.SourceSystem]bool, len(selected))
	for _, sys := range selected {
		wanted[sys] = true
	}
	var picked []*source.RawSourceRecord
	for _, src := range all {
		if wanted[src.Source] {
			picked = append(picked, src)
		}
	}
	reference := all[0]
	if len(picked) > 0 {
		reference = picked[0]
	}

	rec := &record.CanonicalRecord{}

	for _, src := range picked {
		s.fuseSource(ctx, rec, src)
	}

	rec.Patient = s.buildPatient(reference, picked)

	sort.SliceStable(rec.TimelineEvents, func(i, j int) bool {
		return rec.TimelineEvents[i].OccurredAt.Before(rec.TimelineEvents[j].OccurredAt)
	})

	rec.Conflicts = s.conflicts.Detect(rec)

	rec.AuditLog = append(rec.AuditLog, record.AuditEntry{
		ID:        "audit-run",
		Action:    record.AuditTranslationRun,
		Message:   fmt.Sprintf("Translation run with %d selected source(s).", len(selected)),
		Timestamp: s.now().UTC(),
	})

	s.log.Info().
		Int("sources", len(picked)).
		Int("conditions", len(rec.Conditions)).
		Int("conflicts", len(rec.Conflicts)).
		Msg("translation run complete")

	return rec, nil
}

// fuseSource merges one raw record's extraction into the canonical record.
func (s *Service) fuseSource(ctx context.Context, rec *record.CanonicalRecord, src *source.RawSourceRecord) {
	ex := source.Extract(src.Payload)
	prov := src.Provenance()

	if bp := ex.BloodPressure; bp != nil {
		suffix := "bp"
		if strings.HasPrefix(bp.RawField, "Tensi") {
			suffix = "tensi"
		}
		rec.Observations = append(rec.Observations, record.Observation{
			ID:         src.RecordID + "-" + suffix,
			Type:       record.ObservationBloodPressure,
			Value:      bp.Value,
			Unit:       bp.Unit,
			Confidence: bp.Confidence,
			Provenance: prov,
		})
		rec.Mappings = append(rec.Mappings, record.MappingDecision{
			ID:              src.RecordID + "-map-" + suffix,
			RawField:        bp.RawField,
			CanonicalField:  "observations.bloodPressure",
			NormalizedValue: bp.Value,
			Unit:            bp.Unit,
			Confidence:      bp.Confidence,
			Provenance:      prov,
		})
	}

	for i, dx := range ex.Diagnoses {
		norm := s.dict.Normalize(dictionary.DomainDiagnosis, dx)
		rec.Conditions = append(rec.Conditions, record.Condition{
			ID:            fmt.Sprintf("%s-dx-%d", src.RecordID, i),
			CanonicalName: norm.Canonical,
			SourceText:    dx,
			Code:          norm.Code,
			Coding:        s.annotate(ctx, terminology.SystemICD10, norm.Canonical),
			Confidence:    norm.Confidence,
			Provenance:    prov,
		})
		rec.Mappings = append(rec.Mappings, record.MappingDecision{
			ID:              fmt.Sprintf("%s-map-dx-%d", src.RecordID, i),
			RawField:        "diagnosis",
			CanonicalField:  "conditions",
			NormalizedValue: norm.Canonical,
			Confidence:      norm.Confidence,
			Provenance:      prov,
		})
	}

	for i, med := range ex.Medications {
		norm := s.dict.Normalize(dictionary.DomainMedication, med.Name)
		rec.Medications = append(rec.Medications, record.Medication{
			ID:            fmt.Sprintf("%s-med-%d", src.RecordID, i),
			CanonicalName: norm.Canonical,
			Dose:          NormalizeDose(med.Dose),
			Route:         med.Route,
			Frequency:     med.Frequency,
			Coding:        s.annotate(ctx, terminology.SystemRxNorm, norm.Canonical),
			Confidence:    norm.Confidence,
			Provenance:    prov,
		})
		rec.Mappings = append(rec.Mappings, record.MappingDecision{
			ID:              fmt.Sprintf("%s-map-med-%d", src.RecordID, i),
			RawField:        "medication",
			CanonicalField:  "medications",
			NormalizedValue: norm.Canonical,
			Confidence:      norm.Confidence,
			Provenance:      prov,
		})
	}

	for i, raw := range ex.Allergies {
		norm := s.dict.Normalize(dictionary.DomainAllergy, raw)
		reaction := "Reported"
		if norm.Canonical == "No Known Allergies" {
			reaction = "N/A"
		}
		rec.Allergies = append(rec.Allergies, record.Allergy{
			ID:         fmt.Sprintf("%s-alg-%d", src.RecordID, i),
			Substance:  norm.Canonical,
			Reaction:   reaction,
			Coding:     s.annotate(ctx, terminology.SystemSNOMED, norm.Canonical),
			Confidence: norm.Confidence,
			Provenance: prov,
		})
		rec.Mappings = append(rec.Mappings, record.MappingDecision{
			ID:              fmt.Sprintf("%s-map-alg-%d", src.RecordID, i),
			RawField:        "allergy",
			CanonicalField:  "allergies",
			NormalizedValue: norm.Canonical,
			Confidence:      norm.Confidence,
			Provenance:      prov,
		})
	}

	for i, enc := range ex.Encounters {
		rec.TimelineEvents = append(rec.TimelineEvents, record.TimelineEvent{
			ID:         fmt.Sprintf("%s-enc-%d", src.RecordID, i),
			Type:       record.EventEncounter,
			Title:      enc.Title,
			Value:      enc.Value,
			OccurredAt: enc.OccurredAt,
			Confidence: confEncounter,
			Provenance: prov,
		})
	}

	for i, lab := range ex.Labs {
		rec.TimelineEvents = append(rec.TimelineEvents, record.TimelineEvent{
			ID:         fmt.Sprintf("%s-lab-%d", src.RecordID, i),
			Type:       record.EventLab,
			Title:      lab.Name,
			Value:      lab.Value + " " + lab.Unit,
			OccurredAt: lab.OccurredAt,
			Confidence: confLab,
			Provenance: prov,
		})
	}
}

// buildPatient takes demographics verbatim from the reference source and
// collects one identifier per selected source. Demographic disagreement is
// surfaced as a warning, not reconciled.
func (s *Service) buildPatient(reference *source.RawSourceRecord, picked []*source.RawSourceRecord) record.Patient {
	demo := source.ExtractDemographics(reference.Payload)

	var identifiers []string
	for _, src := range picked {
		identifiers = append(identifiers, source.ExtractIdentifier(src.Payload, src.RecordID))
	}
	if len(identifiers) == 0 {
		identifiers = []string{source.ExtractIdentifier(reference.Payload, reference.RecordID)}
	}

	for _, src := range picked {
		if src == reference {
			continue
		}
		other := source.ExtractDemographics(src.Payload)
		if other.FullName != demo.FullName || other.DOB != demo.DOB {
			s.log.Warn().
				Str("reference", string(reference.Source)).
				Str("source", string(src.Source)).
				Str("reference_name", demo.FullName).
				Str("source_name", other.FullName).
				Msg("demographics disagree across sources")
		}
	}

	return record.Patient{Identifiers: identifiers, Demographics: demo}
}

// annotate asks the terminology collaborator for a code. Lookup misses and
// collaborator failures both degrade to no annotation.
func (s *Service) annotate(ctx context.Context, system terminology.System, text string) *record.Code {
	if s.term == nil {
		return nil
	}
	code, err := s.term.Code(ctx, system, text)
	if err != nil {
		s.log.Debug().Err(err).Str("system", string(system)).Str("text", text).Msg("terminology lookup failed")
		return nil
	}
	return code
}
