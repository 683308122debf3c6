package record

import "time"

// SourceSystem identifies an upstream system a raw record originated from.
type SourceSystem string

// Known demo source systems. The engine accepts any SourceSystem value;
// these are the ones shipped with the sandbox seed data.
const (
	SourceEHRA    SourceSystem = "EHR_A"
	SourceSIMRSB  SourceSystem = "SIMRS_B"
	SourceClinicC SourceSystem = "CLINIC_C"
)

// Provenance records which source, which source-local record, and at what
// time a derived fact originated. It is always copied from the originating
// raw record, never synthesized.
type Provenance struct {
	Source         SourceSystem `json:"source"`
	SourceRecordID string       `json:"source_record_id"`
	Timestamp      time.Time    `json:"timestamp"`
}

// Code is an external terminology annotation (ICD-10, LOINC, SNOMED CT,
// RxNorm). Entities carry it only when the terminology collaborator had a hit.
type Code struct {
	Code    string `json:"code"`
	System  string `json:"system"`
	Display string `json:"display"`
}

// MappingDecision documents one raw value that was normalized into the
// canonical record: which raw field it came from, where it landed, and with
// what confidence.
type MappingDecision struct {
	ID              string     `json:"id"`
	RawField        string     `json:"raw_field"`
	CanonicalField  string     `json:"canonical_field"`
	NormalizedValue string     `json:"normalized_value"`
	Unit            string     `json:"unit,omitempty"`
	Confidence      float64    `json:"confidence"`
	Provenance      Provenance `json:"provenance"`
}

// ObservationType enumerates the vital-sign observations the extractor emits.
type ObservationType string

const (
	ObservationBloodPressure ObservationType = "bloodPressure"
	ObservationHeartRate     ObservationType = "heartRate"
	ObservationTemperature   ObservationType = "temperature"
)

// Observation is a canonical vital-sign fact.
type Observation struct {
	ID         string          `json:"id"`
	Type       ObservationType `json:"type"`
	Value      string          `json:"value"`
	Unit       string          `json:"unit"`
	Confidence float64         `json:"confidence"`
	Provenance Provenance      `json:"provenance"`
}

// Condition is a canonical diagnosis. Code holds the dictionary-declared
// short code where the dictionary carried one; Coding holds an optional
// terminology annotation.
type Condition struct {
	ID            string     `json:"id"`
	CanonicalName string     `json:"canonical_name"`
	SourceText    string     `json:"source_text"`
	Code          string     `json:"code,omitempty"`
	Coding        *Code      `json:"coding,omitempty"`
	Confidence    float64    `json:"confidence"`
	Provenance    Provenance `json:"provenance"`
}

// Medication is a canonical active medication.
type Medication struct {
	ID            string     `json:"id"`
	CanonicalName string     `json:"canonical_name"`
	Dose          string     `json:"dose"`
	Route         string     `json:"route"`
	Frequency     string     `json:"frequency"`
	Coding        *Code      `json:"coding,omitempty"`
	Confidence    float64    `json:"confidence"`
	Provenance    Provenance `json:"provenance"`
}

// Allergy is a canonical allergy assertion. Fusion keeps one entry per
// independent source assertion; identical substances from different sources
// stay distinct so conflict detection sees every assertion.
type Allergy struct {
	ID         string     `json:"id"`
	Substance  string     `json:"substance"`
	Reaction   string     `json:"reaction"`
	Coding     *Code      `json:"coding,omitempty"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"provenance"`
}

// EventType enumerates timeline event categories.
type EventType string

const (
	EventEncounter EventType = "Encounter"
	EventLab       EventType = "Lab"
	EventMeds      EventType = "Meds"
	EventDiagnosis EventType = "Diagnosis"
	EventVitals    EventType = "Vitals"
)

// TimelineEvent is one entry on the merged patient timeline.
type TimelineEvent struct {
	ID         string     `json:"id"`
	Type       EventType  `json:"type"`
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	OccurredAt time.Time  `json:"occurred_at"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"provenance"`
	Conflict   bool       `json:"conflict,omitempty"`
}

// ConflictCategory enumerates the fact families conflict rules cover.
type ConflictCategory string

const (
	ConflictAllergy    ConflictCategory = "Allergy"
	ConflictMedication ConflictCategory = "Medication"
	ConflictDiagnosis  ConflictCategory = "Diagnosis"
)

// Strategy is an operator resolution strategy.
type Strategy string

const (
	StrategyChooseOne Strategy = "choose_one"
	StrategyKeepBoth  Strategy = "keep_both"
)

// ConflictValue is one source assertion participating in a conflict.
type ConflictValue struct {
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"provenance"`
}

// Resolution records how an operator settled a conflict. Attached exactly
// once; a resolved conflict is terminal.
type Resolution struct {
	Strategy   Strategy  `json:"strategy"`
	Value      string    `json:"value"`
	Note       string    `json:"note,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Conflict is a detected cross-source contradiction about one canonical fact.
type Conflict struct {
	ID         string           `json:"id"`
	Category   ConflictCategory `json:"category"`
	Field      string           `json:"field"`
	Values     []ConflictValue  `json:"values"`
	Resolved   bool             `json:"resolved"`
	Resolution *Resolution      `json:"resolution,omitempty"`
}

// AuditAction enumerates audit trail actions.
type AuditAction string

const (
	AuditTranslationRun   AuditAction = "translation_run"
	AuditConflictResolved AuditAction = "conflict_resolved"
	AuditExportRun        AuditAction = "export_run"
)

// AuditEntry is one append-only audit trail entry. translation_run entries
// are appended at record creation; conflict_resolved and export_run entries
// are prepended so consumers see the most recent operator action first.
type AuditEntry struct {
	ID        string      `json:"id"`
	Action    AuditAction `json:"action"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// Demographics holds the reference-source patient demographics.
type Demographics struct {
	FullName string `json:"full_name"`
	DOB      string `json:"dob"`
	Sex      string `json:"sex"`
	Language string `json:"language"`
}

// Patient aggregates identifiers and demographics for the fused record.
type Patient struct {
	Identifiers  []string     `json:"identifiers"`
	Demographics Demographics `json:"demographics"`
}

// CanonicalRecord is the fused patient aggregate. Instances are immutable
// value objects: every mutating operation returns a new record and the
// contained slices are never modified in place.
type CanonicalRecord struct {
	Patient        Patient           `json:"patient"`
	Observations   []Observation     `json:"observations"`
	Conditions     []Condition       `json:"conditions"`
	Medications    []Medication      `json:"medications"`
	Allergies      []Allergy         `json:"allergies"`
	TimelineEvents []TimelineEvent   `json:"timeline_events"`
	Mappings       []MappingDecision `json:"mappings"`
	Conflicts      []Conflict        `json:"conflicts"`
	AuditLog       []AuditEntry      `json:"audit_log"`
}

// FindConflict returns the conflict with the given id, or nil.
func (r *CanonicalRecord) FindConflict(id string) *Conflict {
	for i := range r.Conflicts {
		if r.Conflicts[i].ID == id {
			return &r.Conflicts[i]
		}
	}
	return nil
}

// UnresolvedConflicts returns the conflicts still awaiting resolution.
func (r *CanonicalRecord) UnresolvedConflicts() []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if !c.Resolved {
			out = append(out, c)
		}
	}
	return out
}
