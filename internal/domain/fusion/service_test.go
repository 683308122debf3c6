package fusion

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/conflict"
	"github.com/recordbridge/recordbridge/internal/domain/dictionary"
	"github.com/recordbridge/recordbridge/internal/domain/record"
	"github.com/recordbridge/recordbridge/internal/domain/source"
	"github.com/recordbridge/recordbridge/internal/domain/terminology"
)

func newTestService(records ...*source.RawSourceRecord) *Service {
	return NewService(
		source.NewMemoryRepo(records...),
		dictionary.NewStore(),
		conflict.NewService(zerolog.Nop()),
		terminology.NewService(terminology.NewMemoryRepo()),
		zerolog.Nop(),
	)
}

func allSources() []record.SourceSystem {
	return []record.SourceSystem{record.SourceEHRA, record.SourceSIMRSB, record.SourceClinicC}
}

func TestFuse_BloodPressureUnification(t *testing.T) {
	ts := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestService(
		&source.RawSourceRecord{
			Source:    record.SourceEHRA,
			RecordID:  "A-1",
			UpdatedAt: ts,
			Payload:   map[string]interface{}{"BP": "120/80"},
		},
		&source.RawSourceRecord{
			Source:    record.SourceSIMRSB,
			RecordID:  "B-1",
			UpdatedAt: ts,
			Payload: map[string]interface{}{
				"Tensi": map[string]interface{}{"sistolik": 118, "diastolik": 82, "unit": "mmHg"},
			},
		},
	)

	rec, err := svc.Fuse(context.Background(), allSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(rec.Observations))
	}

	byID := map[string]record.Observation{}
	for _, o := range rec.Observations {
		byID[o.ID] = o
	}
	flat, ok := byID["A-1-bp"]
	if !ok || flat.Value != "120/80" || flat.Unit != "mmHg" || flat.Confidence != 0.95 {
		t.Errorf("flat BP observation wrong: %+v", flat)
	}
	structured, ok := byID["B-1-tensi"]
	if !ok || structured.Value != "118/82" || structured.Unit != "mmHg" || structured.Confidence != 0.92 {
		t.Errorf("structured BP observation wrong: %+v", structured)
	}

	mapIDs := map[string]bool{}
	for _, m := range rec.Mappings {
		mapIDs[m.ID] = true
		if m.CanonicalField == "observations.bloodPressure" && m.Unit != "mmHg" {
			t.Errorf("BP mapping missing unit: %+v", m)
		}
	}
	if !mapIDs["A-1-map-bp"] || !mapIDs["B-1-map-tensi"] {
		t.Errorf("expected BP mapping decisions, got %v", mapIDs)
	}
}

func TestFuse_SeedScenario(t *testing.T) {
	svc := newTestService()
	rec, err := svc.Fuse(context.Background(), allSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.Patient.Demographics.FullName; got != "Budi Santoso" {
		t.Errorf("demographics must come from the first source, got %q", got)
	}
	if got := rec.Patient.Identifiers; len(got) != 3 ||
		got[0] != "MRN-49281" || got[1] != "SIMRS-49281" || got[2] != "EXT-49281" {
		t.Errorf("unexpected identifiers %v", got)
	}

	if len(rec.Conditions) != 6 {
		t.Errorf("expected 6 conditions, got %d", len(rec.Conditions))
	}
	names := map[string]bool{}
	for _, cond := range rec.Conditions {
		names[cond.CanonicalName] = true
	}
	for _, want := range []string{"Hypertension", "Hypertension Stage 1", "Hyperlipidemia"} {
		if !names[want] {
			t.Errorf("missing canonical condition %q", want)
		}
	}

	for _, a := range rec.Allergies {
		if a.Substance != "No Known Allergies" || a.Reaction != "N/A" {
			t.Errorf("unexpected allergy %+v", a)
		}
	}

	if len(rec.Conflicts) != 0 {
		t.Errorf("seed data is consistent, got conflicts %+v", rec.Conflicts)
	}

	if len(rec.TimelineEvents) != 12 {
		t.Errorf("expected 12 timeline events, got %d", len(rec.TimelineEvents))
	}
	for i := 1; i < len(rec.TimelineEvents); i++ {
		if rec.TimelineEvents[i].OccurredAt.Before(rec.TimelineEvents[i-1].OccurredAt) {
			t.Fatal("timeline not sorted ascending")
		}
	}

	if len(rec.AuditLog) != 1 {
		t.Fatalf("expected a single audit entry, got %d", len(rec.AuditLog))
	}
	entry := rec.AuditLog[0]
	if entry.Action != record.AuditTranslationRun {
		t.Errorf("unexpected audit action %s", entry.Action)
	}
	if entry.Message != "Translation run with 3 selected source(s)." {
		t.Errorf("unexpected audit message %q", entry.Message)
	}
}

func TestFuse_ProvenanceAndConfidence(t *testing.T) {
	svc := newTestService()
	rec, err := svc.Fuse(context.Background(), allSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := func(kind, id string, conf float64, prov record.Provenance) {
		t.Helper()
		if conf < 0 || conf > 1 {
			t.Errorf("%s %s confidence out of bounds: %v", kind, id, conf)
		}
		if prov.Source == "" || prov.SourceRecordID == "" || prov.Timestamp.IsZero() {
			t.Errorf("%s %s has incomplete provenance: %+v", kind, id, prov)
		}
	}
	for _, o := range rec.Observations {
		check("observation", o.ID, o.Confidence, o.Provenance)
	}
	for _, c := range rec.Conditions {
		check("condition", c.ID, c.Confidence, c.Provenance)
	}
	for _, m := range rec.Medications {
		check("medication", m.ID, m.Confidence, m.Provenance)
	}
	for _, a := range rec.Allergies {
		check("allergy", a.ID, a.Confidence, a.Provenance)
	}
	for _, e := range rec.TimelineEvents {
		check("event", e.ID, e.Confidence, e.Provenance)
	}
	for _, m := range rec.Mappings {
		check("mapping", m.ID, m.Confidence, m.Provenance)
	}
}

func TestFuse_ConflictScenario(t *testing.T) {
	ts := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestService(
		&source.RawSourceRecord{
			Source:    record.SourceEHRA,
			RecordID:  "A-1",
			UpdatedAt: ts,
			Payload: map[string]interface{}{
				"allergies": []interface{}{"Penicillin"},
				"meds": []interface{}{
					map[string]interface{}{"generic": "Amlodipine", "dose": "5 mg", "route": "PO", "freq": "OD"},
				},
			},
		},
		&source.RawSourceRecord{
			Source:    record.SourceSIMRSB,
			RecordID:  "B-1",
			UpdatedAt: ts,
			Payload: map[string]interface{}{
				"alergi": []interface{}{"tidak ada alergi"},
				"obat_aktif": []interface{}{
					map[string]interface{}{"nama_obat": "Norvasc", "dosis": "10 mg", "frekuensi": "1x sehari", "rute": "oral"},
				},
			},
		},
	)

	rec, err := svc.Fuse(context.Background(), allSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := map[string]bool{}
	for _, c := range rec.Conflicts {
		ids[c.ID] = true
		if c.Resolved {
			t.Errorf("fresh conflict must start unresolved: %+v", c)
		}
	}
	if !ids["conf-allergy-1"] {
		t.Error("expected allergy contradiction conflict")
	}
	if !ids["conf-med-amlodipine"] {
		t.Error("expected amlodipine dose conflict")
	}
}

func TestFuse_DoseNormalizationApplied(t *testing.T) {
	ts := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&source.RawSourceRecord{
		Source:    record.SourceEHRA,
		RecordID:  "A-1",
		UpdatedAt: ts,
		Payload: map[string]interface{}{
			"meds": []interface{}{
				map[string]interface{}{"generic": "Metformin", "dose": "0.5 g", "route": "PO", "freq": "BID"},
			},
		},
	})

	rec, err := svc.Fuse(context.Background(), []record.SourceSystem{record.SourceEHRA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Medications) != 1 || rec.Medications[0].Dose != "500 mg" {
		t.Errorf("expected normalized dose, got %+v", rec.Medications)
	}
}

func TestFuse_TerminologyAnnotation(t *testing.T) {
	svc := newTestService()
	rec, err := svc.Fuse(context.Background(), []record.SourceSystem{record.SourceEHRA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var hypertension *record.Condition
	for i := range rec.Conditions {
		if rec.Conditions[i].CanonicalName == "Hypertension" {
			hypertension = &rec.Conditions[i]
		}
	}
	if hypertension == nil {
		t.Fatal("expected a hypertension condition")
	}
	if hypertension.Coding == nil || hypertension.Coding.Code != "I10" {
		t.Errorf("expected ICD-10 annotation, got %+v", hypertension.Coding)
	}

	var amlodipine *record.Medication
	for i := range rec.Medications {
		if rec.Medications[i].CanonicalName == "Amlodipine" {
			amlodipine = &rec.Medications[i]
		}
	}
	if amlodipine == nil {
		t.Fatal("expected amlodipine")
	}
	if amlodipine.Coding == nil || amlodipine.Coding.Code != "17767" {
		t.Errorf("expected RxNorm annotation, got %+v", amlodipine.Coding)
	}
}

func TestFuse_WithoutTerminology(t *testing.T) {
	svc := NewService(
		source.NewMemoryRepo(),
		dictionary.NewStore(),
		conflict.NewService(zerolog.Nop()),
		nil,
		zerolog.Nop(),
	)
	rec, err := svc.Fuse(context.Background(), allSources())
	if err != nil {
		t.Fatalf("fusion must work without a terminology collaborator: %v", err)
	}
	if len(rec.Conditions) == 0 {
		t.Fatal("expected conditions")
	}
	for _, c := range rec.Conditions {
		if c.Coding != nil {
			t.Errorf("no collaborator, no annotation: %+v", c)
		}
	}
}

func TestFuse_SubsetSelection(t *testing.T) {
	svc := newTestService()
	rec, err := svc.Fuse(context.Background(), []record.SourceSystem{record.SourceSIMRSB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Patient.Demographics.FullName != "Budi Santoso" || rec.Patient.Demographics.DOB != "15-05-1993" {
		t.Errorf("demographics must come from SIMRS_B verbatim, got %+v", rec.Patient.Demographics)
	}
	if len(rec.Patient.Identifiers) != 1 || rec.Patient.Identifiers[0] != "SIMRS-49281" {
		t.Errorf("unexpected identifiers %v", rec.Patient.Identifiers)
	}
	for _, o := range rec.Observations {
		if o.Provenance.Source != record.SourceSIMRSB {
			t.Errorf("unselected source leaked into the record: %+v", o)
		}
	}
}

func TestNormalizeDose(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0.5 g", "500 mg"},
		{"5 mg", "5 mg"},
		{"20  mg", "20 mg"},
		{" 10 mg ", "10 mg"},
		{"20mg", "20 mg"},
		{"500MG", "500 mg"},
		{"0.5g", "500 mg"},
		{"100mcg", "100 mcg"},
	}
	for _, tc := range cases {
		if got := NormalizeDose(tc.in); got != tc.want {
			t.Errorf("NormalizeDose(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
