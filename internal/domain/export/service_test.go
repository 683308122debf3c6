package export

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

func obs(id, value string, at time.Time) record.Observation {
	return record.Observation{
		ID:         id,
		Type:       record.ObservationBloodPressure,
		Value:      value,
		Unit:       "mmHg",
		Confidence: 0.95,
		Provenance: record.Provenance{Source: record.SourceEHRA, SourceRecordID: "A-1", Timestamp: at},
	}
}

func labEvent(id string, at time.Time) record.TimelineEvent {
	return record.TimelineEvent{
		ID:         id,
		Type:       record.EventLab,
		Title:      "LDL Cholesterol",
		Value:      "142 mg/dL",
		OccurredAt: at,
		Confidence: 0.9,
		Provenance: record.Provenance{Source: record.SourceEHRA, SourceRecordID: "A-1", Timestamp: at},
	}
}

func fixtureRecord() *record.CanonicalRecord {
	base := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	return &record.CanonicalRecord{
		Patient: record.Patient{
			Identifiers: []string{"MRN-49281"},
			Demographics: record.Demographics{
				FullName: "Budi Santoso",
				DOB:      "1993-05-15",
				Sex:      "Male",
				Language: "Bahasa Indonesia",
			},
		},
		Observations: []record.Observation{
			obs("bp-1", "140/90", base),
			obs("bp-2", "135/85", base.AddDate(0, 1, 0)),
			obs("bp-3", "128/82", base.AddDate(0, 2, 0)),
			obs("bp-4", "120/80", base.AddDate(0, 2, 15)),
		},
		Conditions: []record.Condition{
			{ID: "dx-1", CanonicalName: "Hypertension", Confidence: 0.95},
			{ID: "dx-2", CanonicalName: "Hyperlipidemia", Confidence: 0.92},
			{ID: "dx-3", CanonicalName: "Hypertension", Confidence: 0.87},
		},
		Medications: []record.Medication{
			{ID: "med-1", CanonicalName: "Amlodipine", Dose: "5 mg", Frequency: "OD", Confidence: 0.93},
		},
		Allergies: []record.Allergy{
			{ID: "alg-1", Substance: "No Known Allergies", Reaction: "N/A", Confidence: 0.82},
		},
		TimelineEvents: []record.TimelineEvent{
			labEvent("lab-1", base),
			labEvent("lab-2", base.AddDate(0, 1, 0)),
			labEvent("lab-3", base.AddDate(0, 2, 0)),
			labEvent("lab-4", base.AddDate(0, 2, 10)),
			{ID: "enc-1", Type: record.EventEncounter, Title: "Outpatient", OccurredAt: base},
		},
		Conflicts: []record.Conflict{
			{ID: "conf-allergy-1", Category: record.ConflictAllergy, Field: "allergies"},
			{ID: "conf-med-amlodipine", Category: record.ConflictMedication, Field: "Amlodipine dose", Resolved: true},
		},
		AuditLog: []record.AuditEntry{
			{ID: "audit-run", Action: record.AuditTranslationRun, Message: "Translation run with 3 selected source(s)."},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	sum := svc.BuildSummary(rec)

	if sum.Patient.Demographics.FullName != "Budi Santoso" {
		t.Errorf("unexpected patient %+v", sum.Patient)
	}
	if len(sum.ProblemList) != 3 || sum.ProblemList[0].Condition != "Hypertension" {
		t.Errorf("unexpected problem list %+v", sum.ProblemList)
	}
	if len(sum.ActiveMeds) != 1 || sum.ActiveMeds[0].Dose != "5 mg" {
		t.Errorf("unexpected meds %+v", sum.ActiveMeds)
	}
	if len(sum.Allergies) != 1 || sum.Allergies[0] != "No Known Allergies" {
		t.Errorf("unexpected allergies %v", sum.Allergies)
	}
	if len(sum.LastVitals) != 3 || sum.LastVitals[0].ID != "bp-2" {
		t.Errorf("expected the last 3 vitals, got %+v", sum.LastVitals)
	}
	if len(sum.KeyLabs) != 3 || sum.KeyLabs[2].ID != "lab-4" {
		t.Errorf("expected the last 3 lab events, got %+v", sum.KeyLabs)
	}
	if len(sum.UnresolvedConflicts) != 1 || sum.UnresolvedConflicts[0].ID != "conf-allergy-1" {
		t.Errorf("expected only the unresolved conflict, got %+v", sum.UnresolvedConflicts)
	}
	if sum.ProvenanceFooter != "This packet includes source-level provenance and mapping confidence for every section." {
		t.Errorf("unexpected footer %q", sum.ProvenanceFooter)
	}
	if sum.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestBuildSummary_DoesNotTouchRecord(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	_ = svc.BuildSummary(rec)
	if len(rec.AuditLog) != 1 {
		t.Error("building a summary must not audit the record")
	}
}

func TestRecordExport_PrependsAudit(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	updated := svc.RecordExport(rec)

	if len(rec.AuditLog) != 1 {
		t.Error("input record was mutated")
	}
	if len(updated.AuditLog) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(updated.AuditLog))
	}
	first := updated.AuditLog[0]
	if first.Action != record.AuditExportRun {
		t.Errorf("export entry must be newest-first, got %s", first.Action)
	}
	if first.Message != "Referral packet exported as JSON." {
		t.Errorf("unexpected message %q", first.Message)
	}
}

func TestBuildClinicalSummary_ImprovingBP(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	rec.Conflicts = nil
	sum := svc.BuildClinicalSummary(rec)

	if sum.BPTrend != TrendImproving {
		t.Errorf("expected improving trend, got %s", sum.BPTrend)
	}
	if len(sum.PrimaryConditions) != 2 {
		t.Errorf("conditions must be deduplicated: %v", sum.PrimaryConditions)
	}
	if len(sum.KeyInsights) == 0 || sum.KeyInsights[0].Type != "improvement" {
		t.Errorf("expected improvement insight, got %+v", sum.KeyInsights)
	}
	if sum.Demographics.Gender != "Male" || sum.Demographics.Age < 30 {
		t.Errorf("unexpected demographics %+v", sum.Demographics)
	}
}

func TestBuildClinicalSummary_WorseningBPFlagsRisk(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	rec.Conflicts = nil
	base := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	rec.Observations = []record.Observation{
		obs("bp-1", "120/80", base),
		obs("bp-2", "145/95", base.AddDate(0, 2, 0)),
	}
	sum := svc.BuildClinicalSummary(rec)

	if sum.BPTrend != TrendWorsening {
		t.Errorf("expected worsening trend, got %s", sum.BPTrend)
	}
	found := false
	for _, f := range sum.RiskFlags {
		if f == "Hypertension uncontrolled" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected risk flag, got %v", sum.RiskFlags)
	}
}

func TestBuildClinicalSummary_UnresolvedAllergyConflict(t *testing.T) {
	svc := NewService(zerolog.Nop())
	sum := svc.BuildClinicalSummary(fixtureRecord())

	critical := false
	for _, i := range sum.KeyInsights {
		if i.Severity == SeverityCritical {
			critical = true
		}
	}
	if !critical {
		t.Errorf("expected a critical insight for the allergy conflict, got %+v", sum.KeyInsights)
	}
}

func TestBuildClinicalSummary_StableFallback(t *testing.T) {
	svc := NewService(zerolog.Nop())
	rec := fixtureRecord()
	rec.Conflicts = nil
	rec.Conditions = []record.Condition{{ID: "dx-1", CanonicalName: "Hyperlipidemia", Confidence: 0.92}}
	sum := svc.BuildClinicalSummary(rec)

	if len(sum.KeyInsights) != 1 || sum.KeyInsights[0].Type != "stable" {
		t.Errorf("expected the stable fallback insight, got %+v", sum.KeyInsights)
	}
}

func TestAnalyzeBPTrend(t *testing.T) {
	base := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		obs  []record.Observation
		want BPTrend
	}{
		{"single reading", []record.Observation{obs("a", "120/80", base)}, TrendUnknown},
		{"unparseable", []record.Observation{obs("a", "high", base), obs("b", "low", base)}, TrendUnknown},
		{"stable", []record.Observation{obs("a", "120/80", base), obs("b", "122/82", base.AddDate(0, 1, 0))}, TrendStable},
		{"improving", []record.Observation{obs("a", "140/90", base), obs("b", "120/80", base.AddDate(0, 1, 0))}, TrendImproving},
		{"worsening", []record.Observation{obs("a", "120/80", base), obs("b", "140/90", base.AddDate(0, 1, 0))}, TrendWorsening},
	}
	for _, tc := range cases {
		if got := analyzeBPTrend(tc.obs); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}
