package record

import (
	"testing"
	"time"
)

func sampleRecord() *CanonicalRecord {
	prov := Provenance{Source: SourceEHRA, SourceRecordID: "A-1001", Timestamp: time.Now().UTC()}
	return &CanonicalRecord{
		Allergies: []Allergy{
			{ID: "A-1001-alg-0", Substance: "Penicillin", Reaction: "Reported", Confidence: 0.94, Provenance: prov},
		},
		Conflicts: []Conflict{
			{ID: "conf-allergy-1", Category: ConflictAllergy, Field: "allergies", Resolved: false},
		},
		AuditLog: []AuditEntry{
			{ID: "audit-run", Action: AuditTranslationRun, Message: "run", Timestamp: time.Now().UTC()},
		},
	}
}

func TestFindConflict(t *testing.T) {
	r := sampleRecord()
	if c := r.FindConflict("conf-allergy-1"); c == nil {
		t.Fatal("expected conflict to be found")
	}
	if c := r.FindConflict("nonexistent"); c != nil {
		t.Errorf("expected nil for unknown id, got %v", c)
	}
}

func TestUnresolvedConflicts(t *testing.T) {
	r := sampleRecord()
	if n := len(r.UnresolvedConflicts()); n != 1 {
		t.Fatalf("expected 1 unresolved conflict, got %d", n)
	}
	conflicts := r.CloneConflicts()
	conflicts[0].Resolved = true
	r2 := r.WithConflicts(conflicts)
	if n := len(r2.UnresolvedConflicts()); n != 0 {
		t.Errorf("expected 0 unresolved conflicts, got %d", n)
	}
	if r.Conflicts[0].Resolved {
		t.Error("original record mutated by WithConflicts")
	}
}

func TestWithAuditPrepended(t *testing.T) {
	r := sampleRecord()
	entry := AuditEntry{ID: "audit-resolve-1", Action: AuditConflictResolved, Message: "resolved", Timestamp: time.Now().UTC()}
	r2 := r.WithAuditPrepended(entry)

	if r2 == r {
		t.Fatal("expected a new record instance")
	}
	if r2.AuditLog[0].ID != "audit-resolve-1" {
		t.Errorf("expected new entry at index 0, got %q", r2.AuditLog[0].ID)
	}
	if len(r.AuditLog) != 1 || r.AuditLog[0].ID != "audit-run" {
		t.Error("original audit log modified")
	}
}

func TestWithAllergiesDoesNotMutateInput(t *testing.T) {
	r := sampleRecord()
	r2 := r.WithAllergies(nil)
	if len(r.Allergies) != 1 {
		t.Error("original allergy list modified")
	}
	if len(r2.Allergies) != 0 {
		t.Error("expected replaced allergy list")
	}
	if len(r2.AuditLog) != len(r.AuditLog) {
		t.Error("untouched collections should be shared")
	}
}
