package terminology

import (
	"context"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo())
}

func TestCode_ExactMatch(t *testing.T) {
	svc := newTestService()
	code, err := svc.ToICD10(context.Background(), "Hipertensi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code == nil {
		t.Fatal("expected a code")
	}
	if code.Code != "I10" {
		t.Errorf("expected I10, got %s", code.Code)
	}
	if code.System != "http://hl7.org/fhir/sid/icd-10-cm" {
		t.Errorf("unexpected system %s", code.System)
	}
	if code.Display != "Essential (primary) hypertension" {
		t.Errorf("unexpected display %s", code.Display)
	}
}

func TestCode_SubstringMatch(t *testing.T) {
	svc := newTestService()
	code, err := svc.ToICD10(context.Background(), "chronic kidney disease stage 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code == nil || code.Code != "N18.9" {
		t.Fatalf("expected N18.9, got %+v", code)
	}
}

func TestCode_ExactBeatsSubstring(t *testing.T) {
	// "type 2 diabetes" matches the SNOMED entry for itself even though
	// "diabetes mellitus" appears earlier in the vocabulary.
	svc := newTestService()
	code, err := svc.ToSNOMED(context.Background(), "type 2 diabetes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code == nil || code.Code != "44054006" {
		t.Fatalf("expected 44054006, got %+v", code)
	}
}

func TestCode_UnknownTermIsNil(t *testing.T) {
	svc := newTestService()
	code, err := svc.ToICD10(context.Background(), "completely unknown condition")
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if code != nil {
		t.Errorf("expected nil, got %+v", code)
	}
}

func TestCode_BrandNameResolvesToGeneric(t *testing.T) {
	svc := newTestService()
	code, err := svc.ToRxNorm(context.Background(), "Glucophage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code == nil || code.Code != "6809" || code.Display != "Metformin" {
		t.Fatalf("expected metformin concept, got %+v", code)
	}
}

func TestCode_UnsupportedSystem(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Code(context.Background(), System("cpt"), "office visit"); err == nil {
		t.Fatal("expected error for unsupported system")
	}
}

func TestSearch_MatchesDisplay(t *testing.T) {
	svc := newTestService()
	results, err := svc.Search(context.Background(), SystemLOINC, "cholesterol", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) < 3 {
		t.Fatalf("expected at least 3 cholesterol concepts, got %d", len(results))
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Search(context.Background(), SystemLOINC, "", 10); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	svc := newTestService()
	results, err := svc.Search(context.Background(), SystemICD10, "i", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(results))
	}
}

func TestLookup_Success(t *testing.T) {
	svc := newTestService()
	c, err := svc.Lookup(context.Background(), SystemSNOMED, "716186003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Display != "No known allergy" {
		t.Errorf("unexpected display %s", c.Display)
	}
}

func TestLookup_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Lookup(context.Background(), SystemRxNorm, "999999"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
