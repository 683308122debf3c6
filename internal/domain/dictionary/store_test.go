package dictionary

import (
	"sync"
	"testing"
)

func TestNormalizeExactMatch(t *testing.T) {
	s := NewStore()
	n := s.Normalize(DomainDiagnosis, "I10")
	if !n.Matched {
		t.Fatal("expected dictionary hit")
	}
	if n.Canonical != "Hypertension" || n.Code != "I10" {
		t.Errorf("got %q code %q", n.Canonical, n.Code)
	}
	if n.Confidence != 0.95 {
		t.Errorf("expected dictionary confidence 0.95, got %v", n.Confidence)
	}
}

func TestNormalizeExactBeatsSubstring(t *testing.T) {
	s := NewStore()
	// "hipertensi stadium 1" is both an exact key and a superstring of
	// "hipertensi"; the exact key must win.
	n := s.Normalize(DomainDiagnosis, "Hipertensi Stadium 1")
	if n.Canonical != "Hypertension Stage 1" {
		t.Errorf("expected exact key to win, got %q", n.Canonical)
	}
}

func TestNormalizeSubstring(t *testing.T) {
	s := NewStore()
	n := s.Normalize(DomainAllergy, "patient reports no known allergy")
	if n.Canonical != "No Known Allergies" {
		t.Errorf("expected substring hit, got %q", n.Canonical)
	}
	if n.Confidence != 0.82 {
		t.Errorf("expected matched key confidence, got %v", n.Confidence)
	}
}

func TestNormalizeFallback(t *testing.T) {
	cases := []struct {
		domain Domain
		raw    string
		conf   float64
	}{
		{DomainDiagnosis, "Unlisted Syndrome", 0.6},
		{DomainMedication, "Obscuromab", 0.66},
		{DomainAllergy, "Latex", 0.65},
	}
	s := NewStore()
	for _, tc := range cases {
		n := s.Normalize(tc.domain, tc.raw)
		if n.Matched {
			t.Errorf("%s: expected fallback for %q", tc.domain, tc.raw)
		}
		if n.Canonical != tc.raw {
			t.Errorf("%s: fallback must echo raw text, got %q", tc.domain, n.Canonical)
		}
		if n.Confidence != tc.conf {
			t.Errorf("%s: expected baseline %v, got %v", tc.domain, tc.conf, n.Confidence)
		}
	}
}

func TestConfidenceBounds(t *testing.T) {
	s := NewStore()
	for domain, seed := range seedDictionaries {
		for _, kv := range seed {
			n := s.Normalize(domain, kv.key)
			if n.Confidence < 0 || n.Confidence > 1 {
				t.Errorf("%s/%s: confidence %v out of bounds", domain, kv.key, n.Confidence)
			}
		}
	}
}

func TestAddAlias(t *testing.T) {
	s := NewStore()
	if s.HasAlias("patient_name", "pt_nm") {
		t.Fatal("unexpected seed alias")
	}
	s.AddAlias("patient_name", "pt_nm")
	s.AddAlias("patient_name", "pt_nm") // duplicate ignored
	if !s.HasAlias("patient_name", "pt_nm") {
		t.Fatal("alias not recorded")
	}
	count := 0
	for _, a := range s.Aliases("patient_name") {
		if a == "pt_nm" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one copy of the alias, got %d", count)
	}
}

func TestConcurrentAliasWrites(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddAlias("gender", "sex_code")
				_ = s.Aliases("gender")
				_ = s.Normalize(DomainDiagnosis, "diabetes")
			}
		}()
	}
	wg.Wait()
	if !s.HasAlias("gender", "sex_code") {
		t.Error("alias lost under concurrent writes")
	}
}
