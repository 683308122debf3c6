package mapping

import (
	"math"
	"testing"
)

func TestJaroWinkler_Identity(t *testing.T) {
	if got := jaroWinkler("patient_name", "patient_name"); got != 1.0 {
		t.Errorf("identical strings must score 1.0, got %v", got)
	}
}

func TestJaroWinkler_Empty(t *testing.T) {
	if got := jaroWinkler("", "patient_name"); got != 0.0 {
		t.Errorf("empty string must score 0, got %v", got)
	}
	if got := jaroWinkler("patient_name", ""); got != 0.0 {
		t.Errorf("empty string must score 0, got %v", got)
	}
}

func TestJaroWinkler_NoCommonCharacters(t *testing.T) {
	if got := jaroWinkler("abc", "xyz"); got != 0.0 {
		t.Errorf("disjoint strings must score 0, got %v", got)
	}
}

func TestJaroWinkler_KnownValue(t *testing.T) {
	// Classic reference pair: jaro 0.9444, prefix 3, winkler 0.9611.
	got := jaroWinkler("martha", "marhta")
	if math.Abs(got-0.9611) > 0.001 {
		t.Errorf("expected ~0.9611, got %v", got)
	}
}

func TestJaroWinkler_Symmetry(t *testing.T) {
	a := jaroWinkler("tensi", "tension")
	b := jaroWinkler("tension", "tensi")
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("expected symmetric scores, got %v and %v", a, b)
	}
}

func TestTokenOverlap_FullOverlap(t *testing.T) {
	score, common := tokenOverlap("patient_name", "name_patient")
	if math.Abs(score-0.7) > 1e-9 {
		t.Errorf("full word overlap must score 0.7, got %v", score)
	}
	if len(common) != 2 {
		t.Errorf("expected 2 shared words, got %v", common)
	}
}

func TestTokenOverlap_PartialOverlap(t *testing.T) {
	score, common := tokenOverlap("patient_name", "patient_address_line")
	want := 1.0 / 3.0 * 0.7
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, score)
	}
	if len(common) != 1 || common[0] != "patient" {
		t.Errorf("expected [patient], got %v", common)
	}
}

func TestTokenOverlap_None(t *testing.T) {
	if score, _ := tokenOverlap("tgl_kunjungan", "heart_rate"); score != 0 {
		t.Errorf("expected 0, got %v", score)
	}
}
