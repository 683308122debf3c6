package terminology

// System identifies one supported reference code system.
type System string

const (
	SystemICD10  System = "icd10"
	SystemLOINC  System = "loinc"
	SystemSNOMED System = "snomed"
	SystemRxNorm System = "rxnorm"
)

// Systems lists every supported code system.
func Systems() []System {
	return []System{SystemICD10, SystemLOINC, SystemSNOMED, SystemRxNorm}
}

// Valid reports whether s names a supported code system.
func (s System) Valid() bool {
	switch s {
	case SystemICD10, SystemLOINC, SystemSNOMED, SystemRxNorm:
		return true
	}
	return false
}

// URI returns the canonical system URI stamped on resolved codes.
func (s System) URI() string {
	switch s {
	case SystemICD10:
		return "http://hl7.org/fhir/sid/icd-10-cm"
	case SystemLOINC:
		return "http://loinc.org"
	case SystemSNOMED:
		return "http://snomed.info/sct"
	case SystemRxNorm:
		return "http://www.nlm.nih.gov/research/umls/rxnorm"
	}
	return ""
}

// Version returns the code-system version, empty for unversioned systems.
func (s System) Version() string {
	switch s {
	case SystemICD10:
		return "2023"
	case SystemSNOMED:
		return "http://snomed.info/sct/900000000000207008"
	}
	return ""
}

// Concept is one reference concept reachable from a local vocabulary term.
// Several keys may resolve to the same code, e.g. a brand name and its
// generic both map to one RxNorm concept.
type Concept struct {
	Key       string `db:"key" json:"key"`
	Code      string `db:"code" json:"code"`
	Display   string `db:"display" json:"display"`
	SystemURI string `db:"system_uri" json:"system"`
	Version   string `db:"version" json:"version,omitempty"`
}
