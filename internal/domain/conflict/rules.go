package conflict

import (
	"sort"
	"strings"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

const noKnownAllergies = "No Known Allergies"

// Rule inspects a fused record and reports zero or more contradictions about
// one fact family. Rules are pure functions of the record contents, so
// detection is deterministic and insensitive to registration order.
type Rule interface {
	// Category names the fact family this rule covers.
	Category() record.ConflictCategory

	// Evaluate returns the conflicts present in the record, ids stable across
	// runs over the same record.
	Evaluate(rec *record.CanonicalRecord) []record.Conflict
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		AllergyContradictionRule{},
		MedicationDoseRule{},
		CorrelatedConditionRule{},
	}
}

// AllergyContradictionRule fires when a specific allergy substance and a
// "No Known Allergies" assertion coexist.
type AllergyContradictionRule struct{}

func (AllergyContradictionRule) Category() record.ConflictCategory { return record.ConflictAllergy }

func (AllergyContradictionRule) Evaluate(rec *record.CanonicalRecord) []record.Conflict {
	var hasSpecific, hasNone bool
	for _, a := range rec.Allergies {
		if a.Substance == noKnownAllergies {
			hasNone = true
		} else {
			hasSpecific = true
		}
	}
	if !hasSpecific || !hasNone {
		return nil
	}
	values := make([]record.ConflictValue, 0, len(rec.Allergies))
	for _, a := range rec.Allergies {
		values = append(values, record.ConflictValue{
			Value:      a.Substance,
			Confidence: a.Confidence,
			Provenance: a.Provenance,
		})
	}
	return []record.Conflict{{
		ID:       "conf-allergy-1",
		Category: record.ConflictAllergy,
		Field:    "allergies",
		Values:   values,
	}}
}

// MedicationDoseRule fires once per canonical medication whose sources
// disagree on the dose.
type MedicationDoseRule struct{}

// medicationConflictID derives the conflict id from the canonical medication
// name, so an id keeps pointing at the same medication even when other dose
// conflicts in the record appear or resolve.
func medicationConflictID(name string) string {
	return "conf-med-" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func (MedicationDoseRule) Category() record.ConflictCategory { return record.ConflictMedication }

func (MedicationDoseRule) Evaluate(rec *record.CanonicalRecord) []record.Conflict {
	doses := make(map[string]map[string]struct{})
	for _, m := range rec.Medications {
		if doses[m.CanonicalName] == nil {
			doses[m.CanonicalName] = make(map[string]struct{})
		}
		doses[m.CanonicalName][m.Dose] = struct{}{}
	}

	var names []string
	for name, seen := range doses {
		if len(seen) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var conflicts []record.Conflict
	for _, name := range names {
		var values []record.ConflictValue
		for _, m := range rec.Medications {
			if m.CanonicalName != name {
				continue
			}
			values = append(values, record.ConflictValue{
				Value:      m.Dose,
				Confidence: m.Confidence,
				Provenance: m.Provenance,
			})
		}
		conflicts = append(conflicts, record.Conflict{
			ID:       medicationConflictID(name),
			Category: record.ConflictMedication,
			Field:    name + " dose",
			Values:   values,
		})
	}
	return conflicts
}

// CorrelatedConditionRule flags a problem-list discrepancy: chronic kidney
// disease asserted without the hypertension that clinically accompanies it
// in the connected populations.
type CorrelatedConditionRule struct{}

func (CorrelatedConditionRule) Category() record.ConflictCategory { return record.ConflictDiagnosis }

func (CorrelatedConditionRule) Evaluate(rec *record.CanonicalRecord) []record.Conflict {
	var hasCKD, hasHTN bool
	for _, c := range rec.Conditions {
		switch c.CanonicalName {
		case "Chronic Kidney Disease":
			hasCKD = true
		case "Hypertension":
			hasHTN = true
		}
	}
	if !hasCKD || hasHTN {
		return nil
	}
	values := make([]record.ConflictValue, 0, len(rec.Conditions))
	for _, c := range rec.Conditions {
		values = append(values, record.ConflictValue{
			Value:      c.CanonicalName,
			Confidence: c.Confidence,
			Provenance: c.Provenance,
		})
	}
	return []record.Conflict{{
		ID:       "conf-dx-1",
		Category: record.ConflictDiagnosis,
		Field:    "problem list discrepancy",
		Values:   values,
	}}
}
