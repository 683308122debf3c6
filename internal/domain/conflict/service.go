package conflict

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// ErrConflictNotFound is returned by Resolve for an unknown conflict id.
var ErrConflictNotFound = errors.New("conflict: not found")

// Outcome is the result of a resolution. DataChanged reports whether the
// clinical content moved, as opposed to the resolution being recorded only
// (keep_both and Diagnosis resolutions).
type Outcome struct {
	Record      *record.CanonicalRecord `json:"record"`
	DataChanged bool                    `json:"data_changed"`
}

// Service runs conflict detection and operator resolution.
type Service struct {
	rules []Rule
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a conflict service over the given rules, defaulting to
// the built-in rule set.
func NewService(logger zerolog.Logger, rules ...Rule) *Service {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Service{rules: rules, now: time.Now, log: logger}
}

// Detect evaluates every rule against the record and returns the conflict
// list for it. A conflict already resolved in the input is terminal: it is
// carried over untouched and never re-created, even when its rule still
// fires.
func (s *Service) Detect(rec *record.CanonicalRecord) []record.Conflict {
	resolved := make(map[string]record.Conflict)
	for _, c := range rec.Conflicts {
		if c.Resolved {
			resolved[c.ID] = c
		}
	}

	var out []record.Conflict
	seen := make(map[string]bool)
	for _, rule := range s.rules {
		for _, c := range rule.Evaluate(rec) {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			if prior, ok := resolved[c.ID]; ok {
				out = append(out, prior)
				continue
			}
			out = append(out, c)
		}
	}
	for _, c := range rec.Conflicts {
		if c.Resolved && !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

// Resolve applies an operator decision to one conflict and returns a new
// record; the input record is never modified. Unknown ids yield
// ErrConflictNotFound.
func (s *Service) Resolve(rec *record.CanonicalRecord, conflictID string, strategy record.Strategy, value, note string) (Outcome, error) {
	switch strategy {
	case record.StrategyChooseOne, record.StrategyKeepBoth:
	default:
		return Outcome{}, fmt.Errorf("conflict: unknown strategy %q", strategy)
	}

	idx := -1
	for i := range rec.Conflicts {
		if rec.Conflicts[i].ID == conflictID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrConflictNotFound, conflictID)
	}

	conflicts := rec.CloneConflicts()
	target := &conflicts[idx]
	target.Resolved = true
	target.Resolution = &record.Resolution{
		Strategy:   strategy,
		Value:      value,
		Note:       note,
		ResolvedAt: s.now().UTC(),
	}

	updated := rec.WithConflicts(conflicts)
	dataChanged := false

	if strategy == record.StrategyChooseOne {
		switch target.Category {
		case record.ConflictAllergy:
			var kept []record.Allergy
			for _, a := range updated.Allergies {
				if a.Substance == value {
					kept = append(kept, a)
				}
			}
			updated = updated.WithAllergies(kept)
			dataChanged = true
		case record.ConflictMedication:
			name := strings.TrimSuffix(target.Field, " dose")
			meds := make([]record.Medication, len(updated.Medications))
			for i, m := range updated.Medications {
				if m.CanonicalName == name {
					m.Dose = value
					m.Confidence = 0.9
				}
				meds[i] = m
			}
			updated = updated.WithMedications(meds)
			dataChanged = true
		}
	}

	updated = updated.WithAuditPrepended(record.AuditEntry{
		ID:        "audit-resolve-" + target.ID,
		Action:    record.AuditConflictResolved,
		Message:   fmt.Sprintf("Resolved %s conflict (%s) with strategy %s.", target.Category, target.Field, strategy),
		Timestamp: s.now().UTC(),
	})

	s.log.Info().
		Str("conflict_id", conflictID).
		Str("category", string(target.Category)).
		Str("strategy", string(strategy)).
		Bool("data_changed", dataChanged).
		Msg("conflict resolved")

	return Outcome{Record: updated, DataChanged: dataChanged}, nil
}

// ResolveLenient is the legacy resolution path: an unknown conflict id is a
// silent no-op returning the input record unchanged.
func (s *Service) ResolveLenient(rec *record.CanonicalRecord, conflictID string, strategy record.Strategy, value, note string) Outcome {
	out, err := s.Resolve(rec, conflictID, strategy, value, note)
	if errors.Is(err, ErrConflictNotFound) {
		s.log.Debug().Str("conflict_id", conflictID).Msg("lenient resolve: unknown conflict, record unchanged")
		return Outcome{Record: rec, DataChanged: false}
	}
	if err != nil {
		return Outcome{Record: rec, DataChanged: false}
	}
	return out
}
