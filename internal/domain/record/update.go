package record

// Copy-on-write update helpers. Because records are treated as immutable and
// their slices are never mutated in place, a shallow struct copy that swaps
// only the touched sub-collections preserves the "new object per resolution"
// contract without deep-cloning the whole aggregate.

// WithConflicts returns a new record with the conflict list replaced.
func (r *CanonicalRecord) WithConflicts(conflicts []Conflict) *CanonicalRecord {
	out := *r
	out.Conflicts = conflicts
	return &out
}

// WithAllergies returns a new record with the allergy list replaced.
func (r *CanonicalRecord) WithAllergies(allergies []Allergy) *CanonicalRecord {
	out := *r
	out.Allergies = allergies
	return &out
}

// WithMedications returns a new record with the medication list replaced.
func (r *CanonicalRecord) WithMedications(medications []Medication) *CanonicalRecord {
	out := *r
	out.Medications = medications
	return &out
}

// WithAuditPrepended returns a new record whose audit log has entry at
// index 0. Used for conflict_resolved and export_run entries, which are
// newest-first by contract.
func (r *CanonicalRecord) WithAuditPrepended(entry AuditEntry) *CanonicalRecord {
	out := *r
	log := make([]AuditEntry, 0, len(r.AuditLog)+1)
	log = append(log, entry)
	log = append(log, r.AuditLog...)
	out.AuditLog = log
	return &out
}

// CloneConflicts returns a copy of the conflict list safe to modify.
func (r *CanonicalRecord) CloneConflicts() []Conflict {
	out := make([]Conflict, len(r.Conflicts))
	copy(out, r.Conflicts)
	return out
}
