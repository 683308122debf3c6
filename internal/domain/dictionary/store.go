package dictionary

import (
	"sort"
	"strings"
	"sync"
)

// Domain selects which clinical-value dictionary a lookup runs against.
type Domain string

const (
	DomainDiagnosis  Domain = "diagnosis"
	DomainMedication Domain = "medication"
	DomainAllergy    Domain = "allergy"
)

// Entry is one canonical mapping in a clinical-value dictionary.
type Entry struct {
	Canonical  string
	Confidence float64
	Code       string
}

// Store owns the per-domain clinical-value dictionaries and the canonical
// field alias lists shared between the normalizer and the recommendation
// engine. Clinical-value dictionaries are read-only after construction; alias
// lists are mutated by the learning store, so all access is mutex-guarded.
// The store is passed by pointer into every consumer; there is no package
// level instance.
type Store struct {
	mu      sync.RWMutex
	domains map[Domain]*domainDict
	aliases map[string][]string
}

// domainDict keeps insertion order so substring matching is deterministic.
type domainDict struct {
	keys    []string
	entries map[string]Entry
}

func (d *domainDict) add(key string, e Entry) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = e
}

// Fallback confidences per domain for vocabulary the dictionaries do not
// cover. The raw text passes through unchanged at these baselines.
var fallbackConfidence = map[Domain]float64{
	DomainDiagnosis:  0.6,
	DomainMedication: 0.66,
	DomainAllergy:    0.65,
}

// Normalization is the result of a dictionary lookup. Matched reports whether
// a dictionary key was hit; on a miss Canonical echoes the raw text.
type Normalization struct {
	Canonical  string
	Confidence float64
	Code       string
	Matched    bool
}

// NewStore returns a store seeded with the built-in dictionaries and field
// alias lists.
func NewStore() *Store {
	s := &Store{
		domains: make(map[Domain]*domainDict),
		aliases: make(map[string][]string),
	}
	for domain, seed := range seedDictionaries {
		d := &domainDict{entries: make(map[string]Entry)}
		for _, kv := range seed {
			d.add(kv.key, kv.entry)
		}
		s.domains[domain] = d
	}
	for target, list := range seedFieldAliases {
		s.aliases[target] = append([]string(nil), list...)
	}
	return s
}

// Normalize maps raw source vocabulary to a canonical value. Precedence:
// exact case-insensitive key, then substring containment in dictionary
// insertion order, then fallback to the raw text at the domain baseline.
// Unknown vocabulary is never an error.
func (s *Store) Normalize(domain Domain, raw string) Normalization {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.domains[domain]; ok {
		if e, ok := d.entries[lowered]; ok {
			return Normalization{Canonical: e.Canonical, Confidence: e.Confidence, Code: e.Code, Matched: true}
		}
		for _, key := range d.keys {
			if strings.Contains(lowered, key) {
				e := d.entries[key]
				return Normalization{Canonical: e.Canonical, Confidence: e.Confidence, Code: e.Code, Matched: true}
			}
		}
	}

	conf, ok := fallbackConfidence[domain]
	if !ok {
		conf = 0.6
	}
	return Normalization{Canonical: raw, Confidence: conf}
}

// Aliases returns the known raw spellings for a canonical field name.
func (s *Store) Aliases(target string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.aliases[target]...)
}

// HasAlias reports whether alias is a known spelling of target.
func (s *Store) HasAlias(target, alias string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.aliases[target] {
		if a == alias {
			return true
		}
	}
	return false
}

// AddAlias records a new raw spelling for a canonical field name. Writes are
// serialized; duplicate aliases are ignored.
func (s *Store) AddAlias(target, alias string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.aliases[target] {
		if a == alias {
			return
		}
	}
	s.aliases[target] = append(s.aliases[target], alias)
}

// FieldTargets returns the canonical field names with alias lists, sorted for
// deterministic iteration.
func (s *Store) FieldTargets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.aliases))
	for t := range s.aliases {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
