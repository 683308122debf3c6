package terminology

import (
	"context"
	"strings"
)

type memoryRepo struct {
	concepts map[System][]*Concept
}

// NewMemoryRepo returns an in-memory repository over the bundled reference
// vocabulary. All lookups are read-only so no locking is needed.
func NewMemoryRepo() Repository {
	concepts := make(map[System][]*Concept, len(seedConcepts))
	for system, entries := range seedConcepts {
		list := make([]*Concept, 0, len(entries))
		for _, e := range entries {
			list = append(list, &Concept{
				Key:       e.key,
				Code:      e.code,
				Display:   e.display,
				SystemURI: system.URI(),
				Version:   system.Version(),
			})
		}
		concepts[system] = list
	}
	return &memoryRepo{concepts: concepts}
}

func (r *memoryRepo) Resolve(_ context.Context, system System, text string) (*Concept, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil, nil
	}
	list := r.concepts[system]
	for _, c := range list {
		if c.Key == normalized {
			return c, nil
		}
	}
	for _, c := range list {
		if strings.Contains(normalized, c.Key) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) Search(_ context.Context, system System, query string, limit int) ([]*Concept, error) {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(query)
	var results []*Concept
	for _, c := range r.concepts[system] {
		if strings.Contains(c.Key, q) ||
			strings.Contains(strings.ToLower(c.Code), q) ||
			strings.Contains(strings.ToLower(c.Display), q) {
			results = append(results, c)
			if len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

func (r *memoryRepo) GetByCode(_ context.Context, system System, code string) (*Concept, error) {
	for _, c := range r.concepts[system] {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, ErrNotFound
}
