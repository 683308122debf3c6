package terminology

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetByCode when a code is absent from a system.
var ErrNotFound = errors.New("terminology: concept not found")

// Repository provides access to the reference concept tables.
type Repository interface {
	// Resolve maps a local term to a concept in the given system. Matching is
	// case-insensitive: an exact key match wins, otherwise the first seeded
	// key contained in the term. A term with no mapping yields (nil, nil).
	Resolve(ctx context.Context, system System, text string) (*Concept, error)

	// Search returns concepts whose key, code, or display contains the query.
	Search(ctx context.Context, system System, query string, limit int) ([]*Concept, error)

	// GetByCode returns the first concept carrying the given code.
	GetByCode(ctx context.Context, system System, code string) (*Concept, error)
}
