package terminology

import (
	"context"
	"fmt"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// Service provides reference-code resolution and search over the supported
// code systems.
type Service struct {
	repo Repository
}

// NewService creates a new terminology service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Code resolves a local term to a coded concept in the given system. A term
// with no mapping yields nil; a miss is never an error.
func (s *Service) Code(ctx context.Context, system System, text string) (*record.Code, error) {
	if !system.Valid() {
		return nil, fmt.Errorf("unsupported code system: %s", system)
	}
	c, err := s.repo.Resolve(ctx, system, text)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return &record.Code{Code: c.Code, System: c.SystemURI, Display: c.Display}, nil
}

// ToICD10 resolves a condition name to an ICD-10-CM code.
func (s *Service) ToICD10(ctx context.Context, conditionName string) (*record.Code, error) {
	return s.Code(ctx, SystemICD10, conditionName)
}

// ToLOINC resolves a lab test name to a LOINC code.
func (s *Service) ToLOINC(ctx context.Context, testName string) (*record.Code, error) {
	return s.Code(ctx, SystemLOINC, testName)
}

// ToSNOMED resolves a clinical concept to a SNOMED CT code.
func (s *Service) ToSNOMED(ctx context.Context, concept string) (*record.Code, error) {
	return s.Code(ctx, SystemSNOMED, concept)
}

// ToRxNorm resolves a medication name to an RxNorm code.
func (s *Service) ToRxNorm(ctx context.Context, medicationName string) (*record.Code, error) {
	return s.Code(ctx, SystemRxNorm, medicationName)
}

// Search searches a code system by query text.
func (s *Service) Search(ctx context.Context, system System, query string, limit int) ([]*Concept, error) {
	if !system.Valid() {
		return nil, fmt.Errorf("unsupported code system: %s", system)
	}
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Search(ctx, system, query, limit)
}

// Lookup returns the concept carrying the given code.
func (s *Service) Lookup(ctx context.Context, system System, code string) (*Concept, error) {
	if !system.Valid() {
		return nil, fmt.Errorf("unsupported code system: %s", system)
	}
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	return s.repo.GetByCode(ctx, system, code)
}
