package mapping

import (
	"context"
	"sync"
)

type memoryLearningRepo struct {
	mu      sync.Mutex
	entries []LearningEntry
}

// NewMemoryLearningRepo returns an in-memory learning repository.
func NewMemoryLearningRepo() LearningRepository {
	return &memoryLearningRepo{}
}

func (r *memoryLearningRepo) Load(_ context.Context) ([]LearningEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LearningEntry(nil), r.entries...), nil
}

func (r *memoryLearningRepo) Save(_ context.Context, entries []LearningEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append([]LearningEntry(nil), entries...)
	return nil
}
