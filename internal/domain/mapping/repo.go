package mapping

import "context"

// LearningRepository persists the learning log. Absence of history is not an
// error; Load on a fresh store returns an empty slice.
type LearningRepository interface {
	Load(ctx context.Context) ([]LearningEntry, error)
	Save(ctx context.Context, entries []LearningEntry) error
}
