package mapping

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordbridge/recordbridge/internal/domain/dictionary"
)

const (
	defaultThreshold = 0.6
	batchThreshold   = 0.5

	// learningCap bounds the learning log FIFO.
	learningCap = 100
)

// Engine scores field-name similarity, recommends mappings, and learns from
// operator feedback. Similarity results are memoized per engine instance;
// the cache key includes only the field pair, so confidences reflect the
// history as of first computation, like-for-like across a session.
type Engine struct {
	dict *dictionary.Store
	repo LearningRepository
	now  func() time.Time
	log  zerolog.Logger

	mu      sync.Mutex
	history []LearningEntry
	cache   map[string]FieldSimilarity
}

// NewEngine creates an engine over the alias store and learning repository.
// A failing repository degrades to an empty history.
func NewEngine(ctx context.Context, dict *dictionary.Store, repo LearningRepository, logger zerolog.Logger) *Engine {
	e := &Engine{
		dict:  dict,
		repo:  repo,
		now:   time.Now,
		log:   logger,
		cache: make(map[string]FieldSimilarity),
	}
	if repo != nil {
		history, err := repo.Load(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("loading learning history failed, starting empty")
		} else {
			e.history = history
		}
	}
	return e
}

// CalculateSimilarity scores one field pair through the matching tiers:
// exact, known alias, semantic pattern, Jaro-Winkler above 0.7, shared
// words. The first tier that fires decides the score.
func (e *Engine) CalculateSimilarity(sourceField, targetField string) FieldSimilarity {
	key := sourceField + ":" + targetField

	e.mu.Lock()
	defer e.mu.Unlock()

	if cached, ok := e.cache[key]; ok {
		return cached
	}

	lowerSource := strings.ToLower(sourceField)
	lowerTarget := strings.ToLower(targetField)

	var similarity float64
	var reasoning string

	switch {
	case lowerSource == lowerTarget:
		similarity = 1.0
		reasoning = "Exact match"
	case e.dict.HasAlias(targetField, lowerSource):
		similarity = 0.9
		reasoning = "Known alias in dictionary"
	default:
		for _, p := range semanticPatterns {
			if p.canonical == targetField && p.pattern.MatchString(lowerSource) {
				similarity = p.weight
				reasoning = "Semantic pattern match"
				break
			}
		}
		if similarity == 0 {
			if jw := jaroWinkler(lowerSource, lowerTarget); jw > 0.7 {
				similarity = jw
				reasoning = "String similarity (Jaro-Winkler)"
			}
		}
		if similarity == 0 {
			if score, common := tokenOverlap(lowerSource, lowerTarget); score > 0 {
				similarity = score
				reasoning = "Shared words: " + strings.Join(common, ", ")
			}
		}
	}

	result := FieldSimilarity{
		SourceField: sourceField,
		TargetField: targetField,
		Similarity:  similarity,
		Confidence:  e.adjustConfidenceLocked(sourceField, targetField, similarity),
		Reasoning:   reasoning,
	}
	e.cache[key] = result
	return result
}

// adjustConfidenceLocked rescales a similarity by the success rate of the
// exact pair in the learning log. Callers hold e.mu.
func (e *Engine) adjustConfidenceLocked(sourceField, targetField string, similarity float64) float64 {
	relevant, successful := 0, 0
	for _, h := range e.history {
		for _, m := range h.Mappings {
			if m.SourceField == sourceField && m.CanonicalField == targetField {
				relevant++
				if h.Success {
					successful++
				}
				break
			}
		}
	}
	if relevant == 0 {
		return similarity
	}
	successRate := float64(successful) / float64(relevant)
	return similarity * (0.7 + 0.3*successRate)
}

// GenerateRecommendations suggests the best canonical field for every source
// field. Candidates below threshold are dropped; a zero threshold keeps
// every candidate and a negative one means the 0.6 default. Results are
// ordered by confidence descending.
func (e *Engine) GenerateRecommendations(sourceFields, targetFields []string, threshold float64) []MappingRecommendation {
	if threshold < 0 {
		threshold = defaultThreshold
	}

	var recommendations []MappingRecommendation
	for _, sourceField := range sourceFields {
		var similarities []FieldSimilarity
		for _, targetField := range targetFields {
			sim := e.CalculateSimilarity(sourceField, targetField)
			if sim.Similarity >= threshold {
				similarities = append(similarities, sim)
			}
		}
		if len(similarities) == 0 {
			continue
		}
		sort.SliceStable(similarities, func(i, j int) bool {
			return similarities[i].Similarity > similarities[j].Similarity
		})

		top := similarities[0]
		var alternatives []Alternative
		for _, s := range similarities[1:] {
			alternatives = append(alternatives, Alternative{Field: s.TargetField, Confidence: s.Confidence})
			if len(alternatives) == 3 {
				break
			}
		}
		recommendations = append(recommendations, MappingRecommendation{
			ID:               fmt.Sprintf("rec-%s-%d", sourceField, e.now().UnixMilli()),
			SourceField:      sourceField,
			SuggestedMapping: top.TargetField,
			Confidence:       top.Confidence,
			Alternatives:     alternatives,
			Reasoning:        top.Reasoning,
			AutoApprove:      top.Confidence > 0.95,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Confidence > recommendations[j].Confidence
	})
	return recommendations
}

// LearnFromMapping records one mapping session. The log is FIFO-capped;
// successful mappings above 0.9 confidence feed the alias dictionary so the
// pair scores as a known alias from then on.
func (e *Engine) LearnFromMapping(ctx context.Context, sourceSchema, targetSchema string, mappings []FieldMapping, success bool) error {
	entry := LearningEntry{
		SourceSchema: sourceSchema,
		TargetSchema: targetSchema,
		Mappings:     mappings,
		Success:      success,
		Timestamp:    e.now().UTC(),
	}

	e.mu.Lock()
	e.history = append(e.history, entry)
	if len(e.history) > learningCap {
		e.history = e.history[len(e.history)-learningCap:]
	}
	snapshot := append([]LearningEntry(nil), e.history...)
	e.mu.Unlock()

	if success {
		for _, m := range mappings {
			if m.Confidence > 0.9 {
				e.dict.AddAlias(m.CanonicalField, strings.ToLower(m.SourceField))
			}
		}
	}

	if e.repo != nil {
		if err := e.repo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("persist learning history: %w", err)
		}
	}

	e.log.Info().
		Str("source_schema", sourceSchema).
		Str("target_schema", targetSchema).
		Int("mappings", len(mappings)).
		Bool("success", success).
		Msg("mapping session learned")
	return nil
}

// GetLearningStats summarizes the learning log: total mappings, session
// success rate, the 10 most common pairs, and the 5 most recent sessions.
func (e *Engine) GetLearningStats() LearningStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := len(e.history)
	successful := 0
	totalMappings := 0
	counts := make(map[string]int)
	for _, h := range e.history {
		if h.Success {
			successful++
		}
		totalMappings += len(h.Mappings)
		for _, m := range h.Mappings {
			counts[m.SourceField+" → "+m.CanonicalField]++
		}
	}

	patterns := make([]PatternCount, 0, len(counts))
	for pattern, count := range counts {
		patterns = append(patterns, PatternCount{Pattern: pattern, Count: count})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		return patterns[i].Pattern < patterns[j].Pattern
	})
	if len(patterns) > 10 {
		patterns = patterns[:10]
	}

	recent := e.history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	stats := LearningStats{
		TotalMappings:  totalMappings,
		TopPatterns:    patterns,
		RecentActivity: append([]LearningEntry(nil), recent...),
	}
	if total > 0 {
		stats.SuccessRate = float64(successful) / float64(total)
	}
	return stats
}

// History returns a copy of the learning log, oldest first.
func (e *Engine) History() []LearningEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]LearningEntry(nil), e.history...)
}
