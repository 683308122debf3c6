package mapping

import "time"

// FieldSimilarity is one scored (source field, target field) pair.
// Similarity is the raw score from the matching tier that fired; Confidence
// is the similarity rescaled by the historical success rate of this exact
// pair.
type FieldSimilarity struct {
	SourceField string  `json:"source_field"`
	TargetField string  `json:"target_field"`
	Similarity  float64 `json:"similarity"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

// FieldMapping is one accepted field correspondence, as fed back by an
// operator or produced by batch processing.
type FieldMapping struct {
	ID              string  `json:"id"`
	SourceField     string  `json:"source_field"`
	CanonicalField  string  `json:"canonical_field"`
	SourceValue     string  `json:"source_value,omitempty"`
	NormalizedValue string  `json:"normalized_value,omitempty"`
	Confidence      float64 `json:"confidence"`
	Transform       string  `json:"transform,omitempty"`
}

// Alternative is a runner-up candidate on a recommendation.
type Alternative struct {
	Field      string  `json:"field"`
	Confidence float64 `json:"confidence"`
}

// MappingRecommendation suggests the best canonical field for one source
// field, with up to three runners-up. AutoApprove marks candidates safe to
// apply without operator review.
type MappingRecommendation struct {
	ID               string        `json:"id"`
	SourceField      string        `json:"source_field"`
	SuggestedMapping string        `json:"suggested_mapping"`
	Confidence       float64       `json:"confidence"`
	Alternatives     []Alternative `json:"alternatives"`
	Reasoning        string        `json:"reasoning"`
	AutoApprove      bool          `json:"auto_approve"`
}

// LearningEntry is one recorded mapping session.
type LearningEntry struct {
	SourceSchema string         `json:"source_schema"`
	TargetSchema string         `json:"target_schema"`
	Mappings     []FieldMapping `json:"mappings"`
	Success      bool           `json:"success"`
	Timestamp    time.Time      `json:"timestamp"`
}

// PatternCount is one "source → target" pair with its occurrence count.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// LearningStats summarizes the learning log.
type LearningStats struct {
	TotalMappings  int             `json:"total_mappings"`
	SuccessRate    float64         `json:"success_rate"`
	TopPatterns    []PatternCount  `json:"top_patterns"`
	RecentActivity []LearningEntry `json:"recent_activity"`
}

// BatchResult is one source record with the mappings applied to it and the
// mean confidence across them.
type BatchResult struct {
	Record     map[string]interface{} `json:"record"`
	Mappings   []FieldMapping         `json:"mappings"`
	Confidence float64                `json:"confidence"`
}
