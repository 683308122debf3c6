package export

import (
	"time"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// ProblemListItem is one condition line in the referral packet.
type ProblemListItem struct {
	Condition  string  `json:"condition"`
	Confidence float64 `json:"confidence"`
}

// ActiveMedication is one medication line in the referral packet.
type ActiveMedication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
}

// Summary is the referral packet built from a canonical record. Every
// section traces back to the record's provenance-carrying entities.
type Summary struct {
	GeneratedAt         time.Time              `json:"generated_at"`
	Patient             record.Patient         `json:"patient"`
	ProblemList         []ProblemListItem      `json:"problem_list"`
	ActiveMeds          []ActiveMedication     `json:"active_meds"`
	Allergies           []string               `json:"allergies"`
	LastVitals          []record.Observation   `json:"last_vitals"`
	KeyLabs             []record.TimelineEvent `json:"key_labs"`
	UnresolvedConflicts []record.Conflict      `json:"unresolved_conflicts"`
	ProvenanceFooter    string                 `json:"provenance_footer"`
}

// BPTrend classifies the blood pressure trajectory across observations.
type BPTrend string

const (
	TrendImproving BPTrend = "improving"
	TrendWorsening BPTrend = "worsening"
	TrendStable    BPTrend = "stable"
	TrendUnknown   BPTrend = "unknown"
)

// InsightSeverity grades a clinical insight.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
)

// ClinicalInsight is one machine-generated observation about the record.
type ClinicalInsight struct {
	Type     string          `json:"type"`
	Message  string          `json:"message"`
	Severity InsightSeverity `json:"severity"`
	BasedOn  []string        `json:"based_on"`
}

// SummaryDemographics is the demographic header of a clinical summary.
type SummaryDemographics struct {
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	DisplayText string `json:"display_text"`
}

// ClinicalSummary is the at-a-glance clinical view of a fused record.
type ClinicalSummary struct {
	Demographics      SummaryDemographics `json:"demographics"`
	PrimaryConditions []string            `json:"primary_conditions"`
	BPTrend           BPTrend             `json:"bp_trend"`
	KeyInsights       []ClinicalInsight   `json:"key_insights"`
	RiskFlags         []string            `json:"risk_flags"`
	LastUpdated       time.Time           `json:"last_updated"`
}
