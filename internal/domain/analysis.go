package domain

import "time"

// Detector rule identifiers. Merged issues keep this relative order.
const (
	RuleClickbait   = "clickbait"
	RuleBias        = "bias"
	RuleCredibility = "credibility"
	RuleML          = "ml"
)

// Severity grades a single detected issue.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns a sort key (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0
	}
	return -1
}

// Issue is one detected problem signal. Issues are value records and are
// never mutated after a detector emits them.
type Issue struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Score    int      `json:"score,omitempty"`
	Match    string   `json:"match,omitempty"`
	Source   string   `json:"source,omitempty"`
	Count    int      `json:"count,omitempty"`
}

// DetectorResult is the output of a single detector for one request.
// Score is clamped to [0,100] by the detector itself; Issues keep the
// detector's discovery order.
type DetectorResult struct {
	Rule   string  `json:"rule"`
	Score  float64 `json:"score"`
	Issues []Issue `json:"issues"`
	Model  string  `json:"modelUsed,omitempty"`
	Note   string  `json:"note,omitempty"`
}

// Verdict labels the composite score band.
type Verdict string

const (
	VerdictHighlySuspicious   Verdict = "highly suspicious"
	VerdictSuspicious         Verdict = "suspicious"
	VerdictPossiblyMisleading Verdict = "possibly misleading"
	VerdictLikelyCredible     Verdict = "likely credible"
)

// VerdictFor maps a rounded composite score to its band. Lower bounds
// are inclusive.
func VerdictFor(score int) Verdict {
	switch {
	case score >= 75:
		return VerdictHighlySuspicious
	case score >= 50:
		return VerdictSuspicious
	case score >= 25:
		return VerdictPossiblyMisleading
	}
	return VerdictLikelyCredible
}

// Metadata carries optional request context supplied by the caller.
// Unknown auxiliary fields are dropped at the transport boundary.
type Metadata struct {
	URL string
}

// AnalysisResult is the aggregator's final output for one request.
type AnalysisResult struct {
	Verdict          Verdict                   `json:"verdict"`
	Score            int                       `json:"score"`
	Details          map[string]DetectorResult `json:"details"`
	Issues           []Issue                   `json:"issues"`
	SuggestedActions []string                  `json:"suggestedActions"`
	ModelUsed        string                    `json:"modelUsed,omitempty"`
	Note             string                    `json:"note,omitempty"`
	AnalyzedAt       time.Time                 `json:"analyzedAt"`
}

// Classification is one zero-shot classification attempt: parallel label
// and score sequences plus the model that produced them.
type Classification struct {
	Labels []string
	Scores []float64
	Model  string
}

// LabelScore is a single labeled confidence, used by the binary
// AI-generated content check.
type LabelScore struct {
	Label string
	Score float64
}

// AnalysisRecord is the persisted snapshot of a completed analysis.
type AnalysisRecord struct {
	ID          int64
	TextExcerpt string
	Score       int
	Verdict     Verdict
	CreatedAt   time.Time
}
