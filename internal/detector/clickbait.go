package detector

import (
	"context"
	"strings"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

const (
	clickbaitScorePerIssue = 20
	exclamationThreshold   = 3
)

// Clickbait flags sensationalist phrasing and excessive punctuation.
type Clickbait struct{}

var _ ports.Detector = (*Clickbait)(nil)

// NewClickbait builds the clickbait detector.
func NewClickbait() *Clickbait {
	return &Clickbait{}
}

// Name identifies the detector inside the registry.
func (c *Clickbait) Name() string {
	return domain.RuleClickbait
}

// Detect matches known clickbait phrases case-insensitively and counts
// exclamation marks in the original text.
func (c *Clickbait) Detect(_ context.Context, text string, _ domain.Metadata) domain.DetectorResult {
	issues := make([]domain.Issue, 0)
	lower := strings.ToLower(text)

	for _, phrase := range clickbaitPhrases {
		if strings.Contains(lower, phrase) {
			issues = append(issues, domain.Issue{
				Type:     "clickbait_phrase",
				Match:    phrase,
				Severity: domain.SeverityHigh,
			})
		}
	}

	if count := strings.Count(text, "!"); count > exclamationThreshold {
		issues = append(issues, domain.Issue{
			Type:     "excessive_exclamations",
			Count:    count,
			Severity: domain.SeverityMedium,
		})
	}

	return domain.DetectorResult{
		Rule:   domain.RuleClickbait,
		Score:  saturatingScore(len(issues), clickbaitScorePerIssue),
		Issues: issues,
	}
}

// saturatingScore is the crude monotone score shared by the lexical
// detectors: more independent hits mean a higher score, capped at 100.
func saturatingScore(issueCount, perIssue int) float64 {
	score := issueCount * perIssue
	if score > 100 {
		score = 100
	}
	return float64(score)
}
