package detector

import (
	"context"
	"strings"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

const biasScorePerIssue = 15

// Bias flags loaded political, emotional, and sensational language.
type Bias struct{}

var _ ports.Detector = (*Bias)(nil)

// NewBias builds the bias detector.
func NewBias() *Bias {
	return &Bias{}
}

// Name identifies the detector inside the registry.
func (b *Bias) Name() string {
	return domain.RuleBias
}

// Detect matches bias indicator phrases case-insensitively, one issue per
// hit, tagged with the category that matched.
func (b *Bias) Detect(_ context.Context, text string, _ domain.Metadata) domain.DetectorResult {
	issues := make([]domain.Issue, 0)
	lower := strings.ToLower(text)

	for _, category := range biasCategories {
		for _, phrase := range category.phrases {
			if strings.Contains(lower, phrase) {
				issues = append(issues, domain.Issue{
					Type:     category.name + "_bias",
					Match:    phrase,
					Severity: category.severity,
				})
			}
		}
	}

	return domain.DetectorResult{
		Rule:   domain.RuleBias,
		Score:  saturatingScore(len(issues), biasScorePerIssue),
		Issues: issues,
	}
}
