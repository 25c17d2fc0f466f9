package detector

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

const (
	questionableSourceScore  = 80
	credibleSourceAdjustment = -20
	missingAttributionScore  = 15
)

var attributionExpr = regexp.MustCompile(`(according to|said by|reported by|as per) [A-Z][a-z]+`)

// Credibility evaluates the source URL against fixed reputation lists and
// checks the text for an attribution pattern.
type Credibility struct{}

var _ ports.Detector = (*Credibility)(nil)

// NewCredibility builds the credibility detector.
func NewCredibility() *Credibility {
	return &Credibility{}
}

// Name identifies the detector inside the registry.
func (c *Credibility) Name() string {
	return domain.RuleCredibility
}

// Detect never fails: a missing or malformed URL degrades silently to
// "no source information".
func (c *Credibility) Detect(_ context.Context, text string, meta domain.Metadata) domain.DetectorResult {
	issues := make([]domain.Issue, 0)
	score := 0.0

	if host := hostnameOf(meta.URL); host != "" {
		switch {
		case matchesAny(host, questionableSources):
			issues = append(issues, domain.Issue{
				Type:     "questionable_source",
				Source:   host,
				Severity: domain.SeverityCritical,
			})
			score = questionableSourceScore
		case matchesAny(host, credibleSources):
			// Credibility bonus; the final floor keeps it from going negative.
			score = credibleSourceAdjustment
		}
	}

	if !attributionExpr.MatchString(text) {
		issues = append(issues, domain.Issue{
			Type:     "missing_attribution",
			Severity: domain.SeverityMedium,
		})
		score += missingAttributionScore
	}

	if score < 0 {
		score = 0
	}

	return domain.DetectorResult{
		Rule:   domain.RuleCredibility,
		Score:  score,
		Issues: issues,
	}
}

// hostnameOf extracts the hostname from a valid absolute URL, or returns
// empty for anything unusable.
func hostnameOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ""
	}
	return u.Hostname()
}

func matchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}
