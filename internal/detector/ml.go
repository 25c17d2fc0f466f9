package detector

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

const (
	labelThreshold        = 0.3
	highSeverityThreshold = 0.6
	aiGeneratedThreshold  = 0.8

	fallbackNote = "ML analysis using fallback"
)

// ML adapts the remote classification capability into a detector. Every
// capability failure is absorbed here and converted into a deterministic
// neutral result; the detector never raises past its caller.
type ML struct {
	classifier ports.Classifier
	logger     *slog.Logger
}

var _ ports.Detector = (*ML)(nil)

// NewML wires the remote classifier; a nil classifier means the detector
// always answers with the neutral fallback.
func NewML(classifier ports.Classifier, logger *slog.Logger) *ML {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ML{classifier: classifier, logger: logger}
}

// Name identifies the detector inside the registry.
func (m *ML) Name() string {
	return domain.RuleML
}

// Detect classifies the text against the fixed candidate labels and turns
// above-threshold labels into issues. The detector score is the mean of
// the raw above-threshold scores scaled to 0-100; with no qualifying
// label it stays a neutral 50, since absence of signal is not evidence of
// credibility.
func (m *ML) Detect(ctx context.Context, text string, _ domain.Metadata) domain.DetectorResult {
	if m.classifier == nil {
		return m.fallback()
	}

	classification, err := m.classifier.Classify(ctx, text, candidateLabels)
	if err != nil {
		m.logger.Warn("ml classification failed", "error", err)
		return m.fallback()
	}
	if len(classification.Labels) == 0 || len(classification.Labels) != len(classification.Scores) {
		m.logger.Warn("ml classification returned malformed label set",
			"labels", len(classification.Labels), "scores", len(classification.Scores))
		return m.fallback()
	}

	issues := make([]domain.Issue, 0)
	total := 0.0
	for i, label := range classification.Labels {
		raw := classification.Scores[i]
		if raw <= labelThreshold {
			continue
		}
		severity := domain.SeverityMedium
		if raw > highSeverityThreshold {
			severity = domain.SeverityHigh
		}
		issues = append(issues, domain.Issue{
			Type:     "ml_" + strings.ReplaceAll(label, " ", "_"),
			Score:    int(math.Round(raw * 100)),
			Severity: severity,
		})
		total += raw * 100
	}

	score := 50.0
	if len(issues) > 0 {
		score = math.Min(100, total/float64(len(issues)))
	}

	issues = append(issues, m.detectGenerated(ctx, text)...)

	return domain.DetectorResult{
		Rule:   domain.RuleML,
		Score:  score,
		Issues: issues,
		Model:  classification.Model,
	}
}

// detectGenerated runs the optional binary AI-content check. It is
// additive: any failure simply contributes nothing.
func (m *ML) detectGenerated(ctx context.Context, text string) []domain.Issue {
	result, err := m.classifier.DetectGenerated(ctx, text)
	if err != nil {
		m.logger.Debug("ai-generated detection unavailable", "error", err)
		return nil
	}
	if !strings.EqualFold(result.Label, "fake") || result.Score <= aiGeneratedThreshold {
		return nil
	}
	return []domain.Issue{{
		Type:     "ai_generated",
		Score:    int(math.Round(result.Score * 100)),
		Severity: domain.SeverityCritical,
	}}
}

func (m *ML) fallback() domain.DetectorResult {
	return domain.DetectorResult{
		Rule:   domain.RuleML,
		Score:  50,
		Issues: make([]domain.Issue, 0),
		Note:   fallbackNote,
	}
}
