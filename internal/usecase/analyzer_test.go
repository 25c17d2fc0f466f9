package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"MisinfoScanner/internal/detector"
	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

// fixedDetector returns a canned result, optionally after a delay.
type fixedDetector struct {
	name   string
	result domain.DetectorResult
	delay  time.Duration
}

func (f *fixedDetector) Name() string { return f.name }

func (f *fixedDetector) Detect(ctx context.Context, _ string, _ domain.Metadata) domain.DetectorResult {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return f.result
}

func fixedScores(clickbait, bias, credibility, ml float64) []ports.Detector {
	return []ports.Detector{
		&fixedDetector{name: domain.RuleClickbait, result: domain.DetectorResult{Rule: domain.RuleClickbait, Score: clickbait}},
		&fixedDetector{name: domain.RuleBias, result: domain.DetectorResult{Rule: domain.RuleBias, Score: bias}},
		&fixedDetector{name: domain.RuleCredibility, result: domain.DetectorResult{Rule: domain.RuleCredibility, Score: credibility}},
		&fixedDetector{name: domain.RuleML, result: domain.DetectorResult{Rule: domain.RuleML, Score: ml}},
	}
}

func TestCompositeScoreBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                      string
		clickbait, bias, cred, ml float64
		wantScore                 int
		wantVerdict               domain.Verdict
	}{
		{name: "all zero", wantScore: 0, wantVerdict: domain.VerdictLikelyCredible},
		{
			name: "all hundred", clickbait: 100, bias: 100, cred: 100, ml: 100,
			wantScore: 100, wantVerdict: domain.VerdictHighlySuspicious,
		},
		{
			name: "weighted mix", clickbait: 40, bias: 0, cred: 15, ml: 50,
			// 40*0.30 + 0*0.25 + 15*0.25 + 50*0.20 = 25.75 -> 26
			wantScore: 26, wantVerdict: domain.VerdictPossiblyMisleading,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			analyzer := NewAnalyzer(AnalyzerDeps{
				Detectors: fixedScores(tc.clickbait, tc.bias, tc.cred, tc.ml),
			})

			result, err := analyzer.Analyze(context.Background(), "text", domain.Metadata{})
			if err != nil {
				t.Fatalf("analyze: %v", err)
			}
			if result.Score != tc.wantScore {
				t.Fatalf("score = %d, want %d", result.Score, tc.wantScore)
			}
			if result.Verdict != tc.wantVerdict {
				t.Fatalf("verdict = %q, want %q", result.Verdict, tc.wantVerdict)
			}
			if len(result.Details) != 4 {
				t.Fatalf("expected 4 detail entries, got %d", len(result.Details))
			}
		})
	}
}

func TestIssueMergeOrdering(t *testing.T) {
	t.Parallel()

	detectors := []ports.Detector{
		&fixedDetector{name: domain.RuleClickbait, result: domain.DetectorResult{
			Rule: domain.RuleClickbait,
			Issues: []domain.Issue{
				{Type: "clickbait_phrase", Severity: domain.SeverityHigh},
				{Type: "excessive_exclamations", Severity: domain.SeverityMedium},
			},
		}},
		&fixedDetector{name: domain.RuleBias, result: domain.DetectorResult{
			Rule: domain.RuleBias,
			Issues: []domain.Issue{
				{Type: "political_bias", Severity: domain.SeverityHigh},
			},
		}},
		&fixedDetector{name: domain.RuleCredibility, result: domain.DetectorResult{
			Rule: domain.RuleCredibility,
			Issues: []domain.Issue{
				{Type: "questionable_source", Severity: domain.SeverityCritical},
				{Type: "missing_attribution", Severity: domain.SeverityMedium},
			},
		}},
		&fixedDetector{name: domain.RuleML, result: domain.DetectorResult{
			Rule: domain.RuleML,
			Issues: []domain.Issue{
				{Type: "ml_misinformation", Severity: domain.SeverityHigh},
				{Type: "", Severity: domain.SeverityHigh}, // malformed, dropped
			},
		}},
	}

	analyzer := NewAnalyzer(AnalyzerDeps{Detectors: detectors})
	result, err := analyzer.Analyze(context.Background(), "text", domain.Metadata{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	wantTypes := []string{
		"questionable_source", // critical first
		"clickbait_phrase",    // high, in detector emission order
		"political_bias",
		"ml_misinformation",
		"excessive_exclamations", // medium, emission order preserved
		"missing_attribution",
	}

	if len(result.Issues) != len(wantTypes) {
		t.Fatalf("expected %d issues, got %+v", len(wantTypes), result.Issues)
	}
	for i, issue := range result.Issues {
		if issue.Type != wantTypes[i] {
			t.Fatalf("issue %d = %s, want %s", i, issue.Type, wantTypes[i])
		}
	}

	// Severity ranks never increase down the list.
	for i := 0; i < len(result.Issues)-1; i++ {
		if result.Issues[i].Severity.Rank() < result.Issues[i+1].Severity.Rank() {
			t.Fatalf("severity rank increases at %d: %+v", i, result.Issues)
		}
	}
}

func TestSuggestedActions(t *testing.T) {
	t.Parallel()

	detectors := []ports.Detector{
		&fixedDetector{name: domain.RuleClickbait, result: domain.DetectorResult{
			Rule: domain.RuleClickbait,
			Issues: []domain.Issue{
				{Type: "clickbait_phrase", Severity: domain.SeverityHigh},
			},
		}},
		&fixedDetector{name: domain.RuleML, result: domain.DetectorResult{
			Rule: domain.RuleML,
			Issues: []domain.Issue{
				{Type: "ai_generated", Severity: domain.SeverityCritical},
			},
		}},
	}

	analyzer := NewAnalyzer(AnalyzerDeps{Detectors: detectors})
	result, err := analyzer.Analyze(context.Background(), "text", domain.Metadata{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	want := []string{
		"Verify with fact-checking websites like Snopes or FactCheck.org",
		"Be cautious of emotionally charged or exaggerated language",
		"This content may be AI-generated - check original sources",
	}
	if len(result.SuggestedActions) != len(want) {
		t.Fatalf("actions = %+v, want %+v", result.SuggestedActions, want)
	}
	for i, action := range result.SuggestedActions {
		if action != want[i] {
			t.Fatalf("action %d = %q, want %q", i, action, want[i])
		}
	}
}

func TestSuggestedActionsEmptyWithoutMatches(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(AnalyzerDeps{Detectors: fixedScores(0, 0, 0, 50)})
	result, err := analyzer.Analyze(context.Background(), "text", domain.Metadata{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.SuggestedActions) != 0 {
		t.Fatalf("expected no actions, got %+v", result.SuggestedActions)
	}
	if result.SuggestedActions == nil {
		t.Fatal("actions should be an empty slice, not nil")
	}
}

func TestDeadlineFallback(t *testing.T) {
	t.Parallel()

	slowML := &fixedDetector{
		name:   domain.RuleML,
		delay:  500 * time.Millisecond,
		result: domain.DetectorResult{Rule: domain.RuleML, Score: 90},
	}

	clickbait := detector.NewClickbait()
	bias := detector.NewBias()

	analyzer := NewAnalyzer(AnalyzerDeps{
		Detectors: []ports.Detector{clickbait, bias, detector.NewCredibility(), slowML},
		Fallback:  []ports.Detector{clickbait, bias},
		Timeout:   50 * time.Millisecond,
	})

	text := "You won't believe this disgusting secret plot!!!!"
	result, err := analyzer.Analyze(context.Background(), text, domain.Metadata{})

	if !errors.Is(err, ErrAnalysisTimeout) {
		t.Fatalf("expected ErrAnalysisTimeout, got %v", err)
	}
	if result.Note == "" {
		t.Fatal("fallback result must be annotated")
	}

	// Only the two lexical detectors contribute.
	if len(result.Details) != 2 {
		t.Fatalf("expected 2 detail entries, got %+v", result.Details)
	}
	if _, ok := result.Details[domain.RuleML]; ok {
		t.Fatal("fallback must not include the ml detector")
	}

	// clickbait: phrase + exclamations = 40; bias: disgusting + secret plot = 30.
	wantScore := (40 + 30) / 2
	if result.Score != wantScore {
		t.Fatalf("score = %d, want %d", result.Score, wantScore)
	}
	if result.Verdict != domain.VerdictPossiblyMisleading {
		t.Fatalf("verdict = %q", result.Verdict)
	}
}

func TestParentCancellationIsNotTimeout(t *testing.T) {
	t.Parallel()

	slow := &fixedDetector{
		name:   domain.RuleML,
		delay:  time.Second,
		result: domain.DetectorResult{Rule: domain.RuleML, Score: 50},
	}

	analyzer := NewAnalyzer(AnalyzerDeps{
		Detectors: []ports.Detector{slow},
		Timeout:   5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := analyzer.Analyze(ctx, "text", domain.Metadata{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	neutralML := &fixedDetector{
		name:   domain.RuleML,
		result: domain.DetectorResult{Rule: domain.RuleML, Score: 50, Issues: []domain.Issue{}},
	}

	analyzer := NewAnalyzer(AnalyzerDeps{
		Detectors: []ports.Detector{
			detector.NewClickbait(),
			detector.NewBias(),
			detector.NewCredibility(),
			neutralML,
		},
	})

	text := "You won't believe what the council decided!!!! Details inside."
	result, err := analyzer.Analyze(context.Background(), text, domain.Metadata{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	clickbait := result.Details[domain.RuleClickbait]
	if clickbait.Score != 40 {
		t.Fatalf("clickbait score = %v, want 40", clickbait.Score)
	}
	wantClickbaitTypes := []string{"clickbait_phrase", "excessive_exclamations"}
	for i, issue := range clickbait.Issues {
		if issue.Type != wantClickbaitTypes[i] {
			t.Fatalf("clickbait issue %d = %s", i, issue.Type)
		}
	}

	if bias := result.Details[domain.RuleBias]; bias.Score != 0 {
		t.Fatalf("bias score = %v, want 0", bias.Score)
	}
	if cred := result.Details[domain.RuleCredibility]; cred.Score != 15 {
		t.Fatalf("credibility score = %v, want 15", cred.Score)
	}

	// round(40*0.30 + 0*0.25 + 15*0.25 + 50*0.20) = round(25.75) = 26
	if result.Score != 26 {
		t.Fatalf("composite = %d, want 26", result.Score)
	}
	if result.Verdict != domain.VerdictPossiblyMisleading {
		t.Fatalf("verdict = %q, want possibly misleading", result.Verdict)
	}
}
