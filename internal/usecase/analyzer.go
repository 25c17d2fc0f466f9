package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

// ErrAnalysisTimeout marks a deadline-exceeded analysis. The result
// returned alongside it is the reduced lexical-only fallback, not a full
// composite.
var ErrAnalysisTimeout = errors.New("analysis timed out")

const defaultTimeout = 10 * time.Second

// Composite weight per detector rule.
var compositeWeights = map[string]float64{
	domain.RuleClickbait:   0.30,
	domain.RuleBias:        0.25,
	domain.RuleCredibility: 0.25,
	domain.RuleML:          0.20,
}

const fallbackNote = "Fallback analysis (ML service unavailable)"

// Suggested actions keyed by presence predicates over the merged issues.
var suggestedActionRules = []struct {
	matches func(domain.Issue) bool
	action  string
}{
	{
		matches: func(i domain.Issue) bool { return i.Severity == domain.SeverityCritical },
		action:  "Verify with fact-checking websites like Snopes or FactCheck.org",
	},
	{
		matches: func(i domain.Issue) bool { return strings.Contains(i.Type, "clickbait") },
		action:  "Be cautious of emotionally charged or exaggerated language",
	},
	{
		matches: func(i domain.Issue) bool { return strings.Contains(i.Type, "bias") },
		action:  "Compare with neutral reporting from sources like Reuters or AP News",
	},
	{
		matches: func(i domain.Issue) bool { return strings.Contains(i.Type, "ai_generated") },
		action:  "This content may be AI-generated - check original sources",
	},
}

// AnalyzerDeps wires the detector set into the aggregator.
type AnalyzerDeps struct {
	// Detectors run concurrently on every request, in this merge order.
	Detectors []ports.Detector
	// Fallback runs synchronously when the deadline fires; it should hold
	// only the bounded in-memory detectors.
	Fallback []ports.Detector
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Analyzer fans a request out to every detector under a shared deadline
// and merges their results into one composite verdict.
type Analyzer struct {
	detectors []ports.Detector
	fallback  []ports.Detector
	timeout   time.Duration
	logger    *slog.Logger
}

var _ ports.Analyzer = (*Analyzer)(nil)

// NewAnalyzer constructs the aggregation component.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		detectors: deps.Detectors,
		fallback:  deps.Fallback,
		timeout:   timeout,
		logger:    logger,
	}
}

// Analyze races the combined completion of all detectors against the
// deadline. When the deadline fires first, the in-flight set is
// abandoned and a reduced result built from the fallback detectors is
// returned together with ErrAnalysisTimeout. Detectors that complete
// after the deadline write only into slots this method no longer reads.
func (a *Analyzer) Analyze(ctx context.Context, text string, meta domain.Metadata) (domain.AnalysisResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results := make([]domain.DetectorResult, len(a.detectors))
	g, gctx := errgroup.WithContext(runCtx)
	for i, det := range a.detectors {
		i, det := i, det
		g.Go(func() error {
			results[i] = det.Detect(gctx, text, meta)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		return a.compose(results), nil
	case <-runCtx.Done():
		if !errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return domain.AnalysisResult{}, runCtx.Err()
		}
		a.logger.Warn("analysis deadline exceeded, using lexical fallback",
			"timeout", a.timeout)
		return a.composeFallback(text, meta), ErrAnalysisTimeout
	}
}

// compose builds the weighted composite result from a full detector set.
func (a *Analyzer) compose(results []domain.DetectorResult) domain.AnalysisResult {
	details := make(map[string]domain.DetectorResult, len(results))
	composite := 0.0
	model := ""
	for _, r := range results {
		details[r.Rule] = r
		composite += r.Score * compositeWeights[r.Rule]
		if r.Model != "" {
			model = r.Model
		}
	}

	score := roundScore(composite)
	issues := mergeIssues(results)

	return domain.AnalysisResult{
		Verdict:          domain.VerdictFor(score),
		Score:            score,
		Details:          details,
		Issues:           issues,
		SuggestedActions: suggestedActions(issues),
		ModelUsed:        model,
		AnalyzedAt:       time.Now().UTC(),
	}
}

// composeFallback reruns only the fast detectors and averages them
// without weights.
func (a *Analyzer) composeFallback(text string, meta domain.Metadata) domain.AnalysisResult {
	results := make([]domain.DetectorResult, 0, len(a.fallback))
	details := make(map[string]domain.DetectorResult, len(a.fallback))
	total := 0.0
	for _, det := range a.fallback {
		r := det.Detect(context.Background(), text, meta)
		results = append(results, r)
		details[r.Rule] = r
		total += r.Score
	}

	mean := 0.0
	if len(results) > 0 {
		mean = total / float64(len(results))
	}
	score := roundScore(mean)
	issues := mergeIssues(results)

	return domain.AnalysisResult{
		Verdict:          domain.VerdictFor(score),
		Score:            score,
		Details:          details,
		Issues:           issues,
		SuggestedActions: suggestedActions(issues),
		Note:             fallbackNote,
		AnalyzedAt:       time.Now().UTC(),
	}
}

func roundScore(composite float64) int {
	if composite < 0 {
		composite = 0
	}
	if composite > 100 {
		composite = 100
	}
	return int(math.Round(composite))
}

// mergeIssues flattens every detector's issues in detector order, drops
// malformed entries, and stable-sorts by descending severity so that
// equal severities keep their emission order.
func mergeIssues(results []domain.DetectorResult) []domain.Issue {
	merged := make([]domain.Issue, 0)
	for _, r := range results {
		for _, issue := range r.Issues {
			if issue.Type == "" {
				continue
			}
			merged = append(merged, issue)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Severity.Rank() > merged[j].Severity.Rank()
	})
	return merged
}

// suggestedActions builds the deduplicated ordered action list from the
// merged issues.
func suggestedActions(issues []domain.Issue) []string {
	actions := make([]string, 0)
	for _, rule := range suggestedActionRules {
		for _, issue := range issues {
			if rule.matches(issue) {
				actions = append(actions, rule.action)
				break
			}
		}
	}
	return actions
}
