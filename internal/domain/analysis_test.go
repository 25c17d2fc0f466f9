package domain

import "testing"

func TestVerdictBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Verdict
	}{
		{100, VerdictHighlySuspicious},
		{75, VerdictHighlySuspicious},
		{74, VerdictSuspicious},
		{50, VerdictSuspicious},
		{49, VerdictPossiblyMisleading},
		{25, VerdictPossiblyMisleading},
		{24, VerdictLikelyCredible},
		{0, VerdictLikelyCredible},
	}

	for _, tc := range tests {
		if got := VerdictFor(tc.score); got != tc.want {
			t.Errorf("VerdictFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	t.Parallel()

	ordered := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
	for i := 0; i < len(ordered)-1; i++ {
		if ordered[i].Rank() <= ordered[i+1].Rank() {
			t.Fatalf("%s should rank above %s", ordered[i], ordered[i+1])
		}
	}

	if Severity("unknown").Rank() >= SeverityLow.Rank() {
		t.Fatal("unknown severity should rank below low")
	}
}
