package detector

import (
	"context"
	"strings"
	"testing"

	"MisinfoScanner/internal/domain"
)

func TestClickbaitPhraseAndExclamations(t *testing.T) {
	t.Parallel()

	text := "You won't believe what they found!!!! More at eleven."
	result := NewClickbait().Detect(context.Background(), text, domain.Metadata{})

	if result.Rule != domain.RuleClickbait {
		t.Fatalf("unexpected rule: %s", result.Rule)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(result.Issues), result.Issues)
	}

	phrase := result.Issues[0]
	if phrase.Type != "clickbait_phrase" || phrase.Match != "you won't believe" {
		t.Fatalf("unexpected phrase issue: %+v", phrase)
	}
	if phrase.Severity != domain.SeverityHigh {
		t.Fatalf("phrase severity = %s, want high", phrase.Severity)
	}

	exclaim := result.Issues[1]
	if exclaim.Type != "excessive_exclamations" || exclaim.Count != 4 {
		t.Fatalf("unexpected exclamation issue: %+v", exclaim)
	}
	if exclaim.Severity != domain.SeverityMedium {
		t.Fatalf("exclamation severity = %s, want medium", exclaim.Severity)
	}

	if result.Score != 40 {
		t.Fatalf("score = %v, want 40", result.Score)
	}
}

func TestClickbaitNoMatches(t *testing.T) {
	t.Parallel()

	result := NewClickbait().Detect(context.Background(), "The committee published its annual budget report.", domain.Metadata{})

	if result.Score != 0 {
		t.Fatalf("score = %v, want 0", result.Score)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}
	if result.Issues == nil {
		t.Fatal("issues should be an empty slice, not nil")
	}
}

func TestClickbaitExclamationThreshold(t *testing.T) {
	t.Parallel()

	// Exactly at the threshold is still fine.
	result := NewClickbait().Detect(context.Background(), "Wow! Wow! Wow!", domain.Metadata{})
	if len(result.Issues) != 0 {
		t.Fatalf("3 exclamations should not trigger, got %+v", result.Issues)
	}
}

func TestClickbaitScoreMonotoneAndCapped(t *testing.T) {
	t.Parallel()

	det := NewClickbait()
	prev := 0.0
	text := ""
	for _, phrase := range clickbaitPhrases {
		text += phrase + ". "
		result := det.Detect(context.Background(), text, domain.Metadata{})
		if result.Score < prev {
			t.Fatalf("score decreased from %v to %v with more matches", prev, result.Score)
		}
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("score %v out of [0,100]", result.Score)
		}
		prev = result.Score
	}

	// All ten phrases saturate the score.
	if prev != 100 {
		t.Fatalf("saturated score = %v, want 100", prev)
	}
}

func TestClickbaitCaseInsensitive(t *testing.T) {
	t.Parallel()

	result := NewClickbait().Detect(context.Background(), strings.ToUpper("doctors hate this"), domain.Metadata{})
	if len(result.Issues) != 1 {
		t.Fatalf("expected a match on upper-cased text, got %+v", result.Issues)
	}
}
