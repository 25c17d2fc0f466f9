package detector

import "MisinfoScanner/internal/domain"

// Fixed lookup tables shared by all requests. Read-only after init, safe
// for unsynchronized concurrent reads.

var clickbaitPhrases = []string{
	"you won't believe", "shocking", "mind-blowing",
	"what happened next", "this will change everything",
	"doctors hate this", "secret they don't want you to know",
	"instant results", "miracle cure", "gone viral",
}

// biasCategory groups phrases that share a bias label and severity.
type biasCategory struct {
	name     string
	severity domain.Severity
	phrases  []string
}

var biasCategories = []biasCategory{
	{
		name:     "political",
		severity: domain.SeverityHigh,
		phrases: []string{
			"radical left", "right-wing extremist", "libtard", "snowflake",
			"woke agenda", "socialist takeover",
		},
	},
	{
		name:     "emotional",
		severity: domain.SeverityMedium,
		phrases: []string{
			"disgusting", "horrific", "outrageous", "appalling",
			"treasonous", "unforgivable",
		},
	},
	{
		name:     "sensational",
		severity: domain.SeverityMedium,
		phrases: []string{
			"massive cover-up", "secret plot", "they don't want you to know",
			"hidden truth",
		},
	},
}

var credibleSources = []string{
	"reuters.com", "apnews.com", "bbc.co.uk",
	"npr.org", "theguardian.com",
}

var questionableSources = []string{
	"infowars.com", "naturalnews.com",
	"beforeitsnews.com", "worldtruth.tv",
}

// candidateLabels is the fixed label set sent to the zero-shot classifier.
var candidateLabels = []string{
	"reliable journalism",
	"clickbait",
	"biased reporting",
	"satire",
	"conspiracy theory",
	"misinformation",
}
