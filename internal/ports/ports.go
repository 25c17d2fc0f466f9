package ports

import (
	"context"

	"MisinfoScanner/internal/domain"
)

// Detector evaluates one class of misinformation signal. Implementations
// are total: they return a usable result for every input and never fail.
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string, meta domain.Metadata) domain.DetectorResult
}

// Classifier is the remote text-classification capability. It must be
// assumed unreliable; callers own the failure handling.
type Classifier interface {
	Classify(ctx context.Context, text string, candidateLabels []string) (domain.Classification, error)
	DetectGenerated(ctx context.Context, text string) (domain.LabelScore, error)
}

// Analyzer runs the full detector fan-out and produces the composite result.
type Analyzer interface {
	Analyze(ctx context.Context, text string, meta domain.Metadata) (domain.AnalysisResult, error)
}

// AnalysisRepository persists completed analyses for the history surface.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, record domain.AnalysisRecord) error
	RecentAnalyses(ctx context.Context, limit int) ([]domain.AnalysisRecord, error)
}
