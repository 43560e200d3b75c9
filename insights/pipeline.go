package insights

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// AnalyzeInput is one analysis request: a normalized, already-fetched review
// list plus display metadata.
type AnalyzeInput struct {
	AppName string
	Store   string
	Reviews []Review
}

// Options configures a Pipeline.
type Options struct {
	// Gen is the text-generation oracle. Required; every oracle failure
	// degrades to a deterministic fallback rather than failing the request.
	Gen Generator

	// Log receives stage-boundary logging. Optional.
	Log *zap.Logger

	// Concurrency bounds concurrent per-cluster oracle calls during
	// synthesis. Zero means the default.
	Concurrency int

	// MaxInsights bounds the insight list. Zero means the package default.
	MaxInsights int
}

// Pipeline wires classifier, clustering, refinement, ranking, and synthesis
// into one analysis run. All state is request-scoped; a Pipeline is safe for
// concurrent use.
type Pipeline struct {
	gen         Generator
	log         *zap.Logger
	concurrency int
	maxInsights int
}

// NewPipeline builds a Pipeline. The generator is required.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Gen == nil {
		return nil, errors.New("NewPipeline: Gen is required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		gen:         opts.Gen,
		log:         log,
		concurrency: opts.Concurrency,
		maxInsights: opts.MaxInsights,
	}, nil
}

// Analyze runs the full pipeline over one review set. It never fails on
// oracle trouble or thin data: every degradation path ends in a smaller but
// valid result. The returned result is freshly allocated and owned by the
// caller.
func (p *Pipeline) Analyze(ctx context.Context, in AnalyzeInput) (*AnalysisResult, error) {
	if ctx == nil {
		return nil, errors.New("Analyze: ctx is nil")
	}

	result := &AnalysisResult{
		AppName:      in.AppName,
		Store:        in.Store,
		TotalReviews: len(in.Reviews),
	}

	if len(in.Reviews) == 0 {
		result.Summary = insufficientDataSummary
		result.WhatUsersLove = insufficientDataBullets
		result.WhatUsersHate = insufficientDataBullets
		return result, nil
	}

	tagged := TagSentiment(in.Reviews)

	result.AverageRating = AverageRating(in.Reviews)
	result.PositivePercentage, result.NegativePercentage = SentimentPercentages(tagged)
	result.Trend = MonthlyTrend(tagged)
	result.TopNegativeReviews = TopNegativeReviews(tagged, 5)

	result.PositiveCategories, result.NegativeCategories = CategorizeReviews(ctx, p.gen, tagged, p.log)
	result.Themes = RankThemes(tagged, result.PositiveCategories, result.NegativeCategories)

	negatives := make([]SentimentedReview, 0, len(tagged))
	for _, rev := range tagged {
		if rev.Sentiment == SentimentNegative && strings.TrimSpace(rev.Text) != "" {
			negatives = append(negatives, rev)
		}
	}

	if len(negatives) > 0 {
		k := DefaultClusterCount(len(negatives))
		engine := ClusterEngine{Gen: p.gen, Log: p.log}
		assignments := engine.Cluster(ctx, negatives, k)
		clusters := RefineClusters(negatives, assignments)

		p.log.Info("clustered negative reviews",
			zap.Int("negatives", len(negatives)), zap.Int("k", k), zap.Int("clusters", len(clusters)))

		synth := Synthesizer{Gen: p.gen, Log: p.log, Concurrency: p.concurrency, MaxInsights: p.maxInsights}
		result.Insights = synth.Synthesize(ctx, clusters, len(in.Reviews))

		// All per-cluster syntheses failing still yields a usable result:
		// placeholder insights derived from the negative category labels.
		if len(result.Insights) == 0 {
			texts := make([]string, 0, len(negatives))
			for _, rev := range negatives {
				texts = append(texts, rev.Text)
			}
			result.Insights = FallbackInsights(result.NegativeCategories, texts)
		}
	}

	result.WhatUsersLove, result.WhatUsersHate = LoveHateSummaries(ctx, p.gen, tagged, p.log)
	result.Summary = buildSummary(in.AppName, len(in.Reviews), result.AverageRating, result.PositivePercentage, result.NegativeCategories)

	p.log.Info("analysis complete",
		zap.Int("reviews", len(in.Reviews)),
		zap.Int("insights", len(result.Insights)),
		zap.Int("themes", len(result.Themes)))

	return result, nil
}
