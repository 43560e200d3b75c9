package insights

import (
	"context"
	"testing"
)

func TestNewPipeline_RequiresGenerator(t *testing.T) {
	t.Parallel()

	if _, err := NewPipeline(Options{}); err == nil {
		t.Fatalf("NewPipeline(Options{}) err=nil, want error")
	}
	if _, err := NewPipeline(Options{Gen: failingGen}); err != nil {
		t.Fatalf("NewPipeline err=%v, want nil", err)
	}
}

func TestAnalyze_EmptyReviewSet(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(Options{Gen: failingGen})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	res, err := p.Analyze(context.Background(), AnalyzeInput{AppName: "Empty", Store: "ios"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.TotalReviews != 0 {
		t.Fatalf("TotalReviews=%d, want 0", res.TotalReviews)
	}
	if res.Summary != insufficientDataSummary {
		t.Fatalf("Summary=%q, want insufficient-data sentence", res.Summary)
	}
	if len(res.WhatUsersLove) != 1 || res.WhatUsersLove[0] != "Insufficient review data" {
		t.Fatalf("WhatUsersLove=%v", res.WhatUsersLove)
	}
	if len(res.Insights) != 0 {
		t.Fatalf("Insights=%v, want none", res.Insights)
	}
}

func TestAnalyze_FullRunWithPartialOracle(t *testing.T) {
	t.Parallel()

	// Clustering, categorization, and love/hate all fail; only per-cluster
	// insight copy succeeds. The pipeline still produces a complete result.
	negText := "the app keeps crashing constantly"
	gen := fakeGen{fn: func(req GenerateRequest) ([]byte, error) {
		if req.SchemaName == "InsightCopy" {
			return []byte(copyPayload(
				"Startup Crashes",
				"Users cannot get past the launch screen.",
				"Fix the session restore crash on cold start",
				negText,
			)), nil
		}
		return nil, errOracleDown
	}}

	var reviews []Review
	for i := 0; i < 60; i++ {
		reviews = append(reviews, Review{Text: "absolutely love this app", Rating: 5})
	}
	for i := 0; i < 40; i++ {
		reviews = append(reviews, Review{Text: negText, Rating: 1})
	}

	p, err := NewPipeline(Options{Gen: gen})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	res, err := p.Analyze(context.Background(), AnalyzeInput{AppName: "TestApp", Store: "android", Reviews: reviews})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.TotalReviews != 100 || res.AverageRating != 3.4 {
		t.Fatalf("TotalReviews=%d AverageRating=%v, want 100 and 3.4", res.TotalReviews, res.AverageRating)
	}
	if res.PositivePercentage != 60.0 || res.NegativePercentage != 40.0 {
		t.Fatalf("percentages=%v/%v, want 60/40", res.PositivePercentage, res.NegativePercentage)
	}
	if len(res.PositiveCategories) != 3 || res.NegativeCategories[0] != "Performance" {
		t.Fatalf("categories=%v/%v, want fixed fallbacks", res.PositiveCategories, res.NegativeCategories)
	}

	if len(res.Insights) != 1 {
		t.Fatalf("Insights=%d, want 1", len(res.Insights))
	}
	ins := res.Insights[0]
	if ins.Title != "Startup Crashes" || ins.Metrics.Mentions != 40 {
		t.Fatalf("insight=%+v, want Startup Crashes with 40 mentions", ins)
	}
	if ins.Impact != TierHigh || ins.Confidence != TierHigh {
		t.Fatalf("Impact=%q Confidence=%q, want high/high", ins.Impact, ins.Confidence)
	}
	if ins.RepresentativeQuote != negText {
		t.Fatalf("RepresentativeQuote=%q, want the verbatim sample", ins.RepresentativeQuote)
	}

	if len(res.WhatUsersHate) != 3 || res.WhatUsersHate[0] != "Occasional bugs" {
		t.Fatalf("WhatUsersHate=%v, want fixed fallback", res.WhatUsersHate)
	}
	wantSummary := "TestApp averages 3.4 stars across 100 reviews, with 60.0% positive sentiment; the most criticized area is Performance."
	if res.Summary != wantSummary {
		t.Fatalf("Summary=%q, want %q", res.Summary, wantSummary)
	}
}

func TestAnalyze_FallbackInsightsWhenSynthesisFails(t *testing.T) {
	t.Parallel()

	var reviews []Review
	for i := 0; i < 12; i++ {
		reviews = append(reviews, Review{Text: "completely broken since the update", Rating: 1})
	}
	reviews = append(reviews, Review{Text: "works well enough for me", Rating: 5})

	p, err := NewPipeline(Options{Gen: failingGen})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	res, err := p.Analyze(context.Background(), AnalyzeInput{AppName: "TestApp", Reviews: reviews})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(res.Insights) != 2 {
		t.Fatalf("Insights=%d, want 2 category placeholders", len(res.Insights))
	}
	if res.Insights[0].Title != "Address Performance issues" {
		t.Fatalf("Insights[0].Title=%q", res.Insights[0].Title)
	}
	if res.Insights[0].Metrics.Mentions != 4 { // 12 negative texts over 3 categories
		t.Fatalf("Mentions=%d, want 4", res.Insights[0].Metrics.Mentions)
	}
}

func TestAnalyze_NoNegativesMeansNoInsights(t *testing.T) {
	t.Parallel()

	reviews := []Review{
		{Text: "five stars, love everything about it", Rating: 5},
		{Text: "works beautifully on my tablet", Rating: 4},
	}
	p, err := NewPipeline(Options{Gen: failingGen})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	res, err := p.Analyze(context.Background(), AnalyzeInput{AppName: "TestApp", Reviews: reviews})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Insights) != 0 {
		t.Fatalf("Insights=%v, want none", res.Insights)
	}
	if len(res.WhatUsersHate) != 3 || res.WhatUsersHate[0] != "Occasional bugs" {
		t.Fatalf("WhatUsersHate=%v, want fixed fallback", res.WhatUsersHate)
	}
}

func TestAnalyze_NilContext(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(Options{Gen: failingGen})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	var ctx context.Context
	if _, err := p.Analyze(ctx, AnalyzeInput{}); err == nil {
		t.Fatalf("Analyze with nil ctx err=nil, want error")
	}
}
