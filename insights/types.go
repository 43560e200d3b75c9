package insights

import "time"

// Sentiment labels a review as positive, negative, or neutral based on its
// star rating.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Review is a single normalized app-store review. The caller is responsible
// for fetching and normalizing; the pipeline never mutates a Review.
type Review struct {
	Text   string     `json:"text"`
	Rating int        `json:"rating"`
	Date   *time.Time `json:"date,omitempty"`
}

// SentimentedReview is a Review plus its derived sentiment tag. The tag is
// assigned once by TagSentiment and never recomputed.
type SentimentedReview struct {
	Review
	Sentiment Sentiment `json:"sentiment"`
}

// ThemeData is a category-label-based theme used for reporting positive and
// negative category signal. Distinct from clusters: a single review can
// contribute to multiple themes.
type ThemeData struct {
	Topic         string  `json:"topic"`
	Mentions      int     `json:"mentions"`
	NegativeRatio float64 `json:"negativeRatio"`
	RecentTrend   float64 `json:"recentTrend"`
	Score         float64 `json:"score"`

	Reviews []SentimentedReview `json:"-"`
}

// Tier is an ordinal High/Medium/Low level used for insight impact and
// confidence.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

func tierRank(t Tier) int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// InsightMetrics carries the per-cluster numbers behind an insight.
type InsightMetrics struct {
	Mentions      int     `json:"mentions"`
	Share         float64 `json:"share"`
	NegativeRatio float64 `json:"negative_ratio"`
}

// Insight is one scored, titled, actionable unit of output derived from one
// cluster of negative reviews. Titles and suggested actions are unique within
// a single result set.
type Insight struct {
	Title               string         `json:"title"`
	WhyItMatters        string         `json:"why_it_matters"`
	Metrics             InsightMetrics `json:"metrics"`
	RepresentativeQuote string         `json:"representative_quote"`
	SuggestedAction     string         `json:"suggested_action"`
	Impact              Tier           `json:"impact"`
	Confidence          Tier           `json:"confidence"`
}

// TrendPoint is one month bucket of the rating trend series.
type TrendPoint struct {
	Month     string  `json:"month"`
	AvgRating float64 `json:"avgRating"`
	Positive  int     `json:"positive"`
	Negative  int     `json:"negative"`
}

// AnalysisResult is the full output contract consumed by the presentation
// layer. Ratings and percentages are rounded to one decimal.
type AnalysisResult struct {
	AppName            string       `json:"appName"`
	Store              string       `json:"store"`
	AverageRating      float64      `json:"averageRating"`
	TotalReviews       int          `json:"totalReviews"`
	PositivePercentage float64      `json:"positivePercentage"`
	NegativePercentage float64      `json:"negativePercentage"`
	PositiveCategories []string     `json:"positiveCategories"`
	NegativeCategories []string     `json:"negativeCategories"`
	TopNegativeReviews []string     `json:"topNegativeReviews"`
	Trend              []TrendPoint `json:"trend"`
	Summary            string       `json:"summary"`
	Themes             []ThemeData  `json:"themes"`
	Insights           []Insight    `json:"insights"`
	WhatUsersLove      []string     `json:"whatUsersLove"`
	WhatUsersHate      []string     `json:"whatUsersHate"`
}
