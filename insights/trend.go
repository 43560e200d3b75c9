package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const trendMonths = 6

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// AverageRating returns the mean rating rounded to one decimal, or 0 for an
// empty set.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return round1(float64(sum) / float64(len(reviews)))
}

// SentimentPercentages returns the positive and negative shares of a tagged
// review set as percentages rounded to one decimal.
func SentimentPercentages(reviews []SentimentedReview) (positive, negative float64) {
	if len(reviews) == 0 {
		return 0, 0
	}
	pos, neg := 0, 0
	for _, r := range reviews {
		switch r.Sentiment {
		case SentimentPositive:
			pos++
		case SentimentNegative:
			neg++
		}
	}
	total := float64(len(reviews))
	return round1(100 * float64(pos) / total), round1(100 * float64(neg) / total)
}

// MonthlyTrend buckets dated reviews by calendar month (YYYY-MM) and returns
// the most recent trendMonths buckets in chronological order, each with its
// average rating (one decimal) and positive/negative counts. Reviews without
// a date are excluded.
func MonthlyTrend(reviews []SentimentedReview) []TrendPoint {
	type bucket struct {
		sum      int
		count    int
		positive int
		negative int
	}
	buckets := make(map[string]*bucket)

	for _, rev := range reviews {
		if rev.Date == nil {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", rev.Date.Year(), int(rev.Date.Month()))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += rev.Rating
		b.count++
		switch rev.Sentiment {
		case SentimentPositive:
			b.positive++
		case SentimentNegative:
			b.negative++
		}
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > trendMonths {
		months = months[len(months)-trendMonths:]
	}

	trend := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		trend = append(trend, TrendPoint{
			Month:     m,
			AvgRating: round1(float64(b.sum) / float64(b.count)),
			Positive:  b.positive,
			Negative:  b.negative,
		})
	}
	return trend
}

// TopNegativeReviews returns up to max texts of the worst-rated reviews
// (rating <= 2, non-trivial text), lowest rating first; equal ratings keep
// arrival order.
func TopNegativeReviews(reviews []SentimentedReview, max int) []string {
	var worst []SentimentedReview
	for _, rev := range reviews {
		if rev.Rating <= 2 && len(strings.TrimSpace(rev.Text)) > minUsableTextLen {
			worst = append(worst, rev)
		}
	}
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].Rating < worst[j].Rating
	})
	if len(worst) > max {
		worst = worst[:max]
	}

	out := make([]string, 0, len(worst))
	for _, rev := range worst {
		out = append(out, rev.Text)
	}
	return out
}

// insufficientDataSummary is the fixed sentence returned when there is
// nothing to analyze.
const insufficientDataSummary = "Insufficient review data to generate a summary."

// buildSummary produces the one-sentence natural-language rollup of an
// analysis.
func buildSummary(appName string, totalReviews int, avgRating, positivePct float64, negativeCategories []string) string {
	if totalReviews == 0 {
		return insufficientDataSummary
	}

	name := strings.TrimSpace(appName)
	if name == "" {
		name = "This app"
	}

	s := fmt.Sprintf("%s averages %.1f stars across %d reviews, with %.1f%% positive sentiment", name, avgRating, totalReviews, positivePct)
	if len(negativeCategories) > 0 {
		s += fmt.Sprintf("; the most criticized area is %s", negativeCategories[0])
	}
	return s + "."
}
