package insights

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	categorySampleMax = 50
	categoryPromptMax = 30
	minUsableTextLen  = 10
)

type categoriesResponse struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

var categoriesSchema = GenerateSchema[categoriesResponse]()

// Fixed category fallbacks used whenever the oracle is unavailable or
// returns an empty side.
var (
	fallbackPositiveCategories = []string{"User Experience", "Features", "Design"}
	fallbackNegativeCategories = []string{"Performance", "Bugs", "Price"}
)

// CategorizeReviews asks the oracle for the top positive and negative
// category labels across sampled review texts. Any failure or degenerate
// response yields the fixed fallback lists; this never returns an error.
func CategorizeReviews(ctx context.Context, gen Generator, reviews []SentimentedReview, log *zap.Logger) (positive, negative []string) {
	if log == nil {
		log = zap.NewNop()
	}

	positiveTexts := sampleTexts(reviews, SentimentPositive, categorySampleMax)
	negativeTexts := sampleTexts(reviews, SentimentNegative, categorySampleMax)

	resp, err := requestCategories(ctx, gen, positiveTexts, negativeTexts)
	if err != nil {
		log.Warn("category extraction unavailable, using fixed fallback", zap.Error(err))
		return fallbackPositiveCategories, fallbackNegativeCategories
	}

	positive = resp.Positive
	if len(positive) == 0 {
		positive = fallbackPositiveCategories
	}
	negative = resp.Negative
	if len(negative) == 0 {
		negative = fallbackNegativeCategories
	}
	return positive, negative
}

func requestCategories(ctx context.Context, gen Generator, positiveTexts, negativeTexts []string) (categoriesResponse, error) {
	if gen == nil {
		return categoriesResponse{}, fmt.Errorf("requestCategories: no generator configured")
	}

	var b strings.Builder
	b.WriteString("Analyze these app reviews and extract the main categories/topics being discussed.\n\n")
	fmt.Fprintf(&b, "Positive reviews (%d samples):\n", len(positiveTexts))
	b.WriteString(joinCapped(positiveTexts, categoryPromptMax, "\n"))
	fmt.Fprintf(&b, "\n\nNegative reviews (%d samples):\n", len(negativeTexts))
	b.WriteString(joinCapped(negativeTexts, categoryPromptMax, "\n"))
	b.WriteString(`

Return two arrays:
- "positive": Top 3-5 categories that users praise (e.g., "UI Design", "Performance", "Features")
- "negative": Top 3-5 categories that users criticize (e.g., "Bugs", "Ads", "Price")

Keep category names short (1-3 words). Focus on the most commonly mentioned topics.`)

	raw, err := gen.Generate(ctx, GenerateRequest{
		Instructions:    "You are a product analyst categorizing app-store reviews.",
		Input:           b.String(),
		SchemaName:      "ReviewCategories",
		Schema:          categoriesSchema,
		MaxOutputTokens: 500,
	})
	if err != nil {
		return categoriesResponse{}, err
	}

	var resp categoriesResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		return categoriesResponse{}, fmt.Errorf("decode categories: %w", err)
	}
	return resp, nil
}

// sampleTexts collects up to max non-trivial review texts with the given
// sentiment, preserving order. Reviews with missing or very short text are
// excluded silently.
func sampleTexts(reviews []SentimentedReview, sentiment Sentiment, max int) []string {
	var out []string
	for _, rev := range reviews {
		if rev.Sentiment != sentiment {
			continue
		}
		text := strings.TrimSpace(rev.Text)
		if len(text) <= minUsableTextLen {
			continue
		}
		out = append(out, rev.Text)
		if len(out) == max {
			break
		}
	}
	return out
}

func joinCapped(texts []string, max int, sep string) string {
	if len(texts) > max {
		texts = texts[:max]
	}
	return strings.Join(texts, sep)
}
