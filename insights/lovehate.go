package insights

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loveHateSampleMax = 200
	loveHatePromptMax = 100
)

type loveHateResponse struct {
	Love []string `json:"love"`
	Hate []string `json:"hate"`
}

var loveHateSchema = GenerateSchema[loveHateResponse]()

// Fixed three-item bullet fallbacks for oracle failure.
var (
	fallbackLoveBullets = []string{"Great user experience", "Intuitive design", "Reliable performance"}
	fallbackHateBullets = []string{"Occasional bugs", "Price concerns", "Feature requests"}

	insufficientDataBullets = []string{"Insufficient review data"}
)

// LoveHateSummaries produces the three-bullet "what users love / hate" lists
// via the oracle, with fixed fallbacks on failure. When both sentiment
// samples are empty it short-circuits to the insufficient-data bullet without
// calling the oracle. Never returns an error.
func LoveHateSummaries(ctx context.Context, gen Generator, reviews []SentimentedReview, log *zap.Logger) (love, hate []string) {
	if log == nil {
		log = zap.NewNop()
	}

	positiveTexts := sampleTexts(reviews, SentimentPositive, loveHateSampleMax)
	negativeTexts := sampleTexts(reviews, SentimentNegative, loveHateSampleMax)

	if len(positiveTexts) == 0 && len(negativeTexts) == 0 {
		return insufficientDataBullets, insufficientDataBullets
	}

	resp, err := requestLoveHate(ctx, gen, positiveTexts, negativeTexts)
	if err != nil {
		log.Warn("love/hate summary unavailable, using fixed fallback", zap.Error(err))
		return fallbackLoveBullets, fallbackHateBullets
	}

	love = resp.Love
	if len(love) == 0 {
		love = fallbackLoveBullets
	}
	hate = resp.Hate
	if len(hate) == 0 {
		hate = fallbackHateBullets
	}
	return love, hate
}

func requestLoveHate(ctx context.Context, gen Generator, positiveTexts, negativeTexts []string) (loveHateResponse, error) {
	if gen == nil {
		return loveHateResponse{}, fmt.Errorf("requestLoveHate: no generator configured")
	}

	var b strings.Builder
	b.WriteString("Analyze the following user feedback and create concise bullet-point summaries.\n\n")
	fmt.Fprintf(&b, "Positive reviews (%d samples):\n", len(positiveTexts))
	b.WriteString(joinCapped(positiveTexts, loveHatePromptMax, "\n---\n"))
	fmt.Fprintf(&b, "\n\nNegative reviews (%d samples):\n", len(negativeTexts))
	b.WriteString(joinCapped(negativeTexts, loveHatePromptMax, "\n---\n"))
	b.WriteString(`

Create exactly 3 bullet points for "What users love" and 3 for "What users hate".
Each bullet should be:
- Concise (10-15 words max)
- Specific and data-backed
- Action-oriented where possible`)

	raw, err := gen.Generate(ctx, GenerateRequest{
		Instructions:    "You are a product analyst summarizing user feedback.",
		Input:           b.String(),
		SchemaName:      "LoveHateSummary",
		Schema:          loveHateSchema,
		MaxOutputTokens: 500,
	})
	if err != nil {
		return loveHateResponse{}, err
	}

	var resp loveHateResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		return loveHateResponse{}, fmt.Errorf("decode love/hate: %w", err)
	}
	return resp, nil
}
