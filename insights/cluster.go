package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// defaultClusterSample bounds how many reviews are sent to the oracle for
// clustering. Reviews beyond the sample are assigned round-robin over the
// returned themes.
const defaultClusterSample = 80

type clusterTheme struct {
	Name          string `json:"name"`
	ReviewIndices []int  `json:"review_indices"`
}

type clusterThemesResponse struct {
	Themes []clusterTheme `json:"themes"`
}

var clusterThemesSchema = GenerateSchema[clusterThemesResponse]()

// ClusterEngine partitions a review set into k thematic groups, primarily via
// the text-generation oracle, falling back to lexical keyword matching when
// the oracle is unavailable or returns degenerate output.
type ClusterEngine struct {
	Gen Generator
	Log *zap.Logger

	// SampleSize overrides the oracle sample bound. Zero means the default.
	SampleSize int
}

func (e ClusterEngine) logger() *zap.Logger {
	if e.Log != nil {
		return e.Log
	}
	return zap.NewNop()
}

func (e ClusterEngine) sampleSize() int {
	if e.SampleSize > 0 {
		return e.SampleSize
	}
	return defaultClusterSample
}

// Cluster assigns each review a dense cluster id in [0, k'). Oracle failures
// are never fatal: they downgrade to KeywordClusters with the same k. When k
// is zero the target is derived from review volume.
func (e ClusterEngine) Cluster(ctx context.Context, reviews []SentimentedReview, k int) []int {
	if len(reviews) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultClusterCount(len(reviews))
	}

	assignments, err := e.clusterWithOracle(ctx, reviews, k)
	if err != nil {
		e.logger().Warn("oracle clustering unavailable, using keyword fallback",
			zap.Int("reviews", len(reviews)), zap.Int("k", k), zap.Error(err))
		return KeywordClusters(reviews, k)
	}
	return assignments
}

func (e ClusterEngine) clusterWithOracle(ctx context.Context, reviews []SentimentedReview, k int) ([]int, error) {
	if e.Gen == nil {
		return nil, errors.New("clusterWithOracle: no generator configured")
	}

	sampleSize := e.sampleSize()
	if sampleSize > len(reviews) {
		sampleSize = len(reviews)
	}
	sample := reviews[:sampleSize]

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze these %d user reviews and group them into %d distinct semantic themes/topics.\n\n", sampleSize, k)
	b.WriteString("Reviews:\n")
	for i, r := range sample {
		fmt.Fprintf(&b, "%d. %q\n", i, r.Text)
	}
	fmt.Fprintf(&b, "\nIdentify %d main themes and assign each review (by index 0-%d) to the most relevant theme.\n", k, sampleSize-1)
	b.WriteString("Each review should be assigned to exactly one theme. Make themes distinct and meaningful. Theme names are 2-4 words.\n")

	raw, err := e.Gen.Generate(ctx, GenerateRequest{
		Instructions:    "You are a data analyst clustering user reviews into semantic themes.",
		Input:           b.String(),
		SchemaName:      "ReviewThemes",
		Schema:          clusterThemesSchema,
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return nil, err
	}

	var resp clusterThemesResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	if len(resp.Themes) == 0 {
		return nil, errors.New("oracle returned no themes")
	}

	assignments := make([]int, len(reviews))
	for themeIdx, theme := range resp.Themes {
		for _, idx := range theme.ReviewIndices {
			if idx >= 0 && idx < sampleSize {
				assignments[idx] = themeIdx
			}
		}
	}

	// Reviews beyond the sample were never seen by the oracle; spread them
	// round-robin over the returned themes so every review is covered.
	for i := sampleSize; i < len(reviews); i++ {
		assignments[i] = i % len(resp.Themes)
	}
	return assignments, nil
}

// ClusterVectors partitions numeric feature vectors into k groups with
// k-means. It exists for callers that already computed vector features for
// their reviews; the oracle path never uses it.
func ClusterVectors(data [][]float64, k int) []int {
	res := KMeans(data, k, 100, 1e-4)
	return res.Assignments
}
