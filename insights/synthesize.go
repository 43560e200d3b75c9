package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// synthesisSample bounds how many review texts are sent to the oracle per
	// cluster.
	synthesisSample = 20

	// MaxInsights is the cardinality bound on one result set.
	MaxInsights = 5

	defaultSynthesisConcurrency = 4
)

type insightCopyResponse struct {
	Title               string `json:"title"`
	WhyItMatters        string `json:"why_it_matters"`
	SuggestedAction     string `json:"suggested_action"`
	RepresentativeQuote string `json:"representative_quote"`
}

var insightCopySchema = GenerateSchema[insightCopyResponse]()

// Synthesizer turns refined clusters into ranked, deduplicated insights.
// Oracle calls for different clusters run concurrently; a failed call skips
// that cluster only.
type Synthesizer struct {
	Gen Generator
	Log *zap.Logger

	// Concurrency bounds in-flight oracle calls. Zero means the default.
	Concurrency int

	// MaxInsights overrides the result cardinality bound. Zero means
	// MaxInsights.
	MaxInsights int
}

func (s Synthesizer) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}

func (s Synthesizer) limit() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return defaultSynthesisConcurrency
}

func (s Synthesizer) maxInsights() int {
	if s.MaxInsights > 0 {
		return s.MaxInsights
	}
	return MaxInsights
}

// Synthesize produces at most maxInsights insights from the given clusters.
// The result is sorted by impact, then confidence, then mentions, and no two
// insights share a title or a suggested action.
func (s Synthesizer) Synthesize(ctx context.Context, clusters [][]SentimentedReview, totalReviews int) []Insight {
	if len(clusters) == 0 {
		return nil
	}

	results := make([]*Insight, len(clusters))

	g := new(errgroup.Group)
	g.SetLimit(s.limit())
	for i, cluster := range clusters {
		i, cluster := i, cluster
		g.Go(func() error {
			ins, err := s.insightForCluster(ctx, cluster, totalReviews)
			if err != nil {
				// A failed cluster produces no insight; the rest continue.
				s.logger().Warn("insight synthesis skipped cluster",
					zap.Int("cluster", i), zap.Int("size", len(cluster)), zap.Error(err))
				return nil
			}
			results[i] = ins
			return nil
		})
	}
	_ = g.Wait()

	insights := make([]Insight, 0, len(results))
	for _, ins := range results {
		if ins != nil {
			insights = append(insights, *ins)
		}
	}
	return finalizeInsights(insights, s.maxInsights())
}

func (s Synthesizer) insightForCluster(ctx context.Context, cluster []SentimentedReview, totalReviews int) (*Insight, error) {
	if len(cluster) == 0 {
		return nil, errors.New("insightForCluster: empty cluster")
	}
	if s.Gen == nil {
		return nil, errors.New("insightForCluster: no generator configured")
	}
	if totalReviews < len(cluster) {
		totalReviews = len(cluster)
	}

	mentions := len(cluster)
	share := float64(mentions) / float64(totalReviews)

	// Clusters are negative-only by construction, but the ratio is computed
	// explicitly for robustness.
	negativeCount := 0
	for _, rev := range cluster {
		if rev.Sentiment == SentimentNegative {
			negativeCount++
		}
	}
	negativeRatio := float64(negativeCount) / float64(mentions)

	sample := make([]string, 0, synthesisSample)
	for _, rev := range cluster {
		if len(sample) == synthesisSample {
			break
		}
		sample = append(sample, rev.Text)
	}
	topKeywords := extractTopKeywords(sample, 3)

	resp, err := s.requestInsightCopy(ctx, sample, topKeywords, mentions)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(resp.Title)
	if title == "" || title == "User Feedback Theme" || len(title) < 3 {
		title = titleFromKeywords(sample)
	}

	action := strings.TrimSpace(resp.SuggestedAction)
	if isGenericAction(action) {
		action = specificAction(title, extractTopKeywords(sample, 2))
	}

	why := strings.TrimSpace(resp.WhyItMatters)
	if why == "" {
		why = fmt.Sprintf("This issue affects %d reviews (%.1f%% of total)", mentions, share*100)
	}

	// An oracle quote is only trusted when it is verifiably one of the
	// samples; otherwise pick the sample closest to the insight summary.
	quote := strings.TrimSpace(resp.RepresentativeQuote)
	if !quoteInSamples(quote, sample) {
		quote = representativeQuote(sample, title+". "+why)
	}

	impact := TierLow
	switch {
	case share >= 0.15 && negativeRatio >= 0.7:
		impact = TierHigh
	case share >= 0.08 || negativeRatio >= 0.75:
		impact = TierMedium
	}

	confidence := TierLow
	switch {
	case mentions >= 30:
		confidence = TierHigh
	case mentions >= 15:
		confidence = TierMedium
	}

	return &Insight{
		Title:        title,
		WhyItMatters: why,
		Metrics: InsightMetrics{
			Mentions:      mentions,
			Share:         share,
			NegativeRatio: negativeRatio,
		},
		RepresentativeQuote: quote,
		SuggestedAction:     action,
		Impact:              impact,
		Confidence:          confidence,
	}, nil
}

func (s Synthesizer) requestInsightCopy(ctx context.Context, sample []string, topKeywords []string, mentions int) (insightCopyResponse, error) {
	var b strings.Builder
	b.WriteString("You are a product manager analyzing app reviews.\n\n")
	if len(topKeywords) > 0 {
		fmt.Fprintf(&b, "Top keywords: %q\n\n", strings.Join(topKeywords, `", "`))
	}
	fmt.Fprintf(&b, "Here are %d user reviews that discuss a similar theme:\n\n", mentions)
	for i, text := range sample {
		fmt.Fprintf(&b, "%d. %q\n", i+1, text)
	}
	b.WriteString(`
Analyze these reviews and provide:
1. A concise, descriptive title (2-4 words) that captures the specific issue or theme
2. A 1-2 sentence explanation of why this matters to the product
3. One SHORT, SPECIFIC, actionable improvement suggestion (max 15 words)
4. The one review quoted VERBATIM from the list above that best represents the theme

Requirements:
- Title should be specific and descriptive (e.g., "Login Crashes", "Slow Search Results", "Missing Filters")
- Avoid generic titles like "Performance Issues" or "User Experience Problems"
- Suggested action must be concrete and specific
- Focus on what users are actually saying, not assumptions

Example good suggested_action: "Fix login freeze affecting iOS 16+ users after v5.2 update"
Example bad suggested_action: "Investigate and address user concerns about login"
`)

	raw, err := s.Gen.Generate(ctx, GenerateRequest{
		Instructions:    "You are a product manager creating actionable insights from user feedback. Be specific and concrete.",
		Input:           b.String(),
		SchemaName:      "InsightCopy",
		Schema:          insightCopySchema,
		MaxOutputTokens: 300,
	})
	if err != nil {
		return insightCopyResponse{}, err
	}

	var resp insightCopyResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		return insightCopyResponse{}, fmt.Errorf("decode insight copy: %w", err)
	}
	return resp, nil
}

// finalizeInsights applies global ordering, title/action uniqueness, and the
// cardinality bound. Uniqueness is processed in ranking order with explicit
// seen-sets; titles are finalized before actions.
func finalizeInsights(insights []Insight, max int) []Insight {
	if len(insights) == 0 {
		return nil
	}
	out := append([]Insight(nil), insights...)

	sort.SliceStable(out, func(i, j int) bool {
		if a, b := tierRank(out[i].Impact), tierRank(out[j].Impact); a != b {
			return a > b
		}
		if a, b := tierRank(out[i].Confidence), tierRank(out[j].Confidence); a != b {
			return a > b
		}
		return out[i].Metrics.Mentions > out[j].Metrics.Mentions
	})

	titles := newUniquer()
	for i := range out {
		out[i].Title = titles.claim(out[i].Title)
	}
	actions := newUniquer()
	for i := range out {
		out[i].SuggestedAction = actions.claim(out[i].SuggestedAction)
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// uniquer rewrites repeated strings through a fixed differentiator rotation
// until unique. Local state only; nothing survives a result set.
type uniquer struct {
	seen map[string]bool
}

func newUniquer() *uniquer {
	return &uniquer{seen: make(map[string]bool)}
}

func (u *uniquer) claim(base string) string {
	s := base
	for i := 0; u.seen[s]; i++ {
		switch i % 4 {
		case 0:
			s = base + " Issues"
		case 1:
			s = base + " Problems"
		case 2:
			s = "Related to " + base
		default:
			s = fmt.Sprintf("%s (Part %d)", base, i/4+2)
		}
	}
	u.seen[s] = true
	return s
}

// FallbackInsights builds conservative placeholder insights directly from
// negative category labels. Used when clustering produced nothing usable so
// the pipeline still returns a valid (smaller) result.
func FallbackInsights(negativeCategories []string, negativeTexts []string) []Insight {
	cats := negativeCategories
	if len(cats) > 2 {
		cats = cats[:2]
	}

	var out []Insight
	for i, category := range cats {
		mentions := 0
		if len(negativeCategories) > 0 {
			mentions = len(negativeTexts) / len(negativeCategories)
		}

		quote := "Users have reported issues with this aspect"
		if i < len(negativeTexts) {
			quote = negativeTexts[i]
		}

		out = append(out, Insight{
			Title:        fmt.Sprintf("Address %s issues", category),
			WhyItMatters: fmt.Sprintf("%s is a major pain point mentioned in user reviews", category),
			Metrics: InsightMetrics{
				Mentions:      mentions,
				Share:         0.1,
				NegativeRatio: 0.8,
			},
			RepresentativeQuote: quote,
			SuggestedAction:     fmt.Sprintf("Investigate and improve %s", strings.ToLower(category)),
			Impact:              TierMedium,
			Confidence:          TierLow,
		})
	}
	return finalizeInsights(out, MaxInsights)
}
