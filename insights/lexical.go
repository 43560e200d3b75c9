package insights

import "strings"

// themeKeywords are the keyword families used by the lexical fallback
// clusterer and by the refinement stage. Order matters: only the first k
// families are considered when targeting k clusters, and ties between
// families keep the earlier one.
var themeKeywords = [][]string{
	{"crash", "freeze", "bug", "broken", "error", "fail"},
	{"slow", "lag", "performance", "speed", "loading"},
	{"login", "account", "password", "sign", "authentication"},
	{"price", "cost", "expensive", "subscription", "payment", "money"},
	{"feature", "missing", "need", "add", "want", "wish"},
	{"ui", "design", "interface", "layout", "confusing"},
	{"customer", "support", "help", "service", "response"},
}

// DefaultClusterCount picks a target cluster count scaled to review volume.
func DefaultClusterCount(n int) int {
	switch {
	case n < 20:
		return 2
	case n < 50:
		return 3
	case n < 100:
		return 4
	default:
		return 5
	}
}

// KeywordClusters assigns every review a cluster id in [0, min(k, len(reviews)))
// by counting keyword hits against the first k theme families. Reviews with no
// keyword hits are distributed round-robin by arrival position so every bucket
// can receive members even under sparse keyword coverage. Round-robin members
// may be semantically unrelated to their bucket; that is the documented
// coverage guarantee of the fallback, not a clustering quality claim.
func KeywordClusters(reviews []SentimentedReview, k int) []int {
	if len(reviews) == 0 {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if k > len(reviews) {
		k = len(reviews)
	}

	assignments := make([]int, len(reviews))
	for i, rev := range reviews {
		text := strings.ToLower(rev.Text)

		best := -1
		maxHits := 0
		for t := 0; t < k && t < len(themeKeywords); t++ {
			hits := 0
			for _, kw := range themeKeywords[t] {
				if strings.Contains(text, kw) {
					hits++
				}
			}
			if hits > maxHits {
				maxHits = hits
				best = t
			}
		}

		if best == -1 {
			best = i % k
		}
		assignments[i] = best
	}
	return assignments
}
