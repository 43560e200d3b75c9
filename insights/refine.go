package insights

import (
	"sort"
	"strings"
)

const (
	// splitThreshold is the minimum cluster size at which the refinement
	// stage checks for mixed topics. Smaller clusters pass through unchanged.
	splitThreshold = 10

	// minSubcluster is the minimum size a keyword sub-group needs to become
	// its own cluster after a split.
	minSubcluster = 5
)

// RefineClusters regroups clustered reviews and splits clusters that blend
// unrelated complaints. Clusters with fewer than splitThreshold members pass
// through unchanged. Larger clusters are re-classified by keyword family; if
// two or more keyword sub-groups reach minSubcluster members, the parent is
// replaced by those sub-groups and members outside every valid sub-group are
// dropped. Output cluster order follows ascending input cluster id, so the
// result is renumbered densely from 0.
func RefineClusters(reviews []SentimentedReview, assignments []int) [][]SentimentedReview {
	if len(reviews) == 0 || len(reviews) != len(assignments) {
		return nil
	}

	groups := make(map[int][]SentimentedReview)
	for i, rev := range reviews {
		id := assignments[i]
		groups[id] = append(groups[id], rev)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out [][]SentimentedReview
	for _, id := range ids {
		cluster := groups[id]
		if len(cluster) < splitThreshold {
			out = append(out, cluster)
			continue
		}

		sub := splitByKeywordFamily(cluster)
		if len(sub) < 2 {
			out = append(out, cluster)
			continue
		}
		out = append(out, sub...)
	}
	return out
}

// splitByKeywordFamily classifies each member of a cluster by its
// best-matching keyword family ("other" when nothing matches) and returns the
// families holding at least minSubcluster members, in family order. Fewer
// than two valid sub-groups means the caller keeps the cluster intact.
func splitByKeywordFamily(cluster []SentimentedReview) [][]SentimentedReview {
	buckets := make([][]SentimentedReview, len(themeKeywords))
	for _, rev := range cluster {
		family := bestKeywordFamily(rev.Text)
		if family < 0 {
			continue // "other": never forms its own cluster
		}
		buckets[family] = append(buckets[family], rev)
	}

	var valid [][]SentimentedReview
	for _, b := range buckets {
		if len(b) >= minSubcluster {
			valid = append(valid, b)
		}
	}
	if len(valid) < 2 {
		return nil
	}
	return valid
}

// bestKeywordFamily returns the index of the keyword family with the most
// hits in text, or -1 when no family matches. Ties keep the earlier family.
func bestKeywordFamily(text string) int {
	lower := strings.ToLower(text)
	best := -1
	maxHits := 0
	for t, family := range themeKeywords {
		hits := 0
		for _, kw := range family {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > maxHits {
			maxHits = hits
			best = t
		}
	}
	return best
}
