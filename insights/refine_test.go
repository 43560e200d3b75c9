package insights

import "testing"

func TestRefineClusters_SmallClustersPassThrough(t *testing.T) {
	t.Parallel()

	reviews := []SentimentedReview{
		negReview("crashes constantly"),
		negReview("price too high"),
		negReview("cannot login"),
		negReview("bad support"),
	}
	clusters := RefineClusters(reviews, []int{0, 0, 0, 0})
	if len(clusters) != 1 {
		t.Fatalf("clusters=%d, want 1", len(clusters))
	}
	if len(clusters[0]) != 4 {
		t.Fatalf("cluster size=%d, want 4", len(clusters[0]))
	}
}

func TestRefineClusters_SplitsMixedCluster(t *testing.T) {
	t.Parallel()

	var reviews []SentimentedReview
	for i := 0; i < 6; i++ {
		reviews = append(reviews, negReview("the app keeps crashing"))
	}
	for i := 0; i < 6; i++ {
		reviews = append(reviews, negReview("subscription price went up"))
	}
	assignments := make([]int, len(reviews))

	clusters := RefineClusters(reviews, assignments)
	if len(clusters) != 2 {
		t.Fatalf("clusters=%d, want 2", len(clusters))
	}
	if len(clusters[0]) != 6 || len(clusters[1]) != 6 {
		t.Fatalf("cluster sizes=%d,%d, want 6,6", len(clusters[0]), len(clusters[1]))
	}
}

func TestRefineClusters_KeepsClusterWithSingleDominantTopic(t *testing.T) {
	t.Parallel()

	// Only one keyword sub-group reaches the minimum size, so the cluster
	// stays intact.
	var reviews []SentimentedReview
	for i := 0; i < 8; i++ {
		reviews = append(reviews, negReview("the app keeps crashing"))
	}
	for i := 0; i < 4; i++ {
		reviews = append(reviews, negReview("subscription price went up"))
	}
	assignments := make([]int, len(reviews))

	clusters := RefineClusters(reviews, assignments)
	if len(clusters) != 1 {
		t.Fatalf("clusters=%d, want 1", len(clusters))
	}
	if len(clusters[0]) != 12 {
		t.Fatalf("cluster size=%d, want 12", len(clusters[0]))
	}
}

func TestRefineClusters_DropsUnmatchedMembersOnSplit(t *testing.T) {
	t.Parallel()

	var reviews []SentimentedReview
	for i := 0; i < 5; i++ {
		reviews = append(reviews, negReview("the app keeps crashing"))
	}
	for i := 0; i < 5; i++ {
		reviews = append(reviews, negReview("subscription price went up"))
	}
	reviews = append(reviews, negReview("meh"), negReview("whatever"))
	assignments := make([]int, len(reviews))

	clusters := RefineClusters(reviews, assignments)
	if len(clusters) != 2 {
		t.Fatalf("clusters=%d, want 2", len(clusters))
	}
	total := len(clusters[0]) + len(clusters[1])
	if total != 10 {
		t.Fatalf("members after split=%d, want 10", total)
	}
}

func TestRefineClusters_OrdersByInputClusterID(t *testing.T) {
	t.Parallel()

	reviews := []SentimentedReview{
		negReview("second cluster member"),
		negReview("first cluster member"),
	}
	clusters := RefineClusters(reviews, []int{1, 0})
	if len(clusters) != 2 {
		t.Fatalf("clusters=%d, want 2", len(clusters))
	}
	if clusters[0][0].Text != "first cluster member" {
		t.Fatalf("clusters[0][0].Text=%q, want first cluster member", clusters[0][0].Text)
	}
	if clusters[1][0].Text != "second cluster member" {
		t.Fatalf("clusters[1][0].Text=%q, want second cluster member", clusters[1][0].Text)
	}
}

func TestRefineClusters_NoOpOnKeywordClusters(t *testing.T) {
	t.Parallel()

	// Keyword clustering followed by refinement leaves small clusters exactly
	// as assigned, renumbered in cluster order.
	reviews := []SentimentedReview{
		negReview("keeps crashing on my phone"),
		negReview("way too slow to load"),
		negReview("login page rejects my password"),
		negReview("crashed again today"),
	}
	assignments := KeywordClusters(reviews, 3)
	clusters := RefineClusters(reviews, assignments)

	total := 0
	counts := make(map[int]int)
	for _, id := range assignments {
		counts[id]++
	}
	for i, cluster := range clusters {
		total += len(cluster)
		if len(cluster) != counts[i] {
			t.Fatalf("cluster %d size=%d, want %d", i, len(cluster), counts[i])
		}
	}
	if total != len(reviews) {
		t.Fatalf("total=%d, want %d", total, len(reviews))
	}
}

func TestRefineClusters_RejectsMismatchedInput(t *testing.T) {
	t.Parallel()

	if got := RefineClusters(nil, nil); got != nil {
		t.Fatalf("clusters=%v, want nil", got)
	}
	reviews := []SentimentedReview{negReview("text")}
	if got := RefineClusters(reviews, []int{0, 1}); got != nil {
		t.Fatalf("clusters=%v, want nil", got)
	}
}
