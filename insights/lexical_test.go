package insights

import "testing"

func negReview(text string) SentimentedReview {
	return SentimentedReview{
		Review:    Review{Text: text, Rating: 1},
		Sentiment: SentimentNegative,
	}
}

func TestKeywordClusters_AssignsByKeywordFamily(t *testing.T) {
	t.Parallel()

	reviews := []SentimentedReview{
		negReview("the app keeps crashing on launch"),
		negReview("so slow and laggy lately"),
		negReview("cannot login to my account"),
	}
	got := KeywordClusters(reviews, 3)
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("assignments=%v, want %v", got, want)
		}
	}
}

func TestKeywordClusters_TieKeepsFirstFamily(t *testing.T) {
	t.Parallel()

	// One hit in the crash family and one in the performance family: the
	// earlier family wins.
	reviews := []SentimentedReview{negReview("crash and slow")}
	got := KeywordClusters(reviews, 1)
	if got[0] != 0 {
		t.Fatalf("assignment=%d, want 0", got[0])
	}
}

func TestKeywordClusters_RoundRobinForNoHits(t *testing.T) {
	t.Parallel()

	reviews := []SentimentedReview{
		negReview("meh"),
		negReview("nope"),
		negReview("bleh"),
		negReview("ugh"),
	}
	got := KeywordClusters(reviews, 2)
	want := []int{0, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("assignments=%v, want %v", got, want)
		}
	}
}

func TestKeywordClusters_IDsAlwaysInRange(t *testing.T) {
	t.Parallel()

	reviews := []SentimentedReview{
		negReview("crash"),
		negReview("slow"),
		negReview("random text"),
		negReview("more random words"),
		negReview("price is too expensive"),
	}
	for _, k := range []int{1, 2, 3, 7, 50} {
		got := KeywordClusters(reviews, k)
		if len(got) != len(reviews) {
			t.Fatalf("k=%d: len=%d, want %d", k, len(got), len(reviews))
		}
		bound := k
		if bound > len(reviews) {
			bound = len(reviews)
		}
		for i, id := range got {
			if id < 0 || id >= bound {
				t.Fatalf("k=%d: assignments[%d]=%d outside [0,%d)", k, i, id, bound)
			}
		}
	}
}

func TestKeywordClusters_ClampsKToReviewCount(t *testing.T) {
	t.Parallel()

	got := KeywordClusters([]SentimentedReview{negReview("whatever")}, 5)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("assignments=%v, want [0]", got)
	}
}

func TestKeywordClusters_Empty(t *testing.T) {
	t.Parallel()

	if got := KeywordClusters(nil, 3); got != nil {
		t.Fatalf("assignments=%v, want nil", got)
	}
}

func TestDefaultClusterCount(t *testing.T) {
	t.Parallel()

	cases := []struct{ n, want int }{
		{1, 2}, {19, 2}, {20, 3}, {49, 3}, {50, 4}, {99, 4}, {100, 5}, {500, 5},
	}
	for _, tc := range cases {
		if got := DefaultClusterCount(tc.n); got != tc.want {
			t.Fatalf("DefaultClusterCount(%d)=%d, want %d", tc.n, got, tc.want)
		}
	}
}
