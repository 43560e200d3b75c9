package insights

import (
	"context"
	"testing"
)

func TestCategorizeReviews_ParsesOracleCategories(t *testing.T) {
	t.Parallel()

	reviews := TagSentiment([]Review{
		{Text: "the interface is gorgeous and fast", Rating: 5},
		{Text: "ads everywhere, cannot read anything", Rating: 1},
	})
	gen := respondWith(`{"positive":["UI Design"],"negative":["Ads","Bugs"]}`)

	pos, neg := CategorizeReviews(context.Background(), gen, reviews, nil)
	if len(pos) != 1 || pos[0] != "UI Design" {
		t.Fatalf("positive=%v, want [UI Design]", pos)
	}
	if len(neg) != 2 || neg[0] != "Ads" || neg[1] != "Bugs" {
		t.Fatalf("negative=%v, want [Ads Bugs]", neg)
	}
}

func TestCategorizeReviews_FallbackOnError(t *testing.T) {
	t.Parallel()

	reviews := TagSentiment([]Review{{Text: "something went badly wrong", Rating: 1}})
	pos, neg := CategorizeReviews(context.Background(), failingGen, reviews, nil)
	if len(pos) != 3 || pos[0] != "User Experience" {
		t.Fatalf("positive=%v, want fixed fallback", pos)
	}
	if len(neg) != 3 || neg[0] != "Performance" {
		t.Fatalf("negative=%v, want fixed fallback", neg)
	}
}

func TestCategorizeReviews_FallbackPerEmptySide(t *testing.T) {
	t.Parallel()

	reviews := TagSentiment([]Review{{Text: "crashes every single morning", Rating: 1}})
	gen := respondWith(`{"positive":[],"negative":["Crashes"]}`)

	pos, neg := CategorizeReviews(context.Background(), gen, reviews, nil)
	if len(pos) != 3 || pos[0] != "User Experience" {
		t.Fatalf("positive=%v, want fixed fallback for the empty side", pos)
	}
	if len(neg) != 1 || neg[0] != "Crashes" {
		t.Fatalf("negative=%v, want [Crashes]", neg)
	}
}

func TestSampleTexts(t *testing.T) {
	t.Parallel()

	reviews := TagSentiment([]Review{
		{Text: "a wonderful experience overall", Rating: 5},
		{Text: "meh", Rating: 5}, // too short
		{Text: "completely broken since the update", Rating: 1},
		{Text: "another fine positive review", Rating: 4},
	})

	got := sampleTexts(reviews, SentimentPositive, 10)
	if len(got) != 2 || got[0] != "a wonderful experience overall" {
		t.Fatalf("samples=%v, want the two long positive texts", got)
	}

	if got := sampleTexts(reviews, SentimentPositive, 1); len(got) != 1 {
		t.Fatalf("samples=%v, want cap of 1", got)
	}
	if got := sampleTexts(reviews, SentimentNeutral, 10); len(got) != 0 {
		t.Fatalf("samples=%v, want none", got)
	}
}
