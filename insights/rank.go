package insights

import (
	"sort"
	"strings"
	"time"
)

// Theme score weights: volume dominates, then negative intensity, then
// recency.
const (
	volumeWeight   = 0.5
	negativeWeight = 0.35
	recencyWeight  = 0.15

	recentWindow = 30 * 24 * time.Hour
)

// RankThemes derives a theme per category label by case-insensitive keyword
// matching against every review independently (one review can feed multiple
// themes) and returns the themes sorted by descending weighted score. Ties
// keep insertion order: positive categories first, then negative, each in the
// order given.
func RankThemes(reviews []SentimentedReview, positiveCategories, negativeCategories []string) []ThemeData {
	return rankThemesAt(reviews, positiveCategories, negativeCategories, time.Now())
}

type themeAccum struct {
	topic         string
	mentions      int
	negativeCount int
	recentCount   int
	reviews       []SentimentedReview
}

func rankThemesAt(reviews []SentimentedReview, positiveCategories, negativeCategories []string, now time.Time) []ThemeData {
	categories := make([]string, 0, len(positiveCategories)+len(negativeCategories))
	categories = append(categories, positiveCategories...)
	categories = append(categories, negativeCategories...)

	cutoff := now.Add(-recentWindow)

	var order []string
	accums := make(map[string]*themeAccum)

	for _, category := range categories {
		keywords := strings.Fields(strings.ToLower(category))
		if len(keywords) == 0 {
			continue
		}

		for _, rev := range reviews {
			if strings.TrimSpace(rev.Text) == "" {
				continue
			}
			text := strings.ToLower(rev.Text)
			matched := false
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}

			acc, ok := accums[category]
			if !ok {
				acc = &themeAccum{topic: category}
				accums[category] = acc
				order = append(order, category)
			}
			acc.mentions++
			acc.reviews = append(acc.reviews, rev)
			if rev.Sentiment == SentimentNegative {
				acc.negativeCount++
			}
			if rev.Date != nil && rev.Date.After(cutoff) {
				acc.recentCount++
			}
		}
	}

	// Normalization floors avoid division by zero on degenerate input.
	maxMentions := 1
	maxRecent := 1
	for _, acc := range accums {
		if acc.mentions > maxMentions {
			maxMentions = acc.mentions
		}
		if acc.recentCount > maxRecent {
			maxRecent = acc.recentCount
		}
	}

	themes := make([]ThemeData, 0, len(order))
	for _, topic := range order {
		acc := accums[topic]

		negativeRatio := 0.0
		if acc.mentions > 0 {
			negativeRatio = float64(acc.negativeCount) / float64(acc.mentions)
		}
		volume := float64(acc.mentions) / float64(maxMentions)
		recent := float64(acc.recentCount) / float64(maxRecent)

		themes = append(themes, ThemeData{
			Topic:         topic,
			Mentions:      acc.mentions,
			NegativeRatio: negativeRatio,
			RecentTrend:   recent,
			Score:         volumeWeight*volume + negativeWeight*negativeRatio + recencyWeight*recent,
			Reviews:       acc.reviews,
		})
	}

	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Score > themes[j].Score
	})
	return themes
}
