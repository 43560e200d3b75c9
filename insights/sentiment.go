package insights

// Classify derives a sentiment tag from a star rating: >= 4 is positive,
// <= 2 is negative, everything else is neutral. Out-of-range ratings go
// through the same thresholds; there is no error path.
func Classify(rating int) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// TagSentiment tags every review with its derived sentiment, preserving
// order. The input slice is not modified.
func TagSentiment(reviews []Review) []SentimentedReview {
	tagged := make([]SentimentedReview, 0, len(reviews))
	for _, r := range reviews {
		tagged = append(tagged, SentimentedReview{
			Review:    r,
			Sentiment: Classify(r.Rating),
		})
	}
	return tagged
}
