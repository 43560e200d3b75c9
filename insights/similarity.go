package insights

import "strings"

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range tokenizeWords(s) {
		if len(tok) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Jaccard returns token-level Jaccard similarity between two texts: the size
// of the token intersection over the size of the union, with tokens lowered
// and short tokens (<= 2 chars) dropped. Result is in [0, 1].
func Jaccard(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

// representativeQuote picks the candidate most similar to the cluster
// summary. Ties keep the first-seen maximum; a single candidate is returned
// as-is.
func representativeQuote(candidates []string, summary string) string {
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	best := candidates[0]
	bestScore := 0.0
	for _, c := range candidates {
		if score := Jaccard(c, summary); score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// quoteInSamples reports whether an oracle-returned quote appears in the
// sample set, either verbatim or as a prefix of a sample. Anything else is
// rejected so fabricated quotes never reach the output.
func quoteInSamples(quote string, samples []string) bool {
	q := strings.TrimSpace(quote)
	if q == "" {
		return false
	}
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == q || strings.HasPrefix(s, q) {
			return true
		}
	}
	return false
}
