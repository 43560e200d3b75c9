package insights

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// issueKeywords are the complaint-signal words mined from review samples to
// seed titles and actions when the oracle output is unusable.
var issueKeywords = []string{
	"crash", "freeze", "bug", "error", "broken", "fail",
	"slow", "lag", "performance", "loading",
	"login", "account", "password", "sign",
	"price", "cost", "expensive", "subscription",
	"feature", "missing", "need", "add",
	"ui", "design", "interface", "confusing",
	"support", "help", "customer", "service",
	"ads", "advertisement", "spam",
	"update", "version", "change",
	"quality", "bad", "terrible", "awful",
}

// keywordTitles maps a top issue keyword to a human-readable title fragment.
var keywordTitles = map[string]string{
	"crash":   "App Crashes",
	"freeze":  "App Freezing",
	"bug":     "Bug Reports",
	"error":   "Error Messages",
	"slow":    "Slow Performance",
	"lag":     "Performance Lag",
	"login":   "Login Issues",
	"price":   "Pricing Concerns",
	"feature": "Missing Features",
	"ui":      "UI Problems",
	"support": "Support Issues",
	"ads":     "Ad Complaints",
	"update":  "Update Problems",
	"quality": "Quality Issues",
}

func tokenizeWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// extractTopKeywords counts whole-word issue-keyword occurrences across texts
// and returns up to n keywords ordered by count descending; ties keep the
// issueKeywords list order.
func extractTopKeywords(texts []string, n int) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, tok := range tokenizeWords(text) {
			counts[tok]++
		}
	}

	var found []string
	for _, kw := range issueKeywords {
		if counts[kw] > 0 {
			found = append(found, kw)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return counts[found[i]] > counts[found[j]]
	})

	if len(found) > n {
		found = found[:n]
	}
	return found
}

// titleFromKeywords builds a deterministic insight title from the two
// highest-frequency issue keywords found in the sample texts.
func titleFromKeywords(texts []string) string {
	top := extractTopKeywords(texts, 2)
	if len(top) == 0 {
		return "User Experience Issues"
	}

	first := keywordTitles[top[0]]
	if first == "" {
		first = capitalize(top[0])
	}
	if len(top) == 1 {
		return first
	}
	return fmt.Sprintf("%s & %s", first, capitalize(top[1]))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// isGenericAction reports whether an oracle-suggested action is missing, too
// short, or phrased so vaguely that a deterministic replacement is better.
func isGenericAction(action string) bool {
	a := strings.ToLower(strings.TrimSpace(action))
	if len(a) < 10 {
		return true
	}
	if strings.Contains(a, "investigate") || strings.Contains(a, "address user concerns") {
		return true
	}
	if strings.Contains(a, "improve") && len(a) < 25 {
		return true
	}
	return false
}

// specificAction synthesizes a concrete suggested action from the insight
// title and top issue keywords.
func specificAction(title string, keywords []string) string {
	t := strings.ToLower(title)

	switch {
	case strings.Contains(t, "crash") || strings.Contains(t, "freeze") || strings.Contains(t, "bug"):
		return "Fix crash/freeze bugs affecting users in latest version"
	case strings.Contains(t, "slow") || strings.Contains(t, "performance") || strings.Contains(t, "lag"):
		return "Optimize performance and reduce loading times for better UX"
	case strings.Contains(t, "login") || strings.Contains(t, "account") || strings.Contains(t, "password"):
		return "Improve login flow and fix authentication issues"
	case strings.Contains(t, "ad") && (strings.Contains(t, "complaint") || strings.Contains(t, "spam")):
		return "Reduce ad frequency and improve ad placement for free users"
	case strings.Contains(t, "price") || strings.Contains(t, "cost") || strings.Contains(t, "subscription"):
		return "Review pricing structure and communicate value more clearly"
	case strings.Contains(t, "feature") || strings.Contains(t, "missing"):
		return "Prioritize adding most-requested features from user feedback"
	case strings.Contains(t, "ui") || strings.Contains(t, "design") || strings.Contains(t, "interface"):
		return "Simplify UI/UX and improve navigation based on user feedback"
	case strings.Contains(t, "support") || strings.Contains(t, "help") || strings.Contains(t, "customer"):
		return "Improve customer support response time and quality"
	}

	if len(keywords) > 0 {
		return fmt.Sprintf("Address %s-related issues mentioned by users", keywords[0])
	}
	return fmt.Sprintf("Fix reported issues with %s", t)
}
