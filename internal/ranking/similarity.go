package ranking

import (
	"regexp"
	"strings"
)

// A word token is a maximal run of alphanumeric/underscore characters.
var wordToken = regexp.MustCompile(`\w+`)

// Similarity computes the Jaccard similarity of the lowercase word-token
// sets of two texts: |intersection| / |union|, in [0,1]. If either text
// has no tokens the result is 0.0 rather than a division by zero.
//
// This is a bag-of-words overlap measure, not semantic similarity. It is
// the local stand-in for the AI-backed matching done elsewhere.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	words := wordToken.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
