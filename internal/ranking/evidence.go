package ranking

import "strings"

// DefaultContextChars is how much surrounding text a snippet keeps on
// each side of a matched keyword.
const DefaultContextChars = 100

// EvidenceSnippets returns one short excerpt per keyword found in text,
// in keyword input order. Only the first whole-word occurrence of each
// keyword contributes a snippet; keywords with no match contribute
// nothing, so the result may be shorter than the keyword list. Each
// snippet spans contextChars characters before and after the match,
// clipped to the text bounds, trimmed, and wrapped in "..." markers.
func EvidenceSnippets(text string, keywords []string, contextChars int) []string {
	lower := strings.ToLower(text)

	var snippets []string
	for _, kw := range keywords {
		loc := keywordPattern(kw).FindStringIndex(lower)
		if loc == nil {
			continue
		}

		start := loc[0] - contextChars
		if start < 0 {
			start = 0
		}
		// Lowercasing can shift byte offsets for some Unicode text, so
		// clip both ends against the original.
		end := loc[1] + contextChars
		if end > len(text) {
			end = len(text)
		}
		if start > len(text) {
			start = len(text)
		}

		snippets = append(snippets, "..."+strings.TrimSpace(text[start:end])+"...")
	}
	return snippets
}
