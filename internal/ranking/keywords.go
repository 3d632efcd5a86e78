package ranking

import (
	"regexp"
	"strings"
	"sync"
)

// DefaultSkillsVocabulary is the technical-skill keyword list scanned for
// in job descriptions and candidate artifacts.
var DefaultSkillsVocabulary = []string{
	"python", "fastapi", "react", "postgres", "docker", "kubernetes",
}

// DefaultCultureVocabulary lists keywords treated as culture-fit signals.
var DefaultCultureVocabulary = []string{
	"shipped", "launched", "owned", "documented",
}

// patternCache holds one compiled whole-word pattern per lowercased keyword.
// Vocabularies are small and fixed, so the cache never needs eviction.
var patternCache sync.Map

func keywordPattern(keyword string) *regexp.Regexp {
	k := strings.ToLower(keyword)
	if p, ok := patternCache.Load(k); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
	patternCache.Store(k, p)
	return p
}

// FindKeywords returns the vocabulary entries that occur in text as whole
// words, case-insensitively. Order follows the vocabulary, not the text,
// and each keyword appears at most once no matter how often it occurs.
// A substring inside a longer token does not count ("react" does not
// match "reactive").
func FindKeywords(text string, vocabulary []string) []string {
	if text == "" || len(vocabulary) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var found []string
	for _, kw := range vocabulary {
		if keywordPattern(kw).MatchString(lower) {
			found = append(found, kw)
		}
	}
	return found
}
