package matching

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+(?:-[a-z0-9]+)*`)

// keywordExtractor turns review text into the keyword set used by the
// overlap strategy.
type keywordExtractor struct {
	stop      map[string]bool
	always    map[string]bool
	minLength int
}

func newKeywordExtractor(cfg Config) *keywordExtractor {
	e := &keywordExtractor{
		stop:      make(map[string]bool, len(cfg.StopWords)),
		always:    make(map[string]bool, len(cfg.Keywords)),
		minLength: cfg.KeywordMinLength,
	}
	for _, w := range cfg.StopWords {
		e.stop[strings.ToLower(w)] = true
	}
	for _, w := range cfg.Keywords {
		e.always[strings.ToLower(w)] = true
	}
	return e
}

// Extract tokenizes case-folded text and keeps words that are either longer
// than the significance cutoff or on the curated always-include list, minus
// the stop-list. Order is preserved, duplicates removed.
func (e *keywordExtractor) Extract(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		if e.stop[tok] {
			continue
		}
		if len(tok) <= e.minLength && !e.always[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
