// Package ingredient turns free-text recipe ingredient lines into structured
// records and reduces a batch of records to a small display ratio (e.g.
// flour:liquid:egg:fat).
//
// The pipeline is deliberately rule-based: a fixed dictionary normalizer, a
// regex quantity/unit parser, fixed unit-factor and density tables, and a
// percentage-bucket ratio reduction. There is no tokenizer and no stemming;
// name matching is substring containment ordered longest-phrase-first, which
// accepts partial-word false positives as the cost of simplicity.
//
// All components are pure, hold no cross-call state, and are safe for
// concurrent use by multiple goroutines.
package ingredient

import (
	"regexp"
	"strings"
)

var (
	parenRe = regexp.MustCompile(`\([^)]*\)`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalizer maps raw ingredient name text to one canonical name.
type Normalizer struct {
	lex *Lexicon
}

// NewNormalizer returns a Normalizer backed by the given lexicon.
func NewNormalizer(lex *Lexicon) *Normalizer {
	return &Normalizer{lex: lex}
}

// Normalize returns the canonical name for raw ingredient name text. It
// never fails: if no dictionary entry matches, the first whitespace token of
// the cleaned text is returned, and if the cleaned text is empty, the
// trimmed input.
//
// Matching order: compound phrases by descending length (lexicographic
// tie-break), then single-word ingredients in fixed order, then the token
// fallback. Longest-first ordering is what makes "packed light brown sugar"
// resolve to "light brown sugar" rather than "brown sugar" or "sugar".
func (n *Normalizer) Normalize(text string) string {
	cleaned := lowerTrim(text)

	// Filler prefixes and annotation suffixes can stack ("of the ..."),
	// so strip until the text stops changing.
	for {
		before := cleaned
		for _, p := range n.lex.prefixes {
			cleaned = strings.TrimPrefix(cleaned, p)
		}
		for _, s := range n.lex.suffixes {
			cleaned = strings.TrimSuffix(cleaned, s)
		}
		if cleaned == before {
			break
		}
	}

	cleaned = parenRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))

	for _, ce := range n.lex.compounds {
		if strings.Contains(cleaned, ce.phrase) {
			return ce.canonical
		}
	}

	for _, simple := range n.lex.simple {
		if strings.Contains(cleaned, simple) {
			return simple
		}
	}

	if fields := strings.Fields(cleaned); len(fields) > 0 {
		return fields[0]
	}
	return strings.TrimSpace(text)
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
