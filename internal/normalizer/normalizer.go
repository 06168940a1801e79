// Package normalizer reduces raw transaction descriptions to the canonical
// key used for similarity matching. The original description is kept for
// display; only the normalized form is embedded.
package normalizer

import (
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
)

// minTokenLength drops one-letter leftovers such as the "t" of "SHENG SIONG T-7".
const minTokenLength = 2

// Normalizer is safe for concurrent use; its stopword set is fixed at construction.
type Normalizer struct {
	stopwords map[string]struct{}
}

// New returns a Normalizer using the built-in stopword set plus extra.
// Extra words are matched case-insensitively like the built-in ones.
func New(extra ...string) *Normalizer {
	words := builtinStopwords()
	set := make(map[string]struct{}, len(words)+len(extra))
	for _, w := range append(words, extra...) {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &Normalizer{stopwords: set}
}

var defaultNormalizer = New()

// Default returns the shared Normalizer with only the built-in stopwords.
func Default() *Normalizer {
	return defaultNormalizer
}

// Normalize is Default().Normalize.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize lower-cases raw, strips emoji, digits and punctuation, removes
// stopwords and short tokens, and joins the survivors with single spaces.
// Lower-casing happens first so the result is idempotent.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r):
			return -1
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsLetter(r):
			return r
		default:
			return -1
		}
	}, strings.ToLower(gomoji.RemoveEmojis(raw)))

	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, tok := range tokens {
		if len([]rune(tok)) < minTokenLength || n.IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// IsStopword reports whether token is ignored for matching.
func (n *Normalizer) IsStopword(token string) bool {
	_, ok := n.stopwords[strings.ToLower(token)]
	return ok
}

// Len is the size of the stopword set.
func (n *Normalizer) Len() int {
	return len(n.stopwords)
}
