// Package match holds the text predicates shared by candidate retrieval and scoring.
package match

import (
	"strings"

	"github.com/kailas-cloud/cardex/internal/domain/search/token"
)

// Mode selects how a term is tested against a field.
type Mode string

// Match modes.
const (
	// Substring: the lower-cased field contains the term.
	Substring Mode = "substring"
	// Subsequence: some word of the field contains the term's letters in order, anything in between.
	Subsequence Mode = "subsequence"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == Substring || m == Subsequence
}

// Any reports whether at least one term matches text under mode.
func Any(mode Mode, terms []string, text string) bool {
	if text == "" || len(terms) == 0 {
		return false
	}
	switch mode {
	case Substring:
		lower := strings.ToLower(text)
		for _, t := range terms {
			if strings.Contains(lower, t) {
				return true
			}
		}
	case Subsequence:
		for _, w := range token.Words(text) {
			if FuzzyAny(terms, w) {
				return true
			}
		}
	}
	return false
}

// CountWords returns how many words of text are members of set.
func CountWords(set token.Set, text string) int {
	n := 0
	for _, w := range token.Words(text) {
		if set.Has(w) {
			n++
		}
	}
	return n
}

// CountFuzzy returns how many words of text are matched by at least one term pattern.
func CountFuzzy(terms []string, text string) int {
	n := 0
	for _, w := range token.Words(text) {
		if FuzzyAny(terms, w) {
			n++
		}
	}
	return n
}

// FuzzyAny reports whether any term is a subsequence of word.
func FuzzyAny(terms []string, word string) bool {
	for _, t := range terms {
		if IsSubsequence(t, word) {
			return true
		}
	}
	return false
}

// IsSubsequence reports whether the runes of pattern appear in s in order.
// An empty pattern matches nothing.
func IsSubsequence(pattern, s string) bool {
	if pattern == "" {
		return false
	}
	p := []rune(pattern)
	i := 0
	for _, r := range s {
		if r == p[i] {
			i++
			if i == len(p) {
				return true
			}
		}
	}
	return false
}
