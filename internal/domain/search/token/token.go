// Package token normalizes free-text queries and card fields into comparable words.
package token

import (
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest token kept; anything shorter is noise.
const MinLength = 3

// Tokenize lower-cases query, splits it on whitespace and drops tokens shorter than MinLength.
// Order follows the query. An empty result means no free-text constraint.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinLength {
			out = append(out, f)
		}
	}
	return out
}

// Words splits a field value into lower-cased words without length filtering.
func Words(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Set is a token set; membership is all scoring looks at.
type Set map[string]struct{}

// NewSet builds a Set from tokens.
func NewSet(tokens []string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether word is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Normalize trims and lower-cases a display value for grouping.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
