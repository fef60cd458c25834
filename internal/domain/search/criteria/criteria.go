// Package criteria describes what the candidate retriever is asked for.
package criteria

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
)

// Filters are the structural predicates evaluated by the store.
type Filters struct {
	Category       string
	OwnerID        string
	CreatedFrom    time.Time // zero = open
	CreatedTo      time.Time // zero = open
	IncludePrivate bool
}

// HasDateRange reports whether either creation bound is set.
func (f Filters) HasDateRange() bool {
	return !f.CreatedFrom.IsZero() || !f.CreatedTo.IsZero()
}

// Criteria is a candidate query: structural filters plus an optional text predicate.
// A card qualifies when it passes Filters and, if Terms is non-empty, some term
// matches some of Fields under Mode.
type Criteria struct {
	Filters Filters
	Terms   []string
	Mode    match.Mode
	Fields  []card.Field
	// Limit caps the candidate set; 0 leaves the retriever default.
	Limit int
}

// HasText reports whether a text predicate applies.
func (c Criteria) HasText() bool {
	return len(c.Terms) > 0
}

// Matches evaluates the text predicate against a card. Without terms every card matches.
func (c Criteria) Matches(cd card.Card) bool {
	if !c.HasText() {
		return true
	}
	for _, f := range c.Fields {
		if match.Any(c.Mode, c.Terms, cd.Text(f)) {
			return true
		}
	}
	return false
}

// Key identifies the retrieval: two criteria with equal keys fetch the same candidates.
func (c Criteria) Key() string {
	f := c.Filters
	fields := make([]string, len(c.Fields))
	for i, fd := range c.Fields {
		fields[i] = string(fd)
	}
	return fmt.Sprintf("%s|%s|%s|%q|%q|%d|%d|%t|%d",
		c.Mode, strings.Join(fields, ","), strings.Join(c.Terms, " "),
		f.Category, f.OwnerID, unixMilli(f.CreatedFrom), unixMilli(f.CreatedTo), f.IncludePrivate,
		c.Limit)
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
