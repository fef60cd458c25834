package result

import (
	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

// Result is a card plus the score one strategy attached to it.
type Result struct {
	card     card.Card
	score    float64
	scored   bool
	strategy strategy.Name
}

// New creates a scored result. Negative scores are clamped to zero.
func New(c card.Card, score float64, by strategy.Name) Result {
	return Result{card: c, score: max(score, 0), scored: true, strategy: by}
}

// Unscored creates a result from the filter-only or basic path.
func Unscored(c card.Card, by strategy.Name) Result {
	return Result{card: c, strategy: by}
}

// Restore rebuilds a result from its serialized parts.
func Restore(c card.Card, score float64, scored bool, by strategy.Name) Result {
	return Result{card: c, score: score, scored: scored, strategy: by}
}

// Card returns the matched card.
func (r Result) Card() card.Card { return r.card }

// ID returns the card identifier.
func (r Result) ID() string { return r.card.ID() }

// Score returns the relevance score; 0 when HasScore is false.
func (r Result) Score() float64 { return r.score }

// HasScore reports whether a scoring strategy produced the result.
func (r Result) HasScore() bool { return r.scored }

// Strategy returns the name of the strategy that produced the result.
func (r Result) Strategy() strategy.Name { return r.strategy }
