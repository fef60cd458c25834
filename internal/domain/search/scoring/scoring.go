// Package scoring implements the lexical relevance strategies. Every scorer is a pure function
// of (tokens, card, weights): no I/O, no shared state, safe for concurrent use.
package scoring

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	"github.com/kailas-cloud/cardex/internal/domain/search/token"
)

// Probabilistic defaults. Both are fixed approximations, not corpus statistics.
const (
	DefaultK1          = 1.2
	DefaultAvgFieldLen = 50.0
)

// Scorer attaches a relevance score to a card.
type Scorer interface {
	Name() strategy.Name
	// Match is the retrieval mode whose candidates this scorer can rank.
	Match() match.Mode
	Score(tokens []string, c card.Card, w card.Weights) float64
}

// Params tunes the probabilistic strategy.
type Params struct {
	K1          float64
	AvgFieldLen float64
}

// DefaultParams returns k1=1.2 and a 50-character average field.
func DefaultParams() Params {
	return Params{K1: DefaultK1, AvgFieldLen: DefaultAvgFieldLen}
}

func (p Params) withDefaults() Params {
	if p.K1 <= 0 {
		p.K1 = DefaultK1
	}
	if p.AvgFieldLen <= 0 {
		p.AvgFieldLen = DefaultAvgFieldLen
	}
	return p
}

// Frequency scores sum(weight * number of field words present in the token set).
type Frequency struct{}

// Name implements Scorer.
func (Frequency) Name() strategy.Name { return strategy.Frequency }

// Match implements Scorer.
func (Frequency) Match() match.Mode { return match.Substring }

// Score implements Scorer.
func (Frequency) Score(tokens []string, c card.Card, w card.Weights) float64 {
	if len(tokens) == 0 {
		return 0
	}
	set := token.NewSet(tokens)
	var total float64
	for _, fw := range w {
		total += fw.Weight * float64(match.CountWords(set, c.Text(fw.Field)))
	}
	return total
}

// Probabilistic scores each field as weight*((tf*(k1+1)) / (k1 + k1*(len/avgFieldLen)))
// where tf is the Frequency count and len the field length in characters.
type Probabilistic struct {
	params Params
}

// NewProbabilistic creates the strategy; non-positive params fall back to defaults.
func NewProbabilistic(p Params) Probabilistic {
	return Probabilistic{params: p.withDefaults()}
}

// Params returns the effective parameters.
func (p Probabilistic) Params() Params { return p.params.withDefaults() }

// Name implements Scorer.
func (Probabilistic) Name() strategy.Name { return strategy.Probabilistic }

// Match implements Scorer.
func (Probabilistic) Match() match.Mode { return match.Substring }

// Score implements Scorer.
func (p Probabilistic) Score(tokens []string, c card.Card, w card.Weights) float64 {
	if len(tokens) == 0 {
		return 0
	}
	params := p.Params()
	set := token.NewSet(tokens)
	var total float64
	for _, fw := range w {
		text := c.Text(fw.Field)
		tf := match.CountWords(set, text)
		if tf == 0 {
			continue
		}
		total += fw.Weight * FieldScore(tf, utf8.RuneCountInString(text), params)
	}
	return total
}

// FieldScore is the unweighted probabilistic term for one field.
func FieldScore(tf, fieldLen int, p Params) float64 {
	p = p.withDefaults()
	norm := float64(fieldLen) / p.AvgFieldLen
	return (float64(tf) * (p.K1 + 1)) / (p.K1 + p.K1*norm)
}

// Fuzzy scores like Frequency, but a field word counts when any token's letters appear in it in order.
type Fuzzy struct{}

// Name implements Scorer.
func (Fuzzy) Name() strategy.Name { return strategy.Fuzzy }

// Match implements Scorer.
func (Fuzzy) Match() match.Mode { return match.Subsequence }

// Score implements Scorer.
func (Fuzzy) Score(tokens []string, c card.Card, w card.Weights) float64 {
	if len(tokens) == 0 {
		return 0
	}
	var total float64
	for _, fw := range w {
		total += fw.Weight * float64(match.CountFuzzy(tokens, c.Text(fw.Field)))
	}
	return total
}

// For returns the scorer registered under name.
func For(name strategy.Name, p Params) (Scorer, error) {
	switch name {
	case strategy.Frequency:
		return Frequency{}, nil
	case strategy.Probabilistic:
		return NewProbabilistic(p), nil
	case strategy.Fuzzy:
		return Fuzzy{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

// Rank scores every candidate and orders the results by score, highest first.
// Ties keep candidate order, so the ranking is deterministic for a given candidate list.
func Rank(s Scorer, tokens []string, candidates []card.Card, w card.Weights) []result.Result {
	out := make([]result.Result, len(candidates))
	for i, c := range candidates {
		out[i] = result.New(c, s.Score(tokens, c, w), s.Name())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}
