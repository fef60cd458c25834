package search

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/scoring"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

// Engine defaults.
const (
	DefaultTimeout      = 2 * time.Second
	DefaultBasicTimeout = time.Second
	DefaultHybridDepth  = 50
)

// Share is one hybrid member: the strategy and the fraction of the depth it contributes first.
type Share struct {
	Strategy strategy.Name
	Share    float64
}

// DefaultHybrid is frequency 60% then probabilistic 40%.
func DefaultHybrid() []Share {
	return []Share{
		{Strategy: strategy.Frequency, Share: 0.6},
		{Strategy: strategy.Probabilistic, Share: 0.4},
	}
}

// Config tunes the engine. Zero values take defaults.
type Config struct {
	Weights card.Weights
	Params  scoring.Params
	// Hybrid lists the strategies merged by a hybrid search, in merge order.
	Hybrid []Share
	// HybridDepth is the list length the hybrid shares are taken from.
	HybridDepth int
	// MaxCandidates caps each text retrieval; 0 leaves the retriever default.
	MaxCandidates int
	// MaxBrowse caps the filtered set sorted by a query without text; 0 leaves the
	// retriever default.
	MaxBrowse int
	// Timeout bounds the whole retrieval fan-out of one search.
	Timeout time.Duration
	// BasicTimeout bounds the degraded substring search.
	BasicTimeout time.Duration
	// CacheTTL is how long a page stays cached; 0 disables caching.
	CacheTTL time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.Weights) == 0 {
		c.Weights = card.DefaultWeights()
	}
	if len(c.Hybrid) == 0 {
		c.Hybrid = DefaultHybrid()
	}
	if c.HybridDepth <= 0 {
		c.HybridDepth = DefaultHybridDepth
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BasicTimeout <= 0 {
		c.BasicTimeout = DefaultBasicTimeout
	}
	return c
}

// member is a configured hybrid participant.
type member struct {
	scorer scoring.Scorer
	share  float64
}

func buildMembers(shares []Share, p scoring.Params) ([]member, error) {
	out := make([]member, 0, len(shares))
	seen := make(map[strategy.Name]bool, len(shares))
	for _, s := range shares {
		if seen[s.Strategy] {
			return nil, fmt.Errorf("hybrid strategy %q listed twice", s.Strategy)
		}
		seen[s.Strategy] = true

		if s.Share <= 0 || s.Share > 1 {
			return nil, fmt.Errorf("hybrid share for %q must be in (0, 1], got %g", s.Strategy, s.Share)
		}
		sc, err := scoring.For(s.Strategy, p)
		if err != nil {
			return nil, fmt.Errorf("hybrid: %w", err)
		}
		out = append(out, member{scorer: sc, share: s.Share})
	}
	return out, nil
}
