package search

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	"github.com/kailas-cloud/cardex/internal/domain/search/scoring"
	"github.com/kailas-cloud/cardex/internal/metrics"
)

// combine runs every member concurrently under one deadline and merges their rankings.
// A retrieval error or the deadline fails the whole fan-out; a scorer panic only drops
// that member. nil means no member produced a ranking.
func (s *Service) combine(
	ctx context.Context, tokens []string, filters criteria.Filters, members []member,
) ([]result.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	lists := make([][]result.Result, len(members))
	ok := make([]bool, len(members))

	// members with the same match mode share one retrieval; nothing is shared across searches
	var fetches singleflight.Group

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range members {
		g.Go(func() error {
			cards, err := s.candidates(gctx, &fetches, tokens, filters, m.scorer.Match())
			if err != nil {
				return fmt.Errorf("%s candidates: %w", m.scorer.Name(), err)
			}
			lists[i], ok[i] = s.rank(ctx, m.scorer, tokens, cards)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shares := make([]float64, 0, len(members))
	kept := make([][]result.Result, 0, len(members))
	for i, m := range members {
		if ok[i] {
			shares = append(shares, m.share)
			kept = append(kept, lists[i])
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}
	return merge(kept, shares, s.cfg.HybridDepth), nil
}

// candidates fetches the cards matching tokens under mode. Identical retrievals
// within one fan-out share a store round-trip through fetches.
func (s *Service) candidates(
	ctx context.Context, fetches *singleflight.Group,
	tokens []string, filters criteria.Filters, mode match.Mode,
) ([]card.Card, error) {
	crit := criteria.Criteria{
		Filters: filters,
		Terms:   tokens,
		Mode:    mode,
		Fields:  s.cfg.Weights.Fields(),
		Limit:   s.cfg.MaxCandidates,
	}

	ch := fetches.DoChan(crit.Key(), func() (any, error) {
		return s.retriever.FindCandidates(ctx, crit)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]card.Card), nil
	}
}

// rank scores candidates with one strategy. A panic while scoring is reported and
// turned into an empty contribution.
func (s *Service) rank(
	ctx context.Context, sc scoring.Scorer, tokens []string, cards []card.Card,
) (out []result.Result, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.SearchStrategyFailuresTotal.WithLabelValues(string(sc.Name())).Inc()
			s.log(ctx).Warn("Scoring strategy failed",
				zap.String("strategy", string(sc.Name())),
				zap.Any("panic", rec),
			)
			out, ok = nil, false
		}
	}()
	return scoring.Rank(sc, tokens, cards, s.cfg.Weights), true
}

// merge builds one duplicate-free list. Each list first contributes its best
// ceil(share*depth) entries in list order, then the remainder of every list follows in the
// same list order. Entries already taken are skipped, so earlier lists win ties.
func merge(lists [][]result.Result, shares []float64, depth int) []result.Result {
	size := 0
	for _, l := range lists {
		size += len(l)
	}
	seen := make(map[string]struct{}, size)
	out := make([]result.Result, 0, size)

	add := func(rs []result.Result) {
		for _, r := range rs {
			if _, dup := seen[r.ID()]; dup {
				continue
			}
			seen[r.ID()] = struct{}{}
			out = append(out, r)
		}
	}

	heads := make([]int, len(lists))
	for i, l := range lists {
		heads[i] = min(int(math.Ceil(shares[i]*float64(depth))), len(l))
		add(l[:heads[i]])
	}
	for i, l := range lists {
		add(l[heads[i]:])
	}
	return out
}
