package search

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

// snapshot is the cached form of a page.
type snapshot struct {
	Results    []snapshotResult `json:"results"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	HasMore    bool             `json:"hasMore"`
	Strategy   string           `json:"strategy"`
}

type snapshotResult struct {
	Card     card.Attributes `json:"card"`
	Score    float64         `json:"score"`
	Scored   bool            `json:"scored"`
	Strategy string          `json:"strategy"`
}

func (s *Service) fromCache(ctx context.Context, key string) (page.Page, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return page.Page{}, false
	}
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return page.Page{}, false
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log(ctx).Warn("Failed to decode cached page", zap.Error(err))
		return page.Page{}, false
	}

	results := make([]result.Result, len(snap.Results))
	for i, r := range snap.Results {
		results[i] = result.Restore(card.Reconstruct(r.Card), r.Score, r.Scored, strategy.Name(r.Strategy))
	}
	return page.Restore(results, snap.Total, snap.Page, snap.TotalPages, snap.HasMore, strategy.Name(snap.Strategy)), true
}

// toCache stores ranked pages only; degraded answers are left to be retried.
func (s *Service) toCache(ctx context.Context, key string, pg page.Page) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 || pg.Strategy() == strategy.Basic {
		return
	}

	snap := snapshot{
		Results:    make([]snapshotResult, len(pg.Results())),
		Total:      pg.Total(),
		Page:       pg.Number(),
		TotalPages: pg.TotalPages(),
		HasMore:    pg.HasMore(),
		Strategy:   string(pg.Strategy()),
	}
	for i, r := range pg.Results() {
		snap.Results[i] = snapshotResult{
			Card:     r.Card().Attributes(),
			Score:    r.Score(),
			Scored:   r.HasScore(),
			Strategy: string(r.Strategy()),
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		s.log(ctx).Warn("Failed to encode page for cache", zap.Error(err))
		return
	}
	s.cache.Set(ctx, key, data, s.cfg.CacheTTL)
}
