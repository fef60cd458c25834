package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	"github.com/kailas-cloud/cardex/internal/domain/search/scoring"
	"github.com/kailas-cloud/cardex/internal/domain/search/sorting"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	"github.com/kailas-cloud/cardex/internal/domain/search/token"
	"github.com/kailas-cloud/cardex/internal/logger"
	"github.com/kailas-cloud/cardex/internal/metrics"
)

// Service ranks cards: retrieval, concurrent scoring, merge, secondary sort, pagination.
type Service struct {
	retriever Retriever
	cache     Cache
	cfg       Config
	hybrid    []member
	params    scoring.Params
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a search service. cache can be nil.
func New(r Retriever, cache Cache, cfg Config, logger *zap.Logger) (*Service, error) {
	cfg = cfg.withDefaults()
	hybrid, err := buildMembers(cfg.Hybrid, cfg.Params)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		retriever: r,
		cache:     cache,
		cfg:       cfg,
		hybrid:    hybrid,
		params:    cfg.Params,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Search runs a ranked search. No results is an empty page; any failure of every retrieval
// path is reported as domain.ErrSearchFailed without the underlying cause.
func (s *Service) Search(ctx context.Context, req *request.Request) (page.Page, error) {
	start := time.Now()
	key := req.CacheKey()

	if pg, ok := s.fromCache(ctx, key); ok {
		s.observe(pg.Strategy(), "cached", start)
		return pg, nil
	}

	pg, err := s.search(ctx, req)
	if err != nil {
		s.observe(req.Strategy(), "error", start)
		s.log(ctx).Error("Search failed",
			zap.String("strategy", string(req.Strategy())),
			zap.Int("tokens", len(req.Tokens())),
			zap.Error(err),
		)
		return page.Page{}, domain.ErrSearchFailed
	}

	s.observe(pg.Strategy(), "ok", start)
	s.toCache(ctx, key, pg)
	return pg, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) (page.Page, error) {
	if !req.HasText() {
		return s.searchFilter(ctx, req)
	}

	members := s.hybrid
	used := strategy.Hybrid
	if req.Strategy().IsScorer() {
		sc, err := scoring.For(req.Strategy(), s.params)
		if err != nil {
			return page.Page{}, err
		}
		members = []member{{scorer: sc, share: 1}}
		used = req.Strategy()
	}

	ranked, err := s.combine(ctx, req.Tokens(), req.Filters(), members)
	if err != nil {
		// caller gone: nothing left to answer
		if ctx.Err() != nil {
			return page.Page{}, fmt.Errorf("search canceled: %w", ctx.Err())
		}
		return s.degrade(ctx, req, err)
	}
	if ranked == nil {
		return s.degrade(ctx, req, errAllStrategiesFailed)
	}

	ordered := s.arrange(ranked, req)
	return page.Assemble(ordered, len(ordered), req.Skip(), req.Limit(), used), nil
}

// searchFilter serves queries without usable tokens: structural filters only, newest first.
// The whole filtered set (up to MaxBrowse) is sorted before the page is cut, so total,
// hasMore and the pages always describe the same list.
func (s *Service) searchFilter(ctx context.Context, req *request.Request) (page.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	crit := criteria.Criteria{Filters: req.Filters(), Limit: s.cfg.MaxBrowse}
	cards, err := s.retriever.FindCandidates(ctx, crit)
	if err != nil {
		return page.Page{}, fmt.Errorf("filter candidates: %w", err)
	}
	count, err := s.retriever.CountCandidates(ctx, crit)
	if err != nil {
		return page.Page{}, fmt.Errorf("count candidates: %w", err)
	}
	if count > len(cards) {
		s.log(ctx).Warn("Filter browse truncated",
			zap.Int("matched", count),
			zap.Int("browsable", len(cards)),
		)
	}

	results := make([]result.Result, len(cards))
	for i, c := range cards {
		results[i] = result.Unscored(c, strategy.Filter)
	}
	ordered := s.arrange(results, req)
	return page.Assemble(ordered, len(ordered), req.Skip(), req.Limit(), strategy.Filter), nil
}

var errAllStrategiesFailed = errors.New("every scoring strategy failed")

// degrade answers with the basic search: titles containing the whole query, unscored.
func (s *Service) degrade(ctx context.Context, req *request.Request, cause error) (page.Page, error) {
	reason := "retrieval"
	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		reason = "timeout"
	case errors.Is(cause, errAllStrategiesFailed):
		reason = "strategies"
	}
	metrics.SearchDegradedTotal.WithLabelValues(reason).Inc()
	s.log(ctx).Warn("Search degraded to basic",
		zap.String("strategy", string(req.Strategy())),
		zap.String("reason", reason),
		zap.Bool("store_unavailable", errors.Is(cause, domain.ErrStoreUnavailable)),
		zap.Error(cause),
	)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.BasicTimeout)
	defer cancel()

	crit := criteria.Criteria{
		Filters: req.Filters(),
		Terms:   []string{token.Normalize(req.Query())},
		Mode:    match.Substring,
		Fields:  []card.Field{card.FieldTitle},
		Limit:   s.cfg.MaxCandidates,
	}
	cards, err := s.retriever.FindCandidates(ctx, crit)
	if err != nil {
		return page.Page{}, fmt.Errorf("basic search after %w: %w", cause, err)
	}

	results := make([]result.Result, len(cards))
	for i, c := range cards {
		results[i] = result.Unscored(c, strategy.Basic)
	}
	ordered := s.arrange(results, req)
	return page.Assemble(ordered, len(ordered), req.Skip(), req.Limit(), strategy.Basic), nil
}

// arrange applies the secondary sort. Relevance keeps the ranking produced upstream
// (reversed for ascending); engagement keys reorder it stably.
func (s *Service) arrange(results []result.Result, req *request.Request) []result.Result {
	if req.SortKey() != sorting.Relevance {
		return sorting.Sort(results, req.SortKey(), req.Direction(), s.now())
	}
	if req.Direction() != sorting.Asc {
		return results
	}
	out := make([]result.Result, len(results))
	for i, r := range results {
		out[len(results)-1-i] = r
	}
	return out
}

func (s *Service) observe(used strategy.Name, status string, start time.Time) {
	metrics.SearchRequestsTotal.WithLabelValues(string(used), status).Inc()
	metrics.SearchDuration.WithLabelValues(string(used)).Observe(time.Since(start).Seconds())
}

// log prefers the request-scoped logger.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
