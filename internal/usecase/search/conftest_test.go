package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// memRetriever filters an in-memory corpus the way the store-backed retriever does.
// Corpus order stands in for newest first.
type memRetriever struct {
	cards []card.Card
	// maxCandidates caps text retrievals like the store's MaxCandidates; 0 is uncapped.
	maxCandidates int
	findFn        func(ctx context.Context, crit criteria.Criteria) ([]card.Card, error)
	countFn       func(ctx context.Context, crit criteria.Criteria) (int, error)
	finds         atomic.Int32
}

func (m *memRetriever) FindCandidates(ctx context.Context, crit criteria.Criteria) ([]card.Card, error) {
	m.finds.Add(1)
	if m.findFn != nil {
		return m.findFn(ctx, crit)
	}

	out := m.filter(crit)
	limit := 0
	if crit.HasText() {
		limit = m.maxCandidates
	}
	if crit.Limit > 0 && (limit == 0 || crit.Limit < limit) {
		limit = crit.Limit
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRetriever) CountCandidates(ctx context.Context, crit criteria.Criteria) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, crit)
	}
	return len(m.filter(crit)), nil
}

func (m *memRetriever) filter(crit criteria.Criteria) []card.Card {
	var out []card.Card
	for _, c := range m.cards {
		f := crit.Filters
		if !f.IncludePrivate && !c.IsPublic() {
			continue
		}
		if f.Category != "" && c.Category() != f.Category {
			continue
		}
		if f.OwnerID != "" && c.OwnerID() != f.OwnerID {
			continue
		}
		if crit.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// memCache is a map-backed Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
}

// panicScorer fails on every card.
type panicScorer struct{}

func (panicScorer) Name() strategy.Name { return strategy.Fuzzy }
func (panicScorer) Match() match.Mode   { return match.Subsequence }
func (panicScorer) Score([]string, card.Card, card.Weights) float64 {
	panic("malformed field")
}

func newTestService(t *testing.T, ret Retriever, cache Cache, cfg Config) *Service {
	t.Helper()
	svc, err := New(ret, cache, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	svc.now = func() time.Time { return testNow }
	return svc
}

func newRequest(t *testing.T, p request.Params) *request.Request {
	t.Helper()
	req, err := request.New(p)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

type cardOpt func(*card.Attributes)

func withTitle(s string) cardOpt    { return func(a *card.Attributes) { a.Title = s } }
func withBio(s string) cardOpt      { return func(a *card.Attributes) { a.Bio = s } }
func withName(s string) cardOpt     { return func(a *card.Attributes) { a.FullName = s } }
func withCompany(s string) cardOpt  { return func(a *card.Attributes) { a.Company = s } }
func withCategory(s string) cardOpt { return func(a *card.Attributes) { a.Category = s } }
func private() cardOpt              { return func(a *card.Attributes) { a.Visibility = card.Private } }

func withEngagement(views, loves, shares int64) cardOpt {
	return func(a *card.Attributes) {
		a.Engagement = card.Engagement{Views: views, Loves: loves, Shares: shares}
	}
}

func withAge(d time.Duration) cardOpt {
	return func(a *card.Attributes) { a.CreatedAt = testNow.Add(-d) }
}

func newCard(id string, opts ...cardOpt) card.Card {
	a := card.Attributes{ID: id, Visibility: card.Public, CreatedAt: testNow}
	for _, o := range opts {
		o(&a)
	}
	return card.Reconstruct(a)
}

func pageIDs(pg page.Page) []string {
	out := make([]string, len(pg.Results()))
	for i, r := range pg.Results() {
		out[i] = r.ID()
	}
	return out
}
