package card

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/cardex/internal/db"
	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	delFn          func(ctx context.Context, key string) error
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	searchFilterFn func(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error)
	searchCountFn  func(ctx context.Context, q *db.FilterQuery) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error) {
	if m.searchFilterFn != nil {
		return m.searchFilterFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, q *db.FilterQuery) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, q)
	}
	return 0, nil
}

func newTestRepo(t *testing.T, cfg Config) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	if cfg.IndexName == "" {
		cfg.IndexName = "cards-idx"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "card:"
	}
	return New(ms, cfg), ms
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testCard(id, title string, age time.Duration) domcard.Card {
	return domcard.Reconstruct(domcard.Attributes{
		ID:         id,
		Title:      title,
		FullName:   "Ada Lovelace",
		Company:    "Analytical Engines",
		Visibility: domcard.Public,
		Engagement: domcard.Engagement{Views: 10, Loves: 2},
		CreatedAt:  baseTime.Add(-age),
	})
}

// pagedStore serves entries as FT.SEARCH would, honoring Offset and Limit.
func pagedStore(ms *mockStore, prefix string, cards []domcard.Card, calls *int) {
	entries := make([]db.SearchEntry, len(cards))
	for i, c := range cards {
		entries[i] = db.SearchEntry{Key: prefix + c.ID(), Fields: buildHashFields(c)}
	}
	ms.searchFilterFn = func(_ context.Context, q *db.FilterQuery) (*db.SearchResult, error) {
		if calls != nil {
			*calls++
		}
		lo := min(q.Offset, len(entries))
		hi := min(q.Offset+q.Limit, len(entries))
		return &db.SearchResult{Total: len(entries), Entries: entries[lo:hi]}, nil
	}
}
