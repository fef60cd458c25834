package cardex

import (
	"context"

	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
)

// --- cardStore mock ---

type mockCardStore struct {
	saveFn     func(ctx context.Context, c domcard.Card) error
	saveManyFn func(ctx context.Context, cards []domcard.Card) error
	getFn      func(ctx context.Context, id string) (domcard.Card, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockCardStore) Save(ctx context.Context, c domcard.Card) error {
	return m.saveFn(ctx, c)
}

func (m *mockCardStore) SaveMany(ctx context.Context, cards []domcard.Card) error {
	return m.saveManyFn(ctx, cards)
}

func (m *mockCardStore) Get(ctx context.Context, id string) (domcard.Card, error) {
	return m.getFn(ctx, id)
}

func (m *mockCardStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, req *request.Request) (page.Page, error)
	suggestFn func(ctx context.Context, q *request.Suggestion) ([]string, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (page.Page, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Suggest(ctx context.Context, q *request.Suggestion) ([]string, error) {
	return m.suggestFn(ctx, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(cards cardStore, search searchUseCase) *Client {
	return &Client{
		cards:     cards,
		searchSvc: search,
	}
}
