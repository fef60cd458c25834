package cardex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/cardex/internal/db"
	dbRedis "github.com/kailas-cloud/cardex/internal/db/redis"
	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	cardrepo "github.com/kailas-cloud/cardex/internal/repository/card"
	"github.com/kailas-cloud/cardex/internal/repository/querycache"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cardex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type cardStore interface {
	Save(ctx context.Context, c domcard.Card) error
	SaveMany(ctx context.Context, cards []domcard.Card) error
	Get(ctx context.Context, id string) (domcard.Card, error)
	Delete(ctx context.Context, id string) error
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (page.Page, error)
	Suggest(ctx context.Context, q *request.Suggestion) ([]string, error)
}

// Client is the cardex SDK entry point: the search engine embedded in-process over a Redis store.
type Client struct {
	store     db.Store
	cards     cardStore
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New connects to Redis, creates the card index if missing and wires the engine.
// The provided context is used for the readiness check and index bootstrap.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		index:     DefaultIndex,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("cardex: redis address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("cardex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("cardex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	weights := domcard.DefaultWeights()
	cards := cardrepo.New(store, cardrepo.Config{
		IndexName: cfg.index,
		KeyPrefix: cfg.keyPrefix,
		Weights:   weights,
	})
	if err := cards.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("cardex: %w", err)
	}

	var cache searchuc.Cache
	if cfg.cacheTTL > 0 {
		cache = querycache.NewMemory(cfg.cacheCap, cfg.cacheTTL, obs.cacheTotal())
	}

	searchSvc, err := searchuc.New(cards, cache, engineConfig(cfg, weights), nil)
	if err != nil {
		return nil, fmt.Errorf("cardex: %w", err)
	}

	return &Client{
		store:     store,
		cards:     cards,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store, store, cfg.index),
		obs:       obs,
	}, nil
}

func engineConfig(cfg *clientConfig, weights domcard.Weights) searchuc.Config {
	var shares []searchuc.Share
	for _, s := range cfg.hybrid {
		shares = append(shares, searchuc.Share{Strategy: strategy.Name(s.Strategy), Share: s.Share})
	}
	return searchuc.Config{
		Weights:  weights,
		Hybrid:   shares,
		Timeout:  cfg.timeout,
		CacheTTL: cfg.cacheTTL,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Save validates and stores a card, replacing any card with the same ID.
func (c *Client) Save(ctx context.Context, card Card) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("save", start, err, "id", card.ID) }()

	dc, err := cardToDomain(&card)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if err = c.cards.Save(ctx, dc); err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// SaveMany validates every card before writing any of them in one pipeline.
func (c *Client) SaveMany(ctx context.Context, cards []Card) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("save_many", start, err, "count", len(cards)) }()

	dcs := make([]domcard.Card, len(cards))
	for i := range cards {
		if dcs[i], err = cardToDomain(&cards[i]); err != nil {
			return fmt.Errorf("%w: card %d: %w", ErrInvalidSchema, i, err)
		}
	}
	if err = c.cards.SaveMany(ctx, dcs); err != nil {
		return fmt.Errorf("save cards: %w", err)
	}
	return nil
}

// Get returns a card by ID. A missing card is ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (card Card, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err, "id", id) }()

	dc, err := c.cards.Get(ctx, id)
	if err != nil {
		return Card{}, fmt.Errorf("get card: %w", err)
	}
	return cardFromDomain(dc), nil
}

// Delete removes a card by ID.
func (c *Client) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err, "id", id) }()

	if err = c.cards.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// Search runs a ranked search. When every retrieval path fails the error is ErrSearchFailed.
func (c *Client) Search(ctx context.Context, q Query) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "strategy", p.Strategy, "total", p.Total) }()

	req, err := queryToRequest(&q)
	if err != nil {
		return Page{}, err
	}
	pg, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(pg), nil
}

// Suggest returns up to limit autocomplete strings for prefix, most frequent first.
// limit <= 0 means 5; it is capped at 20.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) (out []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err, "count", len(out)) }()

	q, err := request.NewSuggestion(prefix, limit)
	if err != nil {
		return nil, err
	}
	out, err = c.searchSvc.Suggest(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}
