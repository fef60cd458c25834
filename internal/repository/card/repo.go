package card

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// Retrieval defaults.
const (
	DefaultMaxCandidates = 1000
	DefaultScanBatch     = 500
	DefaultMaxScan       = 10000
)

// store is the consumer interface for card persistence and retrieval (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.FilterQuery) (int, error)
}

// Config tunes retrieval.
type Config struct {
	IndexName string
	KeyPrefix string
	Weights   domcard.Weights
	// MaxCandidates caps the cards returned by one FindCandidates call.
	MaxCandidates int
	// ScanBatch is the FT.SEARCH page size while scanning for text matches.
	ScanBatch int
	// MaxScan bounds how many filtered records one text retrieval may inspect.
	MaxScan int
}

func (c Config) withDefaults() Config {
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
	if c.ScanBatch <= 0 {
		c.ScanBatch = DefaultScanBatch
	}
	if c.MaxScan <= 0 {
		c.MaxScan = DefaultMaxScan
	}
	if len(c.Weights) == 0 {
		c.Weights = domcard.DefaultWeights()
	}
	return c
}

// Repo is the candidate retriever backed by a Redis FT index over card hashes.
// Structural filters run in the store; text containment runs here over the filtered records.
type Repo struct {
	store store
	cfg   Config
}

// New creates a card repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg.withDefaults()}
}

func (r *Repo) key(id string) string { return r.cfg.KeyPrefix + id }

// Save writes a card hash; the FT index picks it up asynchronously.
func (r *Repo) Save(ctx context.Context, c domcard.Card) error {
	if err := r.store.HSet(ctx, r.key(c.ID()), buildHashFields(c)); err != nil {
		return fmt.Errorf("save card %s: %w", c.ID(), err)
	}
	return nil
}

// SaveMany writes cards in one pipelined round-trip.
func (r *Repo) SaveMany(ctx context.Context, cards []domcard.Card) error {
	items := make([]db.HashSetItem, len(cards))
	for i, c := range cards {
		items[i] = db.HashSetItem{Key: r.key(c.ID()), Fields: buildHashFields(c)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("save %d cards: %w", len(cards), err)
	}
	return nil
}

// Get loads one card by id.
func (r *Repo) Get(ctx context.Context, id string) (domcard.Card, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcard.Card{}, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
		}
		return domcard.Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return parseHashFields(id, m), nil
}

// Delete removes a card.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	return nil
}

// FindCandidates returns the cards passing crit, newest first, ties by id.
// Text retrievals return at most MaxCandidates cards; filter-only retrievals page
// through up to MaxScan records. crit.Limit lowers either cap.
func (r *Repo) FindCandidates(ctx context.Context, crit criteria.Criteria) ([]domcard.Card, error) {
	limit := r.cfg.MaxCandidates
	if !crit.HasText() {
		limit = r.cfg.MaxScan
	}
	if crit.Limit > 0 {
		limit = min(limit, crit.Limit)
	}

	cards, _, err := r.scan(ctx, crit, limit)
	if err != nil {
		return nil, retrievalErr("find candidates", err)
	}
	sortNewestFirst(cards)
	return cards, nil
}

// CountCandidates returns how many cards pass crit. Without a text predicate the store
// counts exactly; with one, the count covers the first MaxScan filtered records.
func (r *Repo) CountCandidates(ctx context.Context, crit criteria.Criteria) (int, error) {
	if !crit.HasText() {
		q, err := r.filterQuery(crit.Filters)
		if err != nil {
			return 0, fmt.Errorf("count candidates: %w", err)
		}
		n, err := r.store.SearchCount(ctx, q)
		if err != nil {
			return 0, retrievalErr("count candidates", err)
		}
		return n, nil
	}

	_, n, err := r.scan(ctx, crit, 0)
	if err != nil {
		return 0, retrievalErr("count candidates", err)
	}
	return n, nil
}

// retrievalErr marks unreachable-store failures with domain.ErrStoreUnavailable.
func retrievalErr(op string, err error) error {
	if db.IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scan pages through the filtered records and keeps those matching the text predicate.
// keep bounds the cards collected (0 = collect none, only count).
func (r *Repo) scan(ctx context.Context, crit criteria.Criteria, keep int) ([]domcard.Card, int, error) {
	q, err := r.filterQuery(crit.Filters)
	if err != nil {
		return nil, 0, err
	}

	batch := r.cfg.ScanBatch
	if !crit.HasText() && keep > 0 {
		// every record matches: never read past keep
		batch = min(batch, keep)
	}

	var (
		out     []domcard.Card
		matched int
	)
	for offset := 0; offset < r.cfg.MaxScan; offset += batch {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		q.Offset, q.Limit = offset, min(batch, r.cfg.MaxScan-offset)
		res, err := r.store.SearchFilter(ctx, q)
		if err != nil {
			return nil, 0, err
		}

		for _, e := range res.Entries {
			c := parseHashFields(strings.TrimPrefix(e.Key, r.cfg.KeyPrefix), e.Fields)
			if !crit.Matches(c) {
				continue
			}
			matched++
			if len(out) < keep {
				out = append(out, c)
			}
		}

		if keep > 0 && len(out) >= keep {
			break
		}
		if len(res.Entries) < q.Limit || offset+len(res.Entries) >= res.Total {
			break
		}
	}
	return out, matched, nil
}

func (r *Repo) filterQuery(f criteria.Filters) (*db.FilterQuery, error) {
	expr, err := buildExpression(f)
	if err != nil {
		return nil, err
	}
	return &db.FilterQuery{
		IndexName:    r.cfg.IndexName,
		Filters:      expr,
		SortBy:       fieldCreatedAt,
		ReturnFields: returnFields,
	}, nil
}

// buildExpression maps structural filters onto the index schema.
// Private cards are excluded unless explicitly included.
func buildExpression(f criteria.Filters) (filter.Expression, error) {
	var must []filter.Condition

	add := func(key, value string) error {
		if value == "" {
			return nil
		}
		c, err := filter.NewMatch(key, value)
		if err != nil {
			return err
		}
		must = append(must, c)
		return nil
	}

	if !f.IncludePrivate {
		if err := add(fieldVisibility, string(domcard.Public)); err != nil {
			return filter.Expression{}, err
		}
	}
	if err := add(fieldCategory, f.Category); err != nil {
		return filter.Expression{}, err
	}
	if err := add(fieldOwnerID, f.OwnerID); err != nil {
		return filter.Expression{}, err
	}

	if f.HasDateRange() {
		var lo, hi *float64
		if !f.CreatedFrom.IsZero() {
			v := float64(f.CreatedFrom.UnixMilli())
			lo = &v
		}
		if !f.CreatedTo.IsZero() {
			v := float64(f.CreatedTo.UnixMilli())
			hi = &v
		}
		rng, err := filter.Between(lo, hi)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("created_at range: %w", err)
		}
		c, err := filter.NewRange(fieldCreatedAt, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	return filter.NewExpression(must, nil, nil)
}

func sortNewestFirst(cards []domcard.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		ti, tj := cards[i].CreatedAt(), cards[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return cards[i].ID() < cards[j].ID()
	})
}
