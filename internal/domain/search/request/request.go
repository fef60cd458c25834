package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/sorting"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	"github.com/kailas-cloud/cardex/internal/domain/search/token"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum accepted query length in bytes.
	MaxQueryLength = 512
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Params is the raw, unvalidated search input.
type Params struct {
	Query    string
	Limit    int
	Skip     int
	SortBy   string
	Order    string
	Strategy string
	Filters  criteria.Filters
}

// Request is a validated search query.
type Request struct {
	query     string
	tokens    []string
	limit     int
	skip      int
	sortKey   sorting.Key
	direction sorting.Direction
	strategy  strategy.Name
	filters   criteria.Filters
}

// New normalizes search parameters. Out-of-range paging values are clamped
// (limit<=0 -> 20, limit>100 -> 100, skip<0 -> 0), an unknown sort key means relevance,
// an unknown or empty strategy means hybrid. Only an oversized query or an inverted
// date range is rejected.
func New(p Params) (Request, error) {
	if len(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	f := p.Filters
	if !f.CreatedFrom.IsZero() && !f.CreatedTo.IsZero() && f.CreatedFrom.After(f.CreatedTo) {
		return Request{}, fmt.Errorf("%w: date range starts after it ends", domain.ErrInvalidRequest)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	name := strategy.Name(strings.ToLower(p.Strategy))
	if !name.IsValid() {
		name = strategy.Hybrid
	}

	f.Category = strings.TrimSpace(f.Category)
	f.OwnerID = strings.TrimSpace(f.OwnerID)

	return Request{
		query:     p.Query,
		tokens:    token.Tokenize(p.Query),
		limit:     limit,
		skip:      max(p.Skip, 0),
		sortKey:   sorting.ParseKey(strings.ToLower(p.SortBy)),
		direction: sorting.ParseDirection(strings.ToLower(p.Order)),
		strategy:  name,
		filters:   f,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Tokens returns the normalized query tokens. Empty means filter-only browsing.
func (r *Request) Tokens() []string { return r.tokens }

// HasText reports whether the query carries at least one usable token.
func (r *Request) HasText() bool { return len(r.tokens) > 0 }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Skip returns the number of results to skip.
func (r *Request) Skip() int { return r.skip }

// SortKey returns the secondary sort key.
func (r *Request) SortKey() sorting.Key { return r.sortKey }

// Direction returns the sort direction.
func (r *Request) Direction() sorting.Direction { return r.direction }

// Strategy returns the requested strategy.
func (r *Request) Strategy() strategy.Name { return r.strategy }

// Filters returns the structural filters.
func (r *Request) Filters() criteria.Filters { return r.filters }

// CacheKey is a canonical rendering of everything that affects the response.
// Queries that tokenize identically share a key.
func (r *Request) CacheKey() string {
	f := r.filters
	parts := []string{
		"q=" + strings.Join(r.tokens, " "),
		"strategy=" + string(r.strategy),
		"sort=" + string(r.sortKey),
		"order=" + string(r.direction),
		"limit=" + strconv.Itoa(r.limit),
		"skip=" + strconv.Itoa(r.skip),
		"category=" + f.Category,
		"owner=" + f.OwnerID,
		"private=" + strconv.FormatBool(f.IncludePrivate),
	}
	if !f.CreatedFrom.IsZero() {
		parts = append(parts, "from="+strconv.FormatInt(f.CreatedFrom.UnixMilli(), 10))
	}
	if !f.CreatedTo.IsZero() {
		parts = append(parts, "to="+strconv.FormatInt(f.CreatedTo.UnixMilli(), 10))
	}
	return strings.Join(parts, "&")
}
