package request

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/sorting"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New(Params{Query: "Senior Go engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "Senior Go engineer" {
		t.Errorf("Query() = %q", r.Query())
	}
	if !slices.Equal(r.Tokens(), []string{"senior", "engineer"}) || !r.HasText() {
		t.Errorf("Tokens() = %q", r.Tokens())
	}
	if r.Limit() != DefaultLimit || r.Skip() != 0 {
		t.Errorf("limit/skip = %d/%d", r.Limit(), r.Skip())
	}
	if r.Strategy() != strategy.Hybrid {
		t.Errorf("Strategy() = %q, want hybrid", r.Strategy())
	}
	if r.SortKey() != sorting.Relevance || r.Direction() != sorting.Desc {
		t.Errorf("sort = %q %q", r.SortKey(), r.Direction())
	}
}

func TestNew_Clamps(t *testing.T) {
	tests := []struct {
		name              string
		limit, skip       int
		wantLimit, wantSk int
	}{
		{"zero limit", 0, 0, DefaultLimit, 0},
		{"negative limit", -5, 3, DefaultLimit, 3},
		{"over max", 1000, 0, MaxLimit, 0},
		{"negative skip", 10, -1, 10, 0},
		{"exact max", MaxLimit, 40, MaxLimit, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(Params{Limit: tt.limit, Skip: tt.skip})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Limit() != tt.wantLimit || r.Skip() != tt.wantSk {
				t.Errorf("limit/skip = %d/%d, want %d/%d", r.Limit(), r.Skip(), tt.wantLimit, tt.wantSk)
			}
		})
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New(Params{
		Query:    "designer",
		SortBy:   "Trending",
		Order:    "ASC",
		Strategy: "FUZZY",
		Filters:  criteria.Filters{Category: " design ", OwnerID: "u1", IncludePrivate: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.SortKey() != sorting.Trending || r.Direction() != sorting.Asc {
		t.Errorf("sort = %q %q", r.SortKey(), r.Direction())
	}
	if r.Strategy() != strategy.Fuzzy {
		t.Errorf("Strategy() = %q", r.Strategy())
	}
	if f := r.Filters(); f.Category != "design" || f.OwnerID != "u1" || !f.IncludePrivate {
		t.Errorf("Filters() = %+v", f)
	}
}

func TestNew_Fallbacks(t *testing.T) {
	r, err := New(Params{Query: "x", SortBy: "newest", Strategy: "vector"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.SortKey() != sorting.Relevance {
		t.Errorf("unknown sort -> %q, want relevance", r.SortKey())
	}
	if r.Strategy() != strategy.Hybrid {
		t.Errorf("unknown strategy -> %q, want hybrid", r.Strategy())
	}
	if r.HasText() {
		t.Error("single-letter query should have no tokens")
	}
}

func TestNew_Rejects(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		p    Params
	}{
		{"query too long", Params{Query: strings.Repeat("x", MaxQueryLength+1)}},
		{"inverted range", Params{Filters: criteria.Filters{CreatedFrom: now, CreatedTo: now.Add(-time.Hour)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.p)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestRequest_CacheKey(t *testing.T) {
	a, _ := New(Params{Query: "Data  ENGINEER", Limit: 10})
	b, _ := New(Params{Query: "data engineer", Limit: 10})
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equivalent queries differ:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}

	c, _ := New(Params{Query: "data engineer", Limit: 10, Skip: 10})
	d, _ := New(Params{Query: "data engineer", Limit: 10, Filters: criteria.Filters{CreatedFrom: time.Unix(100, 0)}})
	for _, other := range []Request{c, d} {
		if other.CacheKey() == a.CacheKey() {
			t.Errorf("distinct requests share key %q", a.CacheKey())
		}
	}
}

func TestNewSuggestion(t *testing.T) {
	s, err := NewSuggestion("Eng", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Limit() != DefaultSuggestionLimit || !slices.Equal(s.Tokens(), []string{"eng"}) {
		t.Errorf("limit=%d tokens=%q", s.Limit(), s.Tokens())
	}
	if s, _ := NewSuggestion("eng", 500); s.Limit() != MaxSuggestionLimit {
		t.Errorf("limit = %d, want %d", s.Limit(), MaxSuggestionLimit)
	}
	if _, err := NewSuggestion(strings.Repeat("y", MaxQueryLength+1), 5); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v", err)
	}
}
