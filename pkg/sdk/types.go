package cardex

import "time"

// Visibility controls whether a card appears in public searches.
type Visibility string

// Visibility constants. An empty visibility is stored as public.
const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Strategy names a scoring strategy.
type Strategy string

// Strategy constants. Filter and Basic are only ever reported, never requested.
const (
	StrategyHybrid        Strategy = "hybrid"
	StrategyFrequency     Strategy = "frequency"
	StrategyProbabilistic Strategy = "probabilistic"
	StrategyFuzzy         Strategy = "fuzzy"
	StrategyFilter        Strategy = "filter"
	StrategyBasic         Strategy = "basic"
)

// SortKey selects the secondary ordering.
type SortKey string

// Sort keys. Relevance keeps the strategy order.
const (
	SortRelevance     SortKey = "relevance"
	SortPopularity    SortKey = "popularity"
	SortRecentPopular SortKey = "recent_popular"
	SortTrending      SortKey = "trending"
	SortQuality       SortKey = "quality"
)

// Engagement holds the card interaction counters.
type Engagement struct {
	Views     int64
	Loves     int64
	Shares    int64
	Downloads int64
}

// Card is a business card.
type Card struct {
	ID         string
	Title      string
	FullName   string
	JobTitle   string
	Company    string
	Bio        string
	Email      string
	Phone      string
	Website    string
	Category   string
	OwnerID    string
	Visibility Visibility
	Engagement Engagement
	CreatedAt  time.Time
}

// Filters narrow a search structurally. Zero values mean no restriction.
type Filters struct {
	Category       string
	OwnerID        string
	From           time.Time
	To             time.Time
	IncludePrivate bool
}

// Query is a search request. Out-of-range paging is clamped rather than rejected.
type Query struct {
	Text      string
	Limit     int
	Skip      int
	Sort      SortKey
	Ascending bool
	Strategy  Strategy
	Filters   Filters
}

// Hit is a ranked card. Score is meaningful only when Scored is true.
type Hit struct {
	Card     Card
	Score    float64
	Scored   bool
	Strategy Strategy
}

// Page is one window of ranked hits.
type Page struct {
	Hits       []Hit
	Total      int
	Page       int
	TotalPages int
	HasMore    bool
	Strategy   Strategy
}
