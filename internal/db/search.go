package db

import "github.com/kailas-cloud/cardex/internal/domain/search/filter"

// FilterQuery is the input for a structural FT.SEARCH: pre-filters only, no scoring.
type FilterQuery struct {
	IndexName    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	SortBy       string // empty keeps index order
	SortAsc      bool
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
