// Package page cuts an ordered result list into the response envelope.
package page

import (
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
)

// Page is one window of an ordered, deduplicated result list.
type Page struct {
	results    []result.Result
	total      int
	page       int
	totalPages int
	hasMore    bool
	strategy   strategy.Name
}

// Assemble applies skip/limit to ordered. total is the number of results that satisfied the
// filters, independent of the window. A skip past the end yields an empty page, never an error.
func Assemble(ordered []result.Result, total, skip, limit int, used strategy.Name) Page {
	limit = max(limit, 1)
	skip = max(skip, 0)
	total = max(total, 0)

	var window []result.Result
	if skip < len(ordered) {
		window = ordered[skip:min(skip+limit, len(ordered))]
	}
	window = append([]result.Result(nil), window...)

	return Page{
		results:    window,
		total:      total,
		page:       skip/limit + 1,
		totalPages: (total + limit - 1) / limit,
		hasMore:    skip+len(window) < total,
		strategy:   used,
	}
}

// Restore rebuilds a page from its serialized parts.
func Restore(results []result.Result, total, pageNum, totalPages int, hasMore bool, used strategy.Name) Page {
	return Page{
		results:    results,
		total:      total,
		page:       pageNum,
		totalPages: totalPages,
		hasMore:    hasMore,
		strategy:   used,
	}
}

// Empty is a page with no results.
func Empty(limit int, used strategy.Name) Page {
	return Assemble(nil, 0, 0, limit, used)
}

// Results returns the results in this window.
func (p Page) Results() []result.Result { return p.results }

// Total returns the number of results satisfying the filters.
func (p Page) Total() int { return p.total }

// Number returns the 1-based page number.
func (p Page) Number() int { return p.page }

// TotalPages returns ceil(total/limit).
func (p Page) TotalPages() int { return p.totalPages }

// HasMore reports whether results exist beyond this window.
func (p Page) HasMore() bool { return p.hasMore }

// Strategy returns the strategy that produced the ordering.
func (p Page) Strategy() strategy.Name { return p.strategy }
