package cardex

import (
	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
)

func cardToDomain(c *Card) (domcard.Card, error) {
	return domcard.New(domcard.Attributes{
		ID:         c.ID,
		Title:      c.Title,
		FullName:   c.FullName,
		JobTitle:   c.JobTitle,
		Company:    c.Company,
		Bio:        c.Bio,
		Email:      c.Email,
		Phone:      c.Phone,
		Website:    c.Website,
		Category:   c.Category,
		OwnerID:    c.OwnerID,
		Visibility: domcard.Visibility(c.Visibility),
		Engagement: domcard.Engagement(c.Engagement),
		CreatedAt:  c.CreatedAt,
	})
}

func cardFromDomain(c domcard.Card) Card {
	a := c.Attributes()
	return Card{
		ID:         a.ID,
		Title:      a.Title,
		FullName:   a.FullName,
		JobTitle:   a.JobTitle,
		Company:    a.Company,
		Bio:        a.Bio,
		Email:      a.Email,
		Phone:      a.Phone,
		Website:    a.Website,
		Category:   a.Category,
		OwnerID:    a.OwnerID,
		Visibility: Visibility(a.Visibility),
		Engagement: Engagement(a.Engagement),
		CreatedAt:  a.CreatedAt,
	}
}

func queryToRequest(q *Query) (request.Request, error) {
	order := "desc"
	if q.Ascending {
		order = "asc"
	}
	return request.New(request.Params{
		Query:    q.Text,
		Limit:    q.Limit,
		Skip:     q.Skip,
		SortBy:   string(q.Sort),
		Order:    order,
		Strategy: string(q.Strategy),
		Filters: criteria.Filters{
			Category:       q.Filters.Category,
			OwnerID:        q.Filters.OwnerID,
			CreatedFrom:    q.Filters.From,
			CreatedTo:      q.Filters.To,
			IncludePrivate: q.Filters.IncludePrivate,
		},
	})
}

func pageFromDomain(p page.Page) Page {
	hits := make([]Hit, len(p.Results()))
	for i, r := range p.Results() {
		hits[i] = Hit{
			Card:     cardFromDomain(r.Card()),
			Score:    r.Score(),
			Scored:   r.HasScore(),
			Strategy: Strategy(r.Strategy()),
		}
	}
	return Page{
		Hits:       hits,
		Total:      p.Total(),
		Page:       p.Number(),
		TotalPages: p.TotalPages(),
		HasMore:    p.HasMore(),
		Strategy:   Strategy(p.Strategy()),
	}
}
