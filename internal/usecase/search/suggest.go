package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/match"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
)

// suggestFields are the display fields suggestions are drawn from, in preference order.
var suggestFields = []card.Field{card.FieldTitle, card.FieldFullName, card.FieldCompany}

type group struct {
	display string
	count   int
}

// Suggest returns autocomplete strings: matching cards grouped by the first display field
// that matches, most frequent first. A query without usable tokens suggests nothing.
func (s *Service) Suggest(ctx context.Context, q *request.Suggestion) ([]string, error) {
	if len(q.Tokens()) == 0 {
		return []string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	crit := criteria.Criteria{
		Terms:  q.Tokens(),
		Mode:   match.Substring,
		Fields: suggestFields,
		Limit:  s.cfg.MaxCandidates,
	}
	cards, err := s.retriever.FindCandidates(ctx, crit)
	if err != nil {
		s.log(ctx).Error("Suggestions failed", zap.Error(err))
		return nil, fmt.Errorf("suggestions: %w", domain.ErrSearchFailed)
	}

	return topGroups(groupByDisplay(cards, q.Tokens()), q.Limit()), nil
}

func groupByDisplay(cards []card.Card, tokens []string) map[string]*group {
	groups := make(map[string]*group)
	for _, c := range cards {
		for _, f := range suggestFields {
			v := strings.TrimSpace(c.Text(f))
			if !match.Any(match.Substring, tokens, v) {
				continue
			}
			k := strings.ToLower(v)
			if g, ok := groups[k]; ok {
				g.count++
			} else {
				groups[k] = &group{display: v, count: 1}
			}
			break
		}
	}
	return groups
}

func topGroups(groups map[string]*group, limit int) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		gi, gj := groups[keys[i]], groups[keys[j]]
		if gi.count != gj.count {
			return gi.count > gj.count
		}
		return keys[i] < keys[j]
	})

	out := make([]string, 0, min(limit, len(keys)))
	for _, k := range keys[:min(limit, len(keys))] {
		out = append(out, groups[k].display)
	}
	return out
}
