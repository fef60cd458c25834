package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// matchAll is the FT.SEARCH wildcard used when no pre-filter applies.
const matchAll = "*"

// SearchFilter returns the records matching q.Filters via FT.SEARCH.
func (s *Store) SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args := []string{q.IndexName, buildFilter(q.Filters)}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}
	if q.SortBy != "" {
		dir := "DESC"
		if q.SortAsc {
			dir = "ASC"
		}
		args = append(args, "SORTBY", q.SortBy, dir)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	raw, err := s.do(ctx, s.b().Arbitrary("FT.SEARCH").Args(args...).Build()).ToArray()
	if err != nil {
		return nil, searchError(err)
	}

	return parseListResult(raw)
}

// SearchCount returns the number of records matching q.Filters via FT.SEARCH LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, q *db.FilterQuery) (int, error) {
	if q.IndexName == "" {
		return 0, fmt.Errorf("index name is required")
	}

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(q.IndexName, buildFilter(q.Filters), "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, searchError(err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

func searchError(err error) error {
	switch {
	case isRedisErr(err, "syntax error"):
		return &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQuerySyntax, err)}
	case isUnknownIndex(err):
		return &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrIndexNotFound, err)}
	default:
		return opError(db.OpSearch, err)
	}
}

// --- Result parsing ---

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Filter building ---

// buildFilter translates filter.Expression into an FT.SEARCH query string.
func buildFilter(expr filter.Expression) string {
	if expr.IsEmpty() {
		return matchAll
	}

	parts := make([]string, 0, len(expr.Must())+len(expr.MustNot())+1)
	for _, cond := range expr.Must() {
		parts = append(parts, buildCondition(cond))
	}
	if len(expr.Should()) > 0 {
		alts := make([]string, 0, len(expr.Should()))
		for _, cond := range expr.Should() {
			alts = append(alts, buildCondition(cond))
		}
		parts = append(parts, "("+strings.Join(alts, " | ")+")")
	}
	for _, cond := range expr.MustNot() {
		parts = append(parts, "-"+buildCondition(cond))
	}

	return strings.Join(parts, " ")
}

func buildCondition(cond filter.Condition) string {
	switch {
	case cond.IsMatch():
		return fmt.Sprintf("@%s:{%s}", cond.Key(), tagEscaper.Replace(cond.Match()))
	case cond.IsRange():
		return buildNumericFilter(cond.Key(), *cond.Range())
	default:
		return ""
	}
}

func buildNumericFilter(key string, r filter.Range) string {
	lo, hi := "-inf", "+inf"

	if r.GT() != nil {
		lo = "(" + formatBound(*r.GT())
	} else if r.GTE() != nil {
		lo = formatBound(*r.GTE())
	}

	if r.LT() != nil {
		hi = "(" + formatBound(*r.LT())
	} else if r.LTE() != nil {
		hi = formatBound(*r.LTE())
	}

	return fmt.Sprintf("@%s:[%s %s]", key, lo, hi)
}

// formatBound avoids exponent notation for millisecond timestamps.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)
