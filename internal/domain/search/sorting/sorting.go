// Package sorting re-orders ranked results by relevance or by an engagement heuristic.
package sorting

import (
	"math"
	"sort"
	"time"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
)

// Key selects the secondary sort heuristic.
type Key string

// Sort keys.
const (
	Relevance     Key = "relevance"
	Popularity    Key = "popularity"
	RecentPopular Key = "recent_popular"
	Trending      Key = "trending"
	Quality       Key = "quality"
)

// IsValid reports whether k is a known key.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, Popularity, RecentPopular, Trending, Quality:
		return true
	}
	return false
}

// ParseKey maps s to a Key; anything unknown means relevance.
func ParseKey(s string) Key {
	if k := Key(s); k.IsValid() {
		return k
	}
	return Relevance
}

// Direction is the sort order.
type Direction string

// Directions.
const (
	Desc Direction = "desc"
	Asc  Direction = "asc"
)

// ParseDirection maps s to a Direction; anything but "asc" means descending.
func ParseDirection(s string) Direction {
	if Direction(s) == Asc {
		return Asc
	}
	return Desc
}

// Heuristic constants.
const (
	recentDecayHours = 168.0 // one week
	trendingWindow   = 30.0  // days
	trendingFloor    = 0.1
)

// Completeness points per populated field.
var completeness = []struct {
	field  card.Field
	points float64
}{
	{card.FieldTitle, 10},
	{card.FieldFullName, 10},
	{card.FieldJobTitle, 8},
	{card.FieldCompany, 8},
	{card.FieldEmail, 6},
	{card.FieldPhone, 6},
	{card.FieldWebsite, 4},
	{card.FieldBio, 5},
}

// PopularityScore is views*0.4 + loves*0.6 + shares*0.2.
func PopularityScore(c card.Card) float64 {
	e := c.Engagement()
	return float64(e.Views)*0.4 + float64(e.Loves)*0.6 + float64(e.Shares)*0.2
}

// RecentPopularScore is exp(-ageHours/168) * (1 + loves*0.1).
func RecentPopularScore(c card.Card, now time.Time) float64 {
	timeWeight := math.Exp(-age(c, now).Hours() / recentDecayHours)
	return timeWeight * (1 + float64(c.Engagement().Loves)*0.1)
}

// TrendingScore is (loves + views*0.1) * max(0.1, 1 - ageDays/30).
func TrendingScore(c card.Card, now time.Time) float64 {
	e := c.Engagement()
	ageDays := age(c, now).Hours() / 24
	decay := math.Max(trendingFloor, 1-ageDays/trendingWindow)
	return (float64(e.Loves) + float64(e.Views)*0.1) * decay
}

// QualityScore is profile completeness plus loves*2 + views*0.1 + shares.
func QualityScore(c card.Card) float64 {
	var points float64
	for _, f := range completeness {
		if c.Text(f.field) != "" {
			points += f.points
		}
	}
	e := c.Engagement()
	return points + float64(e.Loves)*2 + float64(e.Views)*0.1 + float64(e.Shares)
}

// Value returns the number key orders r by.
func Value(key Key, r result.Result, now time.Time) float64 {
	c := r.Card()
	switch key {
	case Popularity:
		return PopularityScore(c)
	case RecentPopular:
		return RecentPopularScore(c, now)
	case Trending:
		return TrendingScore(c, now)
	case Quality:
		return QualityScore(c)
	default:
		return r.Score()
	}
}

// Sort returns results reordered by key in dir. The sort is stable: equal values keep
// their incoming order. Membership never changes and the input slice is left untouched.
func Sort(results []result.Result, key Key, dir Direction, now time.Time) []result.Result {
	key = ParseKey(string(key))

	type keyed struct {
		r result.Result
		v float64
	}
	items := make([]keyed, len(results))
	for i, r := range results {
		items[i] = keyed{r: r, v: Value(key, r, now)}
	}

	less := func(i, j int) bool { return items[i].v > items[j].v }
	if dir == Asc {
		less = func(i, j int) bool { return items[i].v < items[j].v }
	}
	sort.SliceStable(items, less)

	out := make([]result.Result, len(items))
	for i, it := range items {
		out[i] = it.r
	}
	return out
}

// Cards created in the future count as brand new.
func age(c card.Card, now time.Time) time.Duration {
	return max(now.Sub(c.CreatedAt()), 0)
}
