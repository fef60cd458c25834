package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	"github.com/kailas-cloud/cardex/internal/domain/search/scoring"
	"github.com/kailas-cloud/cardex/internal/domain/search/strategy"
	"github.com/kailas-cloud/cardex/internal/metrics"
)

// engineers is a small corpus; frequency ranks b(12) a(10) c(8) d(0) for "engineer".
func engineers() []card.Card {
	return []card.Card{
		newCard("a", withTitle("Platform Engineer")),
		newCard("b", withTitle("Engineer"), withBio("engineer by trade")),
		newCard("c", withName("Ann Engineer")),
		newCard("d", withBio("engineering lead")),
		newCard("e", withTitle("Chef")),
		newCard("f", withTitle("Engineer"), private()),
	}
}

func TestSearch_FrequencyTitleBeatsBio(t *testing.T) {
	ret := &memRetriever{cards: []card.Card{
		newCard("c1", withTitle("Senior Engineer")),
		newCard("c2", withTitle("Product Manager"), withBio("Former engineer at Acme")),
		newCard("c3", withTitle("Chef"), withBio("Loves pasta")),
	}}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{
		Query: "engineer", Strategy: "frequency",
	}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := pageIDs(pg); !slices.Equal(got, []string{"c1", "c2"}) {
		t.Fatalf("ids = %v", got)
	}
	if pg.Total() != 2 || pg.Strategy() != strategy.Frequency {
		t.Errorf("total=%d strategy=%s", pg.Total(), pg.Strategy())
	}
	rs := pg.Results()
	if rs[0].Score() <= rs[1].Score() {
		t.Errorf("title match %v should outscore bio match %v", rs[0].Score(), rs[1].Score())
	}
	if !rs[0].HasScore() {
		t.Error("scored result expected")
	}
}

func TestSearch_HybridNoDuplicates(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer", Limit: 100}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	got := pageIDs(pg)
	if !slices.Equal(got, []string{"b", "a", "c", "d"}) {
		t.Fatalf("ids = %v", got)
	}
	seen := map[string]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate %s", id)
		}
		seen[id] = true
	}
	if pg.Total() != 4 || pg.Strategy() != strategy.Hybrid {
		t.Errorf("total=%d strategy=%s", pg.Total(), pg.Strategy())
	}
}

func TestSearch_HybridMixesStrategies(t *testing.T) {
	ret := &memRetriever{cards: []card.Card{
		newCard("exact", withTitle("Engineer")),
		newCard("typo", withTitle("Engineeer")),
	}}
	svc := newTestService(t, ret, nil, Config{Hybrid: []Share{
		{Strategy: strategy.Frequency, Share: 0.5},
		{Strategy: strategy.Fuzzy, Share: 0.5},
	}})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"exact", "typo"}) {
		t.Fatalf("ids = %v", got)
	}
	rs := pg.Results()
	if rs[0].Strategy() != strategy.Frequency || rs[1].Strategy() != strategy.Fuzzy {
		t.Errorf("strategies = %s, %s", rs[0].Strategy(), rs[1].Strategy())
	}
	if pg.Total() != 2 {
		t.Errorf("total = %d", pg.Total())
	}
}

func TestSearch_CountIndependentOfWindow(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})
	ctx := context.Background()

	full, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engineer", Limit: 100}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var paged []string
	for skip := 0; skip < full.Total()+2; skip += 2 {
		pg, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engineer", Limit: 2, Skip: skip}))
		if err != nil {
			t.Fatalf("Search skip=%d: %v", skip, err)
		}
		if pg.Total() != full.Total() {
			t.Fatalf("skip=%d total=%d, want %d", skip, pg.Total(), full.Total())
		}
		if pg.Number() != skip/2+1 || pg.TotalPages() != 2 {
			t.Errorf("skip=%d page=%d/%d", skip, pg.Number(), pg.TotalPages())
		}
		if want := skip+2 < full.Total(); pg.HasMore() != want {
			t.Errorf("skip=%d hasMore=%v", skip, pg.HasMore())
		}
		paged = append(paged, pageIDs(pg)...)
	}
	if !slices.Equal(paged, pageIDs(full)) {
		t.Errorf("pages %v != full %v", paged, pageIDs(full))
	}
}

func TestSearch_IncludePrivate(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{
		Query: "engineer", Strategy: "frequency",
		Filters: criteria.Filters{IncludePrivate: true},
	}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"b", "a", "f", "c", "d"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestSearch_NoMatchIsEmptyPage(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "astronaut"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if pg.Total() != 0 || len(pg.Results()) != 0 || pg.HasMore() {
		t.Errorf("page = %+v", pg)
	}
}

func TestSearch_FuzzyMatchesSubsequence(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})
	ctx := context.Background()

	fz, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engnr", Strategy: "fuzzy"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if fz.Total() == 0 || fz.Strategy() != strategy.Fuzzy {
		t.Fatalf("fuzzy total=%d strategy=%s", fz.Total(), fz.Strategy())
	}

	fr, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engnr", Strategy: "frequency"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if fr.Total() != 0 {
		t.Errorf("frequency must not match a misspelling, total=%d", fr.Total())
	}
}

func TestSearch_RelevanceAscReverses(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{
		Query: "engineer", Strategy: "frequency", Order: "asc",
	}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"d", "c", "a", "b"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestSearch_FilterOnlyPopularity(t *testing.T) {
	ret := &memRetriever{cards: []card.Card{
		newCard("p1", withEngagement(100, 0, 0), withCategory("design")), // 40
		newCard("p2", withEngagement(0, 100, 0), withCategory("eng")),    // 60
		newCard("p3", withEngagement(10, 10, 10), withCategory("eng")),   // 12
		newCard("p4", withEngagement(1000, 1000, 1000), private()),
	}}
	svc := newTestService(t, ret, nil, Config{})
	ctx := context.Background()

	pg, err := svc.Search(ctx, newRequest(t, request.Params{SortBy: "popularity"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"p2", "p1", "p3"}) {
		t.Errorf("ids = %v", got)
	}
	if pg.Strategy() != strategy.Filter || pg.Total() != 3 {
		t.Errorf("strategy=%s total=%d", pg.Strategy(), pg.Total())
	}
	for _, r := range pg.Results() {
		if r.HasScore() {
			t.Errorf("%s: filter-only results carry no score", r.ID())
		}
	}

	pg, err = svc.Search(ctx, newRequest(t, request.Params{
		Query: "go ui", Filters: criteria.Filters{Category: "design"},
	}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"p1"}) {
		t.Errorf("short tokens should browse by filter, ids = %v", got)
	}
}

// browseCorpus is ten public cards, c00 newest; views grow with age, so c09 is the most popular.
func browseCorpus() []card.Card {
	var cards []card.Card
	for i := range 10 {
		cards = append(cards, newCard(fmt.Sprintf("c%02d", i),
			withAge(time.Duration(i)*time.Hour), withEngagement(int64(i)*100, 0, 0)))
	}
	return cards
}

func TestSearch_FilterOnlyPagesPastCandidateCap(t *testing.T) {
	ret := &memRetriever{cards: browseCorpus(), maxCandidates: 4}
	svc := newTestService(t, ret, nil, Config{MaxCandidates: 4})
	ctx := context.Background()

	pg, err := svc.Search(ctx, newRequest(t, request.Params{Skip: 6, Limit: 3}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"c06", "c07", "c08"}) {
		t.Errorf("ids = %v", got)
	}
	if pg.Total() != 10 || !pg.HasMore() || pg.TotalPages() != 4 {
		t.Errorf("total=%d hasMore=%v pages=%d", pg.Total(), pg.HasMore(), pg.TotalPages())
	}

	pg, err = svc.Search(ctx, newRequest(t, request.Params{SortBy: "popularity", Limit: 3}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"c09", "c08", "c07"}) {
		t.Errorf("popularity ids = %v", got)
	}
}

func TestSearch_FilterOnlyTotalMatchesBrowsable(t *testing.T) {
	ret := &memRetriever{cards: browseCorpus()}
	svc := newTestService(t, ret, nil, Config{MaxBrowse: 5})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Skip: 3, Limit: 3}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"c03", "c04"}) {
		t.Errorf("ids = %v", got)
	}
	if pg.Total() != 5 || pg.HasMore() || pg.TotalPages() != 2 {
		t.Errorf("total=%d hasMore=%v pages=%d", pg.Total(), pg.HasMore(), pg.TotalPages())
	}
}

func TestSearch_ConcurrentCallersIndependent(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	ret.findFn = func(ctx context.Context, crit criteria.Criteria) ([]card.Card, error) {
		started <- struct{}{}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-release:
			return ret.filter(crit), nil
		}
	}
	svc := newTestService(t, ret, nil, Config{Timeout: 5 * time.Second})
	reqA := newRequest(t, request.Params{Query: "engineer"})
	reqB := newRequest(t, request.Params{Query: "engineer"})

	type outcome struct {
		pg  page.Page
		err error
	}
	run := func(ctx context.Context, req *request.Request) <-chan outcome {
		ch := make(chan outcome, 1)
		go func() {
			pg, err := svc.Search(ctx, req)
			ch <- outcome{pg, err}
		}()
		return ch
	}
	waitStarted := func(who string) {
		t.Helper()
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s did not start its own retrieval", who)
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	resA := run(ctxA, reqA)
	waitStarted("first caller")
	resB := run(context.Background(), reqB)
	waitStarted("second caller")

	cancelA()
	if out := <-resA; !errors.Is(out.err, domain.ErrSearchFailed) {
		t.Errorf("canceled caller: expected ErrSearchFailed, got %v", out.err)
	}

	close(release)
	out := <-resB
	if out.err != nil {
		t.Fatalf("second caller: %v", out.err)
	}
	if out.pg.Strategy() != strategy.Hybrid || !slices.Equal(pageIDs(out.pg), []string{"b", "a", "c", "d"}) {
		t.Errorf("second caller: strategy=%s ids=%v", out.pg.Strategy(), pageIDs(out.pg))
	}
	if n := ret.finds.Load(); n < 2 {
		t.Errorf("finds = %d, each caller must run its own retrieval", n)
	}
}

func TestSearch_SkipPastEnd(t *testing.T) {
	var cards []card.Card
	for i := range 20 {
		cards = append(cards, newCard(fmt.Sprintf("c%02d", i), withAge(time.Duration(i)*time.Hour)))
	}
	svc := newTestService(t, &memRetriever{cards: cards}, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Limit: 10, Skip: 25}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(pg.Results()) != 0 || pg.HasMore() || pg.Total() != 20 || pg.TotalPages() != 2 {
		t.Errorf("results=%d hasMore=%v total=%d pages=%d",
			len(pg.Results()), pg.HasMore(), pg.Total(), pg.TotalPages())
	}
}

func TestSearch_TimeoutDegradesToBasic(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	ret.findFn = func(ctx context.Context, crit criteria.Criteria) ([]card.Card, error) {
		if len(crit.Fields) == 1 {
			return ret.filter(crit), nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	svc := newTestService(t, ret, nil, Config{Timeout: 20 * time.Millisecond})
	before := testutil.ToFloat64(metrics.SearchDegradedTotal.WithLabelValues("timeout"))

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "Engineer"}))
	if err != nil {
		t.Fatalf("expected degraded page, got %v", err)
	}
	if pg.Strategy() != strategy.Basic {
		t.Errorf("strategy = %s", pg.Strategy())
	}
	if got := pageIDs(pg); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("ids = %v", got)
	}
	if pg.Total() != 2 {
		t.Errorf("total = %d", pg.Total())
	}
	after := testutil.ToFloat64(metrics.SearchDegradedTotal.WithLabelValues("timeout"))
	if after-before != 1 {
		t.Errorf("degraded timeout delta = %v", after-before)
	}
}

func TestSearch_RetrievalErrorDegradesToBasic(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	ret.findFn = func(_ context.Context, crit criteria.Criteria) ([]card.Card, error) {
		if len(crit.Fields) == 1 {
			return ret.filter(crit), nil
		}
		return nil, errors.New("connection refused")
	}
	svc := newTestService(t, ret, nil, Config{})

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{
		Query: "platform engineer", Strategy: "probabilistic",
	}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if pg.Strategy() != strategy.Basic || !slices.Equal(pageIDs(pg), []string{"a"}) {
		t.Errorf("strategy=%s ids=%v", pg.Strategy(), pageIDs(pg))
	}
}

func TestSearch_AllPathsFail(t *testing.T) {
	ret := &memRetriever{findFn: func(context.Context, criteria.Criteria) ([]card.Card, error) {
		return nil, errors.New("dial tcp 10.0.0.1:6379: connection refused")
	}}
	svc := newTestService(t, ret, nil, Config{})

	_, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer"}))
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
	if err.Error() != "search failed" {
		t.Errorf("error leaks details: %q", err.Error())
	}
}

func TestSearch_FilterRetrievalFails(t *testing.T) {
	ret := &memRetriever{countFn: func(context.Context, criteria.Criteria) (int, error) {
		return 0, errors.New("index missing")
	}}
	svc := newTestService(t, ret, nil, Config{})

	_, err := svc.Search(context.Background(), newRequest(t, request.Params{}))
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
}

func TestSearch_StrategyPanicDropsContribution(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})
	svc.hybrid = []member{
		{scorer: panicScorer{}, share: 0.5},
		{scorer: scoring.Frequency{}, share: 0.5},
	}
	before := testutil.ToFloat64(metrics.SearchStrategyFailuresTotal.WithLabelValues("fuzzy"))

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if pg.Strategy() != strategy.Hybrid || !slices.Equal(pageIDs(pg), []string{"b", "a", "c", "d"}) {
		t.Errorf("strategy=%s ids=%v", pg.Strategy(), pageIDs(pg))
	}
	if after := testutil.ToFloat64(metrics.SearchStrategyFailuresTotal.WithLabelValues("fuzzy")); after-before != 1 {
		t.Errorf("failure delta = %v", after-before)
	}
}

func TestSearch_AllStrategiesPanicDegrade(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	svc := newTestService(t, ret, nil, Config{})
	svc.hybrid = []member{{scorer: panicScorer{}, share: 1}}

	pg, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if pg.Strategy() != strategy.Basic {
		t.Errorf("strategy = %s", pg.Strategy())
	}
}

func TestSearch_CallerCanceled(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	ret.findFn = func(ctx context.Context, crit criteria.Criteria) ([]card.Card, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ret.filter(crit), nil
	}
	svc := newTestService(t, ret, nil, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engineer"}))
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
}

func TestSearch_Cache(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	cache := newMemCache()
	svc := newTestService(t, ret, cache, Config{CacheTTL: time.Minute})
	ctx := context.Background()

	first, err := svc.Search(ctx, newRequest(t, request.Params{Query: "engineer", Strategy: "frequency"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	calls := ret.finds.Load()

	second, err := svc.Search(ctx, newRequest(t, request.Params{Query: "  ENGINEER ", Strategy: "frequency"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ret.finds.Load() != calls {
		t.Error("cached search should not hit the retriever")
	}
	if !slices.Equal(pageIDs(first), pageIDs(second)) || first.Total() != second.Total() {
		t.Errorf("cached page differs: %v vs %v", pageIDs(first), pageIDs(second))
	}
	if second.Results()[0].Score() != first.Results()[0].Score() || !second.Results()[0].HasScore() {
		t.Error("cached score lost")
	}
	if second.Results()[0].Card().Title() != "Engineer" {
		t.Errorf("cached card = %+v", second.Results()[0].Card().Attributes())
	}
	if cache.sets != 1 {
		t.Errorf("sets = %d", cache.sets)
	}
}

func TestSearch_DegradedNotCached(t *testing.T) {
	ret := &memRetriever{cards: engineers()}
	ret.findFn = func(_ context.Context, crit criteria.Criteria) ([]card.Card, error) {
		if len(crit.Fields) == 1 {
			return ret.filter(crit), nil
		}
		return nil, errors.New("busy")
	}
	cache := newMemCache()
	svc := newTestService(t, ret, cache, Config{CacheTTL: time.Minute})

	if _, err := svc.Search(context.Background(), newRequest(t, request.Params{Query: "engineer"})); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if cache.sets != 0 {
		t.Errorf("degraded page cached")
	}
}

func TestNew_InvalidHybrid(t *testing.T) {
	tests := []struct {
		name   string
		hybrid []Share
	}{
		{"nested hybrid", []Share{{Strategy: strategy.Hybrid, Share: 0.5}}},
		{"zero share", []Share{{Strategy: strategy.Frequency, Share: 0}}},
		{"share above one", []Share{{Strategy: strategy.Frequency, Share: 1.5}}},
		{"duplicate", []Share{
			{Strategy: strategy.Frequency, Share: 0.5},
			{Strategy: strategy.Frequency, Share: 0.5},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(&memRetriever{}, nil, Config{Hybrid: tt.hybrid}, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	ret := &memRetriever{cards: []card.Card{
		newCard("s1", withTitle("Go Developer")),
		newCard("s2", withTitle("go developer ")),
		newCard("s3", withTitle("Owner"), withCompany("DevShop")),
		newCard("s4", withTitle("Chef"), withName("Devon Lane")),
		newCard("s5", withTitle("Chef")),
	}}
	svc := newTestService(t, ret, nil, Config{})
	ctx := context.Background()

	q, err := request.NewSuggestion("dev", 0)
	if err != nil {
		t.Fatalf("NewSuggestion: %v", err)
	}
	got, err := svc.Suggest(ctx, &q)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !slices.Equal(got, []string{"Go Developer", "Devon Lane", "DevShop"}) {
		t.Errorf("suggestions = %v", got)
	}

	q, _ = request.NewSuggestion("dev", 1)
	got, _ = svc.Suggest(ctx, &q)
	if !slices.Equal(got, []string{"Go Developer"}) {
		t.Errorf("limited suggestions = %v", got)
	}
}

func TestSuggest_NoTokens(t *testing.T) {
	ret := &memRetriever{}
	svc := newTestService(t, ret, nil, Config{})

	q, _ := request.NewSuggestion("go", 5)
	got, err := svc.Suggest(context.Background(), &q)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
	if ret.finds.Load() != 0 {
		t.Error("retriever must not be called")
	}
}

func TestSuggest_RetrieverError(t *testing.T) {
	ret := &memRetriever{findFn: func(context.Context, criteria.Criteria) ([]card.Card, error) {
		return nil, errors.New("timeout")
	}}
	svc := newTestService(t, ret, nil, Config{})

	q, _ := request.NewSuggestion("developer", 5)
	_, err := svc.Suggest(context.Background(), &q)
	if !errors.Is(err, domain.ErrSearchFailed) || strings.Contains(err.Error(), "timeout") {
		t.Fatalf("got %v", err)
	}
}
