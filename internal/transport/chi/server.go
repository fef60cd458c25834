package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
	"github.com/kailas-cloud/cardex/internal/domain/search/page"
	"github.com/kailas-cloud/cardex/internal/domain/search/request"
	"github.com/kailas-cloud/cardex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
)

// StrategyHeader carries the strategy that produced a search page.
const StrategyHeader = "X-Search-Strategy"

// Searcher runs ranked searches and suggestions.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (page.Page, error)
	Suggest(ctx context.Context, q *request.Suggestion) ([]string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the search HTTP API.
type Server struct {
	search          Searcher
	health          HealthChecker
	suggestionLimit int
	logger          *zap.Logger
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server. suggestionLimit applies when a request names none.
func NewServer(search Searcher, health HealthChecker, suggestionLimit int, logger *zap.Logger) *Server {
	s := &Server{
		search:          search,
		health:          health,
		suggestionLimit: suggestionLimit,
		logger:          logger,
	}
	s.errorHandlers = []errorHandler{
		invalidRequestHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrSearchFailed, http.StatusServiceUnavailable, ErrorResponseCodeSearchFailed),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/api/v1/search", s.SearchCards)
	r.Post("/api/v1/search", s.SearchCardsPost)
	r.Get("/api/v1/search/suggestions", s.SuggestCards)
}

// SearchCards handles GET /api/v1/search.
func (s *Server) SearchCards(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	s.runSearch(w, r, request.Params{
		Query:    deref(params.Q),
		Limit:    deref(params.Limit),
		Skip:     deref(params.Skip),
		SortBy:   deref(params.Sort),
		Order:    deref(params.Order),
		Strategy: deref(params.Strategy),
		Filters: criteria.Filters{
			Category:       deref(params.Category),
			OwnerID:        deref(params.OwnerId),
			CreatedFrom:    deref(params.From),
			CreatedTo:      deref(params.To),
			IncludePrivate: deref(params.IncludePrivate),
		},
	})
}

// SearchCardsPost handles POST /api/v1/search.
func (s *Server) SearchCardsPost(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p := request.Params{
		Query:    deref(body.Query),
		Limit:    deref(body.Limit),
		Skip:     deref(body.Skip),
		SortBy:   deref(body.SortBy),
		Order:    deref(body.Order),
		Strategy: deref(body.Strategy),
	}
	if f := body.Filters; f != nil {
		p.Filters = criteria.Filters{
			Category:       deref(f.Category),
			OwnerID:        deref(f.OwnerId),
			IncludePrivate: deref(f.IncludePrivate),
		}
		if f.DateRange != nil {
			p.Filters.CreatedFrom = deref(f.DateRange.From)
			p.Filters.CreatedTo = deref(f.DateRange.To)
		}
	}

	s.runSearch(w, r, p)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, p request.Params) {
	req, err := request.New(p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	pg, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set(StrategyHeader, string(pg.Strategy()))
	writeJSON(w, http.StatusOK, pageToResponse(pg))
}

// SuggestCards handles GET /api/v1/search/suggestions.
func (s *Server) SuggestCards(w http.ResponseWriter, r *http.Request) {
	params, err := bindSuggestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	limit := s.suggestionLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	q, err := request.NewSuggestion(deref(params.Q), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	suggestions, err := s.search.Suggest(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The reply carries the sentinel's own message, never the wrapped chain.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidRequestHandler reports validation failures verbatim; their messages are built from input only.
func invalidRequestHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func pageToResponse(pg page.Page) SearchResponse {
	items := make([]SearchResultItem, len(pg.Results()))
	for i, r := range pg.Results() {
		items[i] = resultToItem(r)
	}
	return SearchResponse{
		Results:      items,
		Total:        pg.Total(),
		Page:         pg.Number(),
		TotalPages:   pg.TotalPages(),
		HasMore:      pg.HasMore(),
		StrategyUsed: string(pg.Strategy()),
	}
}

func resultToItem(r result.Result) SearchResultItem {
	a := r.Card().Attributes()
	item := SearchResultItem{
		Id:         a.ID,
		Title:      a.Title,
		FullName:   a.FullName,
		JobTitle:   a.JobTitle,
		Company:    a.Company,
		Bio:        a.Bio,
		Email:      a.Email,
		Phone:      a.Phone,
		Website:    a.Website,
		Category:   a.Category,
		OwnerId:    a.OwnerID,
		Visibility: string(a.Visibility),
		Engagement: Engagement{
			Views:     a.Engagement.Views,
			Loves:     a.Engagement.Loves,
			Shares:    a.Engagement.Shares,
			Downloads: a.Engagement.Downloads,
		},
		CreatedAt: a.CreatedAt,
		Strategy:  string(r.Strategy()),
	}
	if r.HasScore() {
		score := r.Score()
		item.Score = &score
	}
	return item
}
