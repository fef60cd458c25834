package chi

import "time"

// ErrorResponseCode is the machine-readable error class.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest    ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized  ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound      ErrorResponseCode = "not_found"
	ErrorResponseCodeSearchFailed  ErrorResponseCode = "search_failed"
	ErrorResponseCodeInternalError ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchParams are the GET /api/v1/search query parameters.
type SearchParams struct {
	Q              *string    `form:"q"`
	Limit          *int       `form:"limit"`
	Skip           *int       `form:"skip"`
	Sort           *string    `form:"sort"`
	Order          *string    `form:"order"`
	Strategy       *string    `form:"strategy"`
	Category       *string    `form:"category"`
	OwnerId        *string    `form:"owner_id"` //nolint:revive // generated-style name
	From           *time.Time `form:"from"`
	To             *time.Time `form:"to"`
	IncludePrivate *bool      `form:"include_private"`
}

// SuggestParams are the GET /api/v1/search/suggestions query parameters.
type SuggestParams struct {
	Q     *string `form:"q"`
	Limit *int    `form:"limit"`
}

// SearchRequest is the POST /api/v1/search body.
type SearchRequest struct {
	Query    *string        `json:"query,omitempty"`
	Limit    *int           `json:"limit,omitempty"`
	Skip     *int           `json:"skip,omitempty"`
	SortBy   *string        `json:"sortBy,omitempty"`
	Order    *string        `json:"order,omitempty"`
	Strategy *string        `json:"strategy,omitempty"`
	Filters  *SearchFilters `json:"filters,omitempty"`
}

// SearchFilters narrows a search structurally.
type SearchFilters struct {
	Category       *string    `json:"category,omitempty"`
	OwnerId        *string    `json:"ownerId,omitempty"` //nolint:revive // generated-style name
	DateRange      *DateRange `json:"dateRange,omitempty"`
	IncludePrivate *bool      `json:"includePrivate,omitempty"`
}

// DateRange bounds card creation time; either end may be open.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Engagement is the card counters block.
type Engagement struct {
	Views     int64 `json:"views"`
	Loves     int64 `json:"loves"`
	Shares    int64 `json:"shares"`
	Downloads int64 `json:"downloads"`
}

// SearchResultItem is a card with the score the producing strategy attached, if any.
type SearchResultItem struct {
	Id         string     `json:"id"` //nolint:revive // generated-style name
	Title      string     `json:"title,omitempty"`
	FullName   string     `json:"fullName,omitempty"`
	JobTitle   string     `json:"jobTitle,omitempty"`
	Company    string     `json:"company,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Website    string     `json:"website,omitempty"`
	Category   string     `json:"category,omitempty"`
	OwnerId    string     `json:"ownerId,omitempty"` //nolint:revive // generated-style name
	Visibility string     `json:"visibility"`
	Engagement Engagement `json:"engagement"`
	CreatedAt  time.Time  `json:"createdAt"`
	Score      *float64   `json:"score,omitempty"`
	Strategy   string     `json:"strategy"`
}

// SearchResponse is one ranked page.
type SearchResponse struct {
	Results      []SearchResultItem `json:"results"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	TotalPages   int                `json:"totalPages"`
	HasMore      bool               `json:"hasMore"`
	StrategyUsed string             `json:"strategyUsed"`
}

// SuggestionsResponse lists autocomplete strings, most frequent first.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
