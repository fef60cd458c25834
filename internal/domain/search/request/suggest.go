package request

import (
	"fmt"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/token"
)

// Suggestion limits.
const (
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20
)

// Suggestion is a validated autocomplete query.
type Suggestion struct {
	query  string
	tokens []string
	limit  int
}

// NewSuggestion clamps limit into [1, 20], defaulting to 5.
func NewSuggestion(query string, limit int) (Suggestion, error) {
	if len(query) > MaxQueryLength {
		return Suggestion{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return Suggestion{
		query:  query,
		tokens: token.Tokenize(query),
		limit:  min(limit, MaxSuggestionLimit),
	}, nil
}

// Query returns the raw prefix text.
func (s *Suggestion) Query() string { return s.query }

// Tokens returns the normalized tokens.
func (s *Suggestion) Tokens() []string { return s.tokens }

// Limit returns the maximum number of suggestions.
func (s *Suggestion) Limit() int { return s.limit }
