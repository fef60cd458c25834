package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/cardex/internal/domain/card"
	"github.com/kailas-cloud/cardex/internal/domain/search/criteria"
)

// Retriever fetches the cards a query could possibly match. It is privacy-aware: private cards
// come back only when the criteria include them.
type Retriever interface {
	FindCandidates(ctx context.Context, crit criteria.Criteria) ([]card.Card, error)
	CountCandidates(ctx context.Context, crit criteria.Criteria) (int, error)
}

// Cache stores serialized pages. Implementations swallow their own errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
