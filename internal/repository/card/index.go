package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/db"
	domcard "github.com/kailas-cloud/cardex/internal/domain/card"
)

// indexDefinition describes the card FT index. Text weights mirror the relevance table so
// store-side text ranking, if ever used, agrees with in-process scoring.
func indexDefinition(name, prefix string, weights domcard.Weights) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).Prefix(prefix)
	for _, f := range textFields {
		if w := weights.Of(f); w > 0 {
			b = b.WeightedText(string(f), w)
		} else {
			b = b.Text(string(f))
		}
	}
	b = b.Tag(fieldVisibility).
		Tag(fieldCategory).
		TagWithOpts(fieldOwnerID, "|", true).
		SortableNumeric(fieldCreatedAt).
		Numeric(fieldViews).
		Numeric(fieldLoves).
		Numeric(fieldShares).
		Numeric(fieldDownloads)
	return b.Build()
}

// EnsureIndex creates the card index; an existing index is left as is.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := indexDefinition(r.cfg.IndexName, r.cfg.KeyPrefix, r.cfg.Weights)
	if err != nil {
		return fmt.Errorf("card index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create card index: %w", err)
	}
	return nil
}
