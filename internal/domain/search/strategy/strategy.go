package strategy

// Name identifies a scoring strategy or the hybrid combination of several.
type Name string

// Strategy names.
const (
	// Frequency counts query words present in each weighted field.
	Frequency Name = "frequency"
	// Probabilistic saturates per-field counts and normalizes by field length.
	Probabilistic Name = "probabilistic"
	// Fuzzy counts words that contain a query token's letters in order.
	Fuzzy Name = "fuzzy"
	// Hybrid runs several strategies concurrently and merges their lists.
	Hybrid Name = "hybrid"

	// Filter is reported when the query had no usable tokens.
	Filter Name = "filter"
	// Basic is reported when scoring was abandoned for the degraded substring search.
	Basic Name = "basic"
)

// IsValid reports whether n can be requested by a caller.
func (n Name) IsValid() bool {
	return n == Frequency || n == Probabilistic || n == Fuzzy || n == Hybrid
}

// IsScorer reports whether n names a single scoring strategy.
func (n Name) IsScorer() bool {
	return n == Frequency || n == Probabilistic || n == Fuzzy
}
