package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// bindSearchParams decodes form-style query parameters.
func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	q := r.URL.Query()

	binds := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"limit", &p.Limit},
		{"skip", &p.Skip},
		{"sort", &p.Sort},
		{"order", &p.Order},
		{"strategy", &p.Strategy},
		{"category", &p.Category},
		{"owner_id", &p.OwnerId},
		{"from", &p.From},
		{"to", &p.To},
		{"include_private", &p.IncludePrivate},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

func bindSuggestParams(r *http.Request) (SuggestParams, error) {
	var p SuggestParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return SuggestParams{}, fmt.Errorf("invalid format for parameter q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return SuggestParams{}, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return p, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
