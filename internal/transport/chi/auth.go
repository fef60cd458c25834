package chi

import (
	"net/http"
	"strings"
)

// publicPaths are probed by orchestration and scrapers without credentials.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

const bearerPrefix = "Bearer "

// BearerAuth returns a middleware that accepts only the listed API keys.
// An empty key list disables authentication.
func BearerAuth(apiKeys []string) func(http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			msg := checkBearer(r.Header.Get("Authorization"), keys)
			if msg != "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="cardex"`)
				writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkBearer returns an empty string when the header carries a known key.
func checkBearer(header string, keys map[string]struct{}) string {
	switch {
	case header == "":
		return "missing authorization header"
	case !strings.HasPrefix(header, bearerPrefix):
		return "authorization header must use Bearer scheme"
	}
	if _, ok := keys[header[len(bearerPrefix):]]; !ok {
		return "invalid api key"
	}
	return ""
}
