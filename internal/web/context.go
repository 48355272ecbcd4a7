package web

import (
	"net/http"

	"github.com/JonMunkholm/gdpmap/internal/core"
)

// withClient returns the request context carrying the client IP and
// User-Agent for render history.
func withClient(r *http.Request) *http.Request {
	ctx := core.ContextWithClient(r.Context(), clientIP(r), r.UserAgent())
	return r.WithContext(ctx)
}
