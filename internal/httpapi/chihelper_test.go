package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// contextWithChiRouteContext attaches rctx to req's context the way
// chi's router does internally, so handlers reading chi.URLParam can
// be exercised directly without running a full router.
func contextWithChiRouteContext(req *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}
