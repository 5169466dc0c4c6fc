package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/nerdwave-nick/pbsdex/internal/api/common"
	"github.com/rs/cors"
)

// Controller registers a group of related routes.
type Controller interface {
	RegisterRoutes(rctx common.RouteCreationContext)
}

// MakeRouter mounts every controller's routes on the mux behind a
// permissive CORS wrapper; the dex is a public read-only API consumed by
// browser frontends.
func MakeRouter(mux *http.ServeMux, controllers []Controller) http.Handler {
	humaAPI := humago.New(mux, huma.DefaultConfig("pbsdex", "0.1.0"))
	rctx := common.RouteCreationContext{API: humaAPI}
	for _, controller := range controllers {
		controller.RegisterRoutes(rctx)
	}
	return cors.Default().Handler(mux)
}
