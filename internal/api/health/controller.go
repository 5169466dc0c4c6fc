package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/pbsdex/internal/api/common"
)

type HealthzBody struct {
	Body   json.RawMessage
	Status int
}

type Controller struct{}

func MakeController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	common.AddHumaRoute(rctx, c.Healthz, huma.Operation{
		Method: http.MethodGet,
		Path:   "/healthz",
		Tags:   []string{"Health"},
	})
}

// Healthz is a liveness check for confirming the server is up and
// serving requests.
func (c *Controller) Healthz(_ context.Context, _ *struct{}) (*HealthzBody, huma.StatusError) {
	return &HealthzBody{Body: []byte(`{"status":"ok"}`), Status: http.StatusOK}, nil
}
