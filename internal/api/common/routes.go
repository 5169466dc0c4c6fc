package common

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// RouteCreationContext is handed to every controller so it can register
// its operations on the shared huma API.
type RouteCreationContext struct {
	API huma.API
}

// AddHumaRoute registers a handler that reports failures as
// huma.StatusError, filling in a generated operation id when the caller
// didn't set one.
func AddHumaRoute[I, O any](rctx RouteCreationContext, handler func(context.Context, *I) (*O, huma.StatusError), op huma.Operation) {
	if op.OperationID == "" {
		op.OperationID = huma.GenerateOperationID(op.Method, op.Path, new(O))
	}
	huma.Register(rctx.API, op, func(ctx context.Context, in *I) (*O, error) {
		out, err := handler(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}
