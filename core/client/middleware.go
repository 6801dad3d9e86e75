package client

import (
	"context"

	"github.com/leofalp/oaiclient/core/cost"
	"github.com/leofalp/oaiclient/providers/ai"
)

// Call is one request as it travels through the middleware chain. Messages
// and Format are the snapshot taken when Request was called.
type Call struct {
	Model    string
	Messages []ai.Message
	Format   ai.ResponseFormat
}

// RequestFunc performs a Call: the transport round trip plus extraction.
type RequestFunc func(ctx context.Context, call Call) (*Result, error)

// Middleware intercepts requests and results. Each Middleware receives the
// next RequestFunc in the chain and returns a new RequestFunc that wraps it.
// Middlewares are applied outermost-first: the first middleware in the slice
// is the outermost wrapper.
//
// A Middleware must return errors from next unchanged.
type Middleware func(next RequestFunc) RequestFunc

// buildChain constructs the linear middleware chain. The base function calls
// the transport directly, extracts the result and, when pricing is set,
// attaches a cost estimate.
func buildChain(transport ai.Transport, pricing cost.ModelCost, middlewares []Middleware) RequestFunc {
	var chain RequestFunc = func(ctx context.Context, call Call) (*Result, error) {
		result, err := perform(ctx, transport, call)
		if err != nil {
			return nil, err
		}
		if !pricing.IsZero() && result.Response != nil && result.Response.Usage != nil {
			estimate := pricing.Estimate(result.Response.Usage)
			result.cost = &estimate
		}
		return result, nil
	}

	// Apply middlewares in reverse so that middlewares[0] is outermost.
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}

// perform dispatches on the response format: plain text goes to Create,
// structured output to Parse.
func perform(ctx context.Context, transport ai.Transport, call Call) (*Result, error) {
	if call.Format.IsPlainText() {
		response, err := transport.Create(ctx, ai.CreateRequest{
			Model:    call.Model,
			Messages: call.Messages,
		})
		if err != nil {
			return nil, err
		}
		text, err := extractText(response)
		if err != nil {
			return nil, err
		}
		return NewTextResult(text, response), nil
	}

	response, err := transport.Parse(ctx, ai.ParseRequest{
		Model:    call.Model,
		Messages: call.Messages,
		Format:   call.Format,
	})
	if err != nil {
		return nil, err
	}
	parsed, err := extractParsed(response)
	if err != nil {
		return nil, err
	}
	return NewStructuredResult(parsed, response), nil
}
