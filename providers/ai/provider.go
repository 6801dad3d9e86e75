package ai

import "context"

// Transport is an authenticated handle on a Responses-style backend. It is
// owned by the caller and may be shared by any number of clients.
type Transport interface {
	// Create requests a plain-text completion.
	Create(ctx context.Context, request CreateRequest) (*Response, error)

	// Parse requests output decoded against request.Format. Implementations
	// return an error when the format is plain text.
	Parse(ctx context.Context, request ParseRequest) (*Response, error)
}
