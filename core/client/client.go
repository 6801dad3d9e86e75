package client

import (
	"context"
	"errors"

	"github.com/leofalp/oaiclient/core/cost"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/observability"
)

// ErrNilTransport is returned by [New] when no transport is given.
var ErrNilTransport = errors.New("client: transport is nil")

// Client sends single-turn requests to a model: an optional system
// instruction followed by the user prompt. It keeps no history; the only
// state is its configuration, which may be changed between requests.
//
// A Client is not safe for concurrent use while its setters are being
// called. Requests themselves never mutate it.
type Client struct {
	transport         ai.Transport
	model             string
	systemInstruction string
	responseFormat    ai.ResponseFormat
	send              RequestFunc
}

// ClientOptions is the set of optional settings applied by [New].
type ClientOptions struct {
	SystemInstruction string
	ResponseFormat    ai.ResponseFormat
	Observer          observability.Provider
	Middlewares       []Middleware
	Pricing           cost.ModelCost
}

// WithSystemInstruction sets the instruction sent as the first message.
func WithSystemInstruction(instruction string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.SystemInstruction = instruction
	}
}

// WithResponseFormat sets the initial response format. See [Structured] to
// derive one from a Go type.
func WithResponseFormat(format ai.ResponseFormat) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.ResponseFormat = format
	}
}

// WithObserver enables tracing, metrics and logging of every request.
func WithObserver(observer observability.Provider) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Observer = observer
	}
}

// WithModelCost attaches a cost estimate to every result whose response
// reports token usage.
func WithModelCost(pricing cost.ModelCost) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Pricing = pricing
	}
}

// WithMiddleware appends middlewares to the request chain.
func WithMiddleware(middlewares ...Middleware) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// New creates a client on transport. The model name is passed through to the
// backend unvalidated. The transport stays owned by the caller and may be
// shared with other clients.
func New(transport ai.Transport, model string, opts ...func(*ClientOptions)) (*Client, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	middlewares := options.Middlewares
	if options.Observer != nil {
		middlewares = append([]Middleware{NewObservabilityMiddleware(options.Observer)}, middlewares...)
	}

	return &Client{
		transport:         transport,
		model:             model,
		systemInstruction: options.SystemInstruction,
		responseFormat:    options.ResponseFormat,
		send:              buildChain(transport, options.Pricing, middlewares),
	}, nil
}

// SetSystemInstruction replaces the instruction used by subsequent requests.
// An empty string removes it.
func (c *Client) SetSystemInstruction(instruction string) {
	c.systemInstruction = instruction
}

func (c *Client) SystemInstruction() string {
	return c.systemInstruction
}

// SetResponseFormat replaces the format used by subsequent requests.
// ai.PlainText() (or the zero value) switches back to text.
func (c *Client) SetResponseFormat(format ai.ResponseFormat) {
	c.responseFormat = format
}

func (c *Client) ResponseFormat() ai.ResponseFormat {
	return c.responseFormat
}

func (c *Client) Model() string {
	return c.model
}

// Transport returns the transport the client was built on.
func (c *Client) Transport() ai.Transport {
	return c.transport
}

// Request sends prompt and returns either text (plain-text format) or the
// decoded structured object, never both.
//
// Transport errors are returned unchanged; a response that lacks the expected
// payload yields an *ExtractionError. Nothing is retried.
func (c *Client) Request(ctx context.Context, prompt string) (*Result, error) {
	// snapshot: setters called while this request is in flight do not affect it
	call := Call{
		Model:    c.model,
		Messages: buildMessages(c.systemInstruction, prompt),
		Format:   c.responseFormat,
	}
	return c.send(ctx, call)
}

// buildMessages returns the system instruction, when non-empty, followed by
// the user prompt.
func buildMessages(instruction, prompt string) []ai.Message {
	messages := make([]ai.Message, 0, 2)
	if instruction != "" {
		messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: instruction})
	}
	return append(messages, ai.Message{Role: ai.RoleUser, Content: prompt})
}
