package client

import (
	"context"
	"errors"

	"github.com/leofalp/oaiclient/internal/config"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/ai/openai"
)

// CredentialBroker yields a transport authenticated by a managed identity.
// Implementations fetch or validate a token when Transport is called, so a
// broker that cannot authenticate fails before any client exists.
type CredentialBroker interface {
	Transport(ctx context.Context) (ai.Transport, error)
}

// FromKeyAndEndpoint builds a client talking to endpoint with a static API
// key. The key is required; an empty endpoint means the public OpenAI API.
// The endpoint host decides whether OpenAI or Azure conventions are used.
//
//	c, err := client.FromKeyAndEndpoint(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
func FromKeyAndEndpoint(apiKey, endpoint, model string, opts ...func(*ClientOptions)) (*Client, error) {
	if apiKey == "" {
		return nil, config.Missing(config.KeyOpenAIAPIKey)
	}
	if endpoint == "" {
		endpoint = config.DefaultBaseURL
	}

	transport := openai.New().WithAPIKey(apiKey).WithBaseURL(endpoint)
	return New(transport, model, opts...)
}

// FromTransport builds a client on a transport the caller already has. The
// transport is not copied; several clients may share it.
func FromTransport(transport ai.Transport, model string, opts ...func(*ClientOptions)) (*Client, error) {
	return New(transport, model, opts...)
}

// FromManagedCredential builds a client whose transport comes from broker.
// Broker failures are returned unchanged.
func FromManagedCredential(ctx context.Context, broker CredentialBroker, model string, opts ...func(*ClientOptions)) (*Client, error) {
	if broker == nil {
		return nil, errors.New("client: credential broker is nil")
	}

	transport, err := broker.Transport(ctx)
	if err != nil {
		return nil, err
	}
	return New(transport, model, opts...)
}
