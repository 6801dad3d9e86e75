package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/leofalp/oaiclient/internal/utils"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/observability"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	responsesEndpoint = "/responses"
	queryAPIVersion   = "api-version"
	statusFailed      = "failed"
	statusIncomplete  = "incomplete"

	// DefaultAzureAPIVersion is sent to Azure endpoints when no version is set.
	DefaultAzureAPIVersion = "2025-04-01-preview"
)

// Transport implements ai.Transport for the OpenAI Responses API and its
// Azure deployment. A Transport is safe to share between clients once
// configured.
type Transport struct {
	apiKey       string
	baseURL      string
	apiVersion   string
	client       *http.Client
	headers      http.Header
	capabilities Capabilities

	// selfAuthenticated is set when the HTTP client adds credentials itself.
	selfAuthenticated bool
	flavourForced     bool
}

var _ ai.Transport = (*Transport)(nil)

// New creates a transport with default values from environment.
// Environment variables:
//   - OPENAI_API_KEY: API key for authentication
//   - OPENAI_API_BASE_URL: Base URL for API (optional, defaults to https://api.openai.com/v1)
func New() *Transport {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Transport{
		apiKey:       os.Getenv("OPENAI_API_KEY"),
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{},
		headers:      http.Header{},
		capabilities: detectCapabilities(baseURL),
	}
}

// WithAPIKey sets the API key for the transport
func (t *Transport) WithAPIKey(apiKey string) *Transport {
	t.apiKey = apiKey
	return t
}

// WithBaseURL sets the base URL for the API and re-detects the flavour,
// unless one was forced with WithFlavour.
func (t *Transport) WithBaseURL(baseURL string) *Transport {
	t.baseURL = strings.TrimRight(baseURL, "/")
	if !t.flavourForced {
		t.capabilities = detectCapabilities(baseURL)
	}
	return t
}

// WithHttpClient sets a custom HTTP client
func (t *Transport) WithHttpClient(httpClient *http.Client) *Transport {
	t.client = httpClient
	return t
}

// WithAuthenticatedClient sets an HTTP client that attaches credentials on its
// own, such as one returned by oauth2.NewClient. No API key is sent.
func (t *Transport) WithAuthenticatedClient(httpClient *http.Client) *Transport {
	t.client = httpClient
	t.selfAuthenticated = true
	return t
}

// WithAPIVersion sets the api-version query parameter. Azure endpoints use
// DefaultAzureAPIVersion when unset.
func (t *Transport) WithAPIVersion(version string) *Transport {
	t.apiVersion = version
	return t
}

// WithFlavour overrides the flavour detected from the base URL.
func (t *Transport) WithFlavour(flavour Flavour) *Transport {
	t.capabilities = capabilitiesFor(flavour)
	t.flavourForced = true
	return t
}

// WithHeader adds a header sent with every request.
func (t *Transport) WithHeader(key, value string) *Transport {
	if t.headers == nil {
		t.headers = http.Header{}
	}
	t.headers.Add(key, value)
	return t
}

// Capabilities returns the current capabilities (informational only).
func (t *Transport) Capabilities() Capabilities {
	return t.capabilities
}

// Create implements ai.Transport.
func (t *Transport) Create(ctx context.Context, request ai.CreateRequest) (*ai.Response, error) {
	return t.send(ctx, request.Model, len(request.Messages), requestFromCreate(request), false)
}

// Parse implements ai.Transport. The response format must be structured.
func (t *Transport) Parse(ctx context.Context, request ai.ParseRequest) (*ai.Response, error) {
	body, err := requestFromParse(request)
	if err != nil {
		return nil, err
	}
	return t.send(ctx, request.Model, len(request.Messages), body, true)
}

func (t *Transport) send(ctx context.Context, model string, messageCount int, body responseCreateRequest, parsed bool) (*ai.Response, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart,
			observability.Int(observability.AttrRequestMessagesCount, messageCount),
		)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, string(t.capabilities.Flavour)),
			observability.String(observability.AttrLLMEndpoint, t.baseURL),
			observability.String(observability.AttrLLMModel, model),
		)
		defer span.AddEvent(observability.EventLLMRequestEnd)
	}

	headers, err := t.requestHeaders()
	if err != nil {
		return nil, err
	}

	endpoint, err := t.endpointURL()
	if err != nil {
		return nil, err
	}

	httpResponse, resp, err := utils.DoPostSync[responseCreateResponse](ctx, t.client, endpoint, headers, body)
	if err != nil {
		var statusErr *utils.HTTPStatusError
		if errors.As(err, &statusErr) {
			return nil, apiErrorFromStatus(statusErr)
		}
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from OpenAI API: %s", httpResponse.Status)
	}

	if resp.Status == statusFailed {
		apiErr := &APIError{
			StatusCode: httpResponse.StatusCode,
			RequestID:  httpResponse.Request.Header.Get(utils.HeaderClientRequestID),
		}
		if resp.Error != nil {
			apiErr.Type = resp.Error.Type
			apiErr.Code = resp.Error.code()
			apiErr.Param = resp.Error.Param
			apiErr.Message = resp.Error.Message
		}
		return nil, apiErr
	}

	result, err := responseToGeneric(*resp, parsed)
	if err != nil {
		return nil, err
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, result.ID),
			observability.Int(observability.AttrHTTPStatusCode, httpResponse.StatusCode),
		)
		if result.Usage != nil {
			span.AddEvent(observability.EventTokensReceived,
				observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens),
			)
		}
	}

	return result, nil
}

func (t *Transport) requestHeaders() (http.Header, error) {
	headers := t.headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}

	if t.selfAuthenticated {
		return headers, nil
	}
	if t.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if t.capabilities.AuthHeader == headerAzureAPIKey {
		headers.Set(headerAzureAPIKey, t.apiKey)
	} else {
		headers.Set(headerAuthorization, "Bearer "+t.apiKey)
	}
	return headers, nil
}

func (t *Transport) endpointURL() (string, error) {
	u, err := url.Parse(t.baseURL + responsesEndpoint)
	if err != nil {
		return "", fmt.Errorf("openai: invalid base URL %q: %w", t.baseURL, err)
	}

	version := t.apiVersion
	if version == "" && t.capabilities.RequiresAPIVersion {
		version = DefaultAzureAPIVersion
	}
	if version != "" {
		query := u.Query()
		query.Set(queryAPIVersion, version)
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
