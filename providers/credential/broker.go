package credential

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"

	"github.com/leofalp/oaiclient/internal/config"
	"github.com/leofalp/oaiclient/providers/ai"
	"github.com/leofalp/oaiclient/providers/ai/openai"
)

// envAuthorityHost overrides the Entra ID host for sovereign clouds.
const envAuthorityHost = "AZURE_AUTHORITY_HOST"

// AzureBroker produces transports for an Azure OpenAI resource authenticated
// with Entra ID tokens instead of an API key.
type AzureBroker struct {
	// Endpoint is the resource URL, e.g. https://my-resource.openai.azure.com
	Endpoint string

	// APIVersion defaults to openai.DefaultAzureAPIVersion
	APIVersion string

	TokenSource oauth2.TokenSource

	// HTTPClient is the base client wrapped by the token transport. Optional.
	HTTPClient *http.Client
}

// Transport acquires a first token, so an unavailable identity fails here
// rather than on the first request, and returns a transport that attaches a
// bearer token to every call.
func (b *AzureBroker) Transport(ctx context.Context) (ai.Transport, error) {
	if b.Endpoint == "" {
		return nil, config.Missing(config.KeyAzureEndpoint)
	}
	if b.TokenSource == nil {
		return nil, fmt.Errorf("credential: no token source configured")
	}

	source := oauth2.ReuseTokenSource(nil, b.TokenSource)
	if _, err := source.Token(); err != nil {
		return nil, fmt.Errorf("credential: acquiring token: %w", err)
	}

	if b.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, b.HTTPClient)
	}

	apiVersion := b.APIVersion
	if apiVersion == "" {
		apiVersion = openai.DefaultAzureAPIVersion
	}

	return openai.New().
		WithAPIKey("").
		WithFlavour(openai.FlavourAzure).
		WithBaseURL(b.Endpoint + "/openai").
		WithAPIVersion(apiVersion).
		WithAuthenticatedClient(oauth2.NewClient(ctx, source)), nil
}

// FromConfig builds a broker from Azure settings. A client secret selects the
// client credentials flow; otherwise the host's managed identity is used,
// user-assigned when ClientID is set.
func FromConfig(ctx context.Context, cfg *config.Config) (*AzureBroker, error) {
	if err := cfg.RequireAzure(); err != nil {
		return nil, err
	}

	azure := cfg.Azure
	var source oauth2.TokenSource
	if azure.ClientSecret != "" {
		source = ClientCredentialsTokenSource(ctx, os.Getenv(envAuthorityHost), azure.TenantID, azure.ClientID, azure.ClientSecret)
	} else {
		managed, err := ManagedIdentityTokenSource(ctx, azure.ClientID)
		if err != nil {
			return nil, err
		}
		source = managed
	}

	return &AzureBroker{
		Endpoint:    azure.Endpoint,
		APIVersion:  azure.APIVersion,
		TokenSource: source,
	}, nil
}

// FromEnvironment loads configuration (.env, environment, oaiclient.yaml) and
// calls FromConfig. A missing AZURE_OPENAI_ENDPOINT is a
// *config.ConfigurationError.
func FromEnvironment(ctx context.Context) (*AzureBroker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return FromConfig(ctx, cfg)
}
