package credential

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// CognitiveServicesScope is the Entra ID scope for Azure OpenAI.
	CognitiveServicesScope = CognitiveServicesResource + "/.default"

	// DefaultAuthorityHost is the public-cloud Entra ID host.
	DefaultAuthorityHost = "https://login.microsoftonline.com"
)

// ClientCredentialsConfig returns the OAuth2 client credentials configuration
// of a service principal against authorityHost (DefaultAuthorityHost when
// empty).
func ClientCredentialsConfig(authorityHost, tenantID, clientID, clientSecret string) *clientcredentials.Config {
	if authorityHost == "" {
		authorityHost = DefaultAuthorityHost
	}
	return &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(authorityHost, "/"), tenantID),
		Scopes:       []string{CognitiveServicesScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
}

// ClientCredentialsTokenSource returns a caching token source for a service
// principal. An empty authorityHost means the public cloud.
func ClientCredentialsTokenSource(ctx context.Context, authorityHost, tenantID, clientID, clientSecret string) oauth2.TokenSource {
	return ClientCredentialsConfig(authorityHost, tenantID, clientID, clientSecret).TokenSource(ctx)
}
