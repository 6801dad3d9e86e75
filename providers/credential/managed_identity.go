package credential

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"golang.org/x/oauth2"
)

// CognitiveServicesResource is the audience of Azure OpenAI tokens.
const CognitiveServicesResource = "https://cognitiveservices.azure.com"

// ManagedIdentityTokenSource returns a token source backed by the Azure
// managed identity of the current host (IMDS, App Service, Functions, Arc).
// clientID selects a user-assigned identity; leave it empty for the
// system-assigned one. Outside Azure the first Token call fails.
func ManagedIdentityTokenSource(ctx context.Context, clientID string) (oauth2.TokenSource, error) {
	options := &azidentity.ManagedIdentityCredentialOptions{}
	if clientID != "" {
		options.ID = azidentity.ClientID(clientID)
	}

	credential, err := azidentity.NewManagedIdentityCredential(options)
	if err != nil {
		return nil, fmt.Errorf("managed identity: %w", err)
	}
	return TokenSourceFromCredential(ctx, credential, CognitiveServicesScope), nil
}

// TokenSourceFromCredential adapts an Azure SDK credential to
// oauth2.TokenSource for the given scopes. The result does not cache;
// AzureBroker wraps it with oauth2.ReuseTokenSource.
func TokenSourceFromCredential(ctx context.Context, credential azcore.TokenCredential, scopes ...string) oauth2.TokenSource {
	return &credentialSource{ctx: ctx, credential: credential, scopes: scopes}
}

type credentialSource struct {
	ctx        context.Context
	credential azcore.TokenCredential
	scopes     []string
}

// Token implements oauth2.TokenSource.
func (s *credentialSource) Token() (*oauth2.Token, error) {
	token, err := s.credential.GetToken(s.ctx, policy.TokenRequestOptions{Scopes: s.scopes})
	if err != nil {
		return nil, err
	}
	if token.Token == "" {
		return nil, fmt.Errorf("credential: empty access token")
	}
	return &oauth2.Token{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		Expiry:      token.ExpiresOn,
	}, nil
}
