package openai

import (
	"net/url"
	"strings"
)

// Flavour identifies the dialect spoken by a Responses endpoint.
type Flavour string

const (
	// FlavourOpenAI authenticates with a bearer token and needs no api-version.
	FlavourOpenAI Flavour = "openai"

	// FlavourAzure authenticates with an api-key header (or an Entra ID bearer
	// token) and requires an api-version query parameter.
	FlavourAzure Flavour = "azure"
)

// Capabilities describes how requests to a given endpoint are addressed and
// authenticated. They are populated by [detectCapabilities] and can be
// overridden with [Transport.WithFlavour] for hosts that cannot be recognised
// from their name (private endpoints, proxies, test servers).
type Capabilities struct {
	Flavour Flavour

	// AuthHeader carries the API key: "Authorization" (as a bearer token) or "api-key".
	AuthHeader string

	// RequiresAPIVersion is true when every request must carry ?api-version=.
	RequiresAPIVersion bool
}

const (
	headerAuthorization = "Authorization"
	headerAzureAPIKey   = "api-key"
)

func capabilitiesFor(flavour Flavour) Capabilities {
	if flavour == FlavourAzure {
		return Capabilities{
			Flavour:            FlavourAzure,
			AuthHeader:         headerAzureAPIKey,
			RequiresAPIVersion: true,
		}
	}
	return Capabilities{
		Flavour:    FlavourOpenAI,
		AuthHeader: headerAuthorization,
	}
}

// detectCapabilities infers the endpoint flavour from the host of baseURL.
// Unknown hosts are treated as OpenAI-compatible.
func detectCapabilities(baseURL string) Capabilities {
	host := strings.ToLower(baseURL)
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = strings.ToLower(u.Hostname())
	}

	// Azure OpenAI and Azure AI Foundry resources
	if strings.HasSuffix(host, ".openai.azure.com") ||
		strings.HasSuffix(host, ".cognitiveservices.azure.com") ||
		strings.HasSuffix(host, ".services.ai.azure.com") {
		return capabilitiesFor(FlavourAzure)
	}

	return capabilitiesFor(FlavourOpenAI)
}
