// Package credential builds transports for Azure OpenAI resources that are
// reached with Entra ID tokens: the host's managed identity (through the Azure
// SDK's azidentity) or a service principal through the OAuth2 client
// credentials flow. Both end up as an oauth2.TokenSource.
//
// [AzureBroker] satisfies the client package's CredentialBroker interface:
//
//	broker, err := credential.FromEnvironment(ctx)
//	if err != nil {
//	    return err
//	}
//	c, err := client.FromManagedCredential(ctx, broker, "gpt-5-nano")
package credential
