// Package client is a thin, single-turn wrapper over the OpenAI Responses API.
//
// A [Client] holds a model name, an optional system instruction and a response
// format. [Client.Request] sends the instruction (when set) followed by the
// prompt and returns a [Result] holding either text or a structured JSON
// value, depending on the format. No history is kept between requests.
//
// Clients are built by one of three factories:
//
//   - [FromKeyAndEndpoint]: static API key and endpoint URL.
//   - [FromTransport]: an existing [ai.Transport], possibly shared.
//   - [FromManagedCredential]: a [CredentialBroker] such as the Azure broker
//     in providers/credential.
//
// Errors fall in three groups: [ConfigurationError] from the factories,
// [ExtractionError] when a response lacks the expected payload, and whatever
// the transport returned, passed through unchanged.
//
// Structured output is usually derived from a Go type:
//
//	type Summary struct {
//	    Title     string   `json:"title"`
//	    KeyPoints []string `json:"key_points"`
//	}
//
//	summary, err := client.Request[Summary](ctx, c, article)
package client
