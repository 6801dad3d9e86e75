// Package ai defines the provider-agnostic types shared by the client and the
// transport implementations.
//
// A [Transport] exposes two calls: Create for plain text and Parse for output
// decoded against a [ResponseFormat]. Both return a [Response] whose Output is
// resolved once, at the transport boundary, into either [Convenience] (the
// backend aggregated the output for us) or [Items] (the nested message list
// that callers walk).
package ai
