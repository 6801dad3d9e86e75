// Package openai implements ai.Transport over the OpenAI Responses API
// (POST {base}/responses), for both api.openai.com and Azure OpenAI.
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment. The endpoint flavour is detected
// from the host: Azure resources get an api-key header and an api-version
// query parameter, everything else a bearer token. Use [Transport.WithFlavour]
// for hosts that cannot be recognised by name.
//
// Create requests plain text; Parse sends a strict json_schema text format and
// decodes the returned output_text as JSON, repairing it when malformed. When
// the backend returns the aggregated output_text or output_parsed field, the
// response Output is an [ai.Convenience]; otherwise it is the [ai.Items] list.
//
// Backend failures are returned as [*APIError].
package openai
