// Package jsonschema generates JSON Schema documents from Go types for use
// as OpenAI structured-output formats.
//
// Generated schemas follow strict mode: every object sets
// additionalProperties to false and lists all of its properties as required.
// Recursive types are emitted through $ref and $defs.
//
// The main entry point is [GenerateJSONSchema].
package jsonschema
