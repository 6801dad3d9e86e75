// Package cost estimates the monetary cost of a request from the token usage
// reported by the backend.
//
// Prices are configured per model with [ModelCost]; [ModelCost.Estimate]
// turns an [ai.Usage] into a [Breakdown]. Estimates are informational only:
// the backend's invoice is authoritative.
package cost
