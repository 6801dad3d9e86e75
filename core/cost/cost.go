package cost

import (
	"fmt"

	"github.com/leofalp/oaiclient/providers/ai"
)

const perMillion = 1_000_000.0

// CurrencyUSD is the only currency prices are expressed in.
const CurrencyUSD = "USD"

// ModelCost is the per-token price list of a model.
//
// Example:
//
//	modelCost := cost.ModelCost{
//	    InputCostPerMillion:       0.05,
//	    OutputCostPerMillion:      0.40,
//	    CachedInputCostPerMillion: 0.005,
//	}
type ModelCost struct {
	// InputCostPerMillion is the cost in USD per 1 million input tokens
	InputCostPerMillion float64 `json:"input_cost_per_million"`

	// OutputCostPerMillion is the cost in USD per 1 million output tokens
	OutputCostPerMillion float64 `json:"output_cost_per_million"`

	// CachedInputCostPerMillion is the discounted rate for cached input
	// tokens. Zero means cached tokens are billed as regular input.
	CachedInputCostPerMillion float64 `json:"cached_input_cost_per_million,omitempty"`

	// ReasoningCostPerMillion prices reasoning tokens separately. Zero means
	// they are billed as regular output.
	ReasoningCostPerMillion float64 `json:"reasoning_cost_per_million,omitempty"`
}

// IsZero reports whether no price is set.
func (mc ModelCost) IsZero() bool {
	return mc == ModelCost{}
}

func (mc ModelCost) CalculateInputCost(tokens int) float64 {
	return (float64(tokens) / perMillion) * mc.InputCostPerMillion
}

func (mc ModelCost) CalculateOutputCost(tokens int) float64 {
	return (float64(tokens) / perMillion) * mc.OutputCostPerMillion
}

func (mc ModelCost) CalculateCachedCost(tokens int) float64 {
	return (float64(tokens) / perMillion) * mc.CachedInputCostPerMillion
}

func (mc ModelCost) CalculateReasoningCost(tokens int) float64 {
	return (float64(tokens) / perMillion) * mc.ReasoningCostPerMillion
}

// Estimate prices usage. Input tokens include cached tokens and output
// tokens include reasoning tokens, as reported by the Responses API; each
// subset is billed at its own rate only when that rate is set.
func (mc ModelCost) Estimate(usage *ai.Usage) Breakdown {
	breakdown := Breakdown{Currency: CurrencyUSD}
	if usage == nil {
		return breakdown
	}

	inputTokens := usage.InputTokens
	if mc.CachedInputCostPerMillion > 0 && usage.CachedTokens > 0 {
		cached := min(usage.CachedTokens, inputTokens)
		breakdown.Cached = mc.CalculateCachedCost(cached)
		inputTokens -= cached
	}

	outputTokens := usage.OutputTokens
	if mc.ReasoningCostPerMillion > 0 && usage.ReasoningTokens > 0 {
		reasoning := min(usage.ReasoningTokens, outputTokens)
		breakdown.Reasoning = mc.CalculateReasoningCost(reasoning)
		outputTokens -= reasoning
	}

	breakdown.Input = mc.CalculateInputCost(inputTokens)
	breakdown.Output = mc.CalculateOutputCost(outputTokens)
	breakdown.Total = breakdown.Input + breakdown.Output + breakdown.Cached + breakdown.Reasoning
	return breakdown
}

func (mc ModelCost) String() string {
	return fmt.Sprintf("Input: $%.6f/M, Output: $%.6f/M",
		mc.InputCostPerMillion, mc.OutputCostPerMillion)
}

// Breakdown is the estimated cost of one request.
type Breakdown struct {
	Input     float64 `json:"input"`
	Output    float64 `json:"output"`
	Cached    float64 `json:"cached"`
	Reasoning float64 `json:"reasoning"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

func (b Breakdown) String() string {
	return fmt.Sprintf("$%.6f %s (input $%.6f, output $%.6f)", b.Total, b.Currency, b.Input, b.Output)
}
