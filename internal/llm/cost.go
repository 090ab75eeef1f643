package llm

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

var priceTable = map[string]modelPricing{
	"gpt-4o":                     {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":                {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-3.5-turbo":              {InputPerMillion: 0.50, OutputPerMillion: 1.50},
	"claude-sonnet-4-5-20250929": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"claude-haiku-4-5-20251001":  {InputPerMillion: 0.80, OutputPerMillion: 4.00},
	"MiniMax-M2.5":               {InputPerMillion: 0.30, OutputPerMillion: 1.20},
}

// EstimateCost returns the cost in USD of a request with the given token
// counts, or 0 for models without a known price.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*pricing.InputPerMillion +
		float64(outputTokens)/1e6*pricing.OutputPerMillion
}

// EstimateTokens approximates the token count of text at four characters
// per token, never rounding a non-empty text down to zero.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && text != "" {
		return 1
	}
	return n
}
