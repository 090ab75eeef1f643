package proposal

import (
	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/llm"
)

// tokensPerCandidate approximates the answer size for one source field.
const tokensPerCandidate = 40

// Estimate is the expected size and price of one proposal request.
type Estimate struct {
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// Estimate sizes the request Propose would send for source and target.
// It never touches the provider, so a Proposer built with a nil provider
// can be used for estimates alone. CostUSD is zero for unpriced models.
func (p *Proposer) Estimate(source, target []fields.Field) Estimate {
	req := p.Request(source, target)
	model := req.Model

	est := Estimate{Model: model, OutputTokens: len(source) * tokensPerCandidate}
	for _, m := range req.Messages {
		est.InputTokens += llm.EstimateTokens(m.Content)
	}
	est.CostUSD = llm.EstimateCost(model, est.InputTokens, est.OutputTokens)
	return est
}
