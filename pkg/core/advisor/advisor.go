package advisor

import (
	"context"
	"fmt"

	"lbo_valuation/pkg/core/model"
	"lbo_valuation/pkg/core/report"
	"lbo_valuation/pkg/core/utils"
)

const reviewSystemPrompt = `You are a private equity analyst reviewing an LBO model.
You receive the full model output: transaction structure, projected statements,
debt schedule, and returns analysis.

Respond with a JSON object:
{
  "assessment": "<one paragraph overall view of the deal>",
  "leverage_view": "<is the capital structure sustainable given the projected cash flows?>",
  "key_risks": ["<specific risks visible in the numbers>"],
  "suggestions": ["<concrete changes to assumptions or structure worth testing>"]
}

Ground every point in the numbers you were given. Return ONLY valid JSON, no
markdown or extra text.`

// Review is the structured output of a model review.
type Review struct {
	Assessment   string   `json:"assessment"`
	LeverageView string   `json:"leverage_view"`
	KeyRisks     []string `json:"key_risks"`
	Suggestions  []string `json:"suggestions"`
}

// Advisor runs model reviews and Q&A through an LLM provider.
type Advisor struct {
	provider Provider
}

// New creates an Advisor on the given provider.
func New(provider Provider) *Advisor {
	return &Advisor{provider: provider}
}

// ReviewModel asks the provider for a structured review of the built model.
// The response is decoded leniently since LLM JSON is often slightly broken.
func (a *Advisor) ReviewModel(ctx context.Context, m *model.Model) (*Review, error) {
	prompt := report.Summary(m)

	resp, err := a.provider.GenerateResponse(ctx, prompt, reviewSystemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("model review failed: %w", err)
	}

	var review Review
	if _, err := utils.SmartParse(resp, &review); err != nil {
		return nil, fmt.Errorf("review response is not decodable: %w", err)
	}
	return &review, nil
}

// Ask answers a free-form question about the model. The full summary is the
// context; the answer comes back as clean Markdown.
func (a *Advisor) Ask(ctx context.Context, m *model.Model, question string) (string, error) {
	systemPrompt := fmt.Sprintf(`You are a private equity analyst. Answer questions
about the following LBO model. Be specific and cite the numbers.

%s`, report.Summary(m))

	resp, err := a.provider.GenerateResponse(ctx, question, systemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("question failed: %w", err)
	}
	return utils.CleanMarkdown(resp), nil
}
