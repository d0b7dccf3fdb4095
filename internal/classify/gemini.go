package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"runway/internal/core"
)

const (
	defaultModelName = "gemini-2.0-flash"
	classifyTimeout  = 10 * time.Second
)

// Gemini asks a model to pick a category for a description, constrained to
// the closed vocabulary for the transaction direction. Any failure, timeout
// or off-vocabulary answer resolves through the rule fallback, so Classify
// never errors.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback RuleClassifier
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: defaultModelName}, nil
}

func (g *Gemini) Classify(ctx context.Context, description string, income bool) core.Category {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(description, income)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		slog.WarnContext(ctx, "Classification model call failed, using fallback", "error", err)
		return g.fallback.Classify(ctx, description, income)
	}

	answer := core.Category(strings.ToLower(strings.TrimSpace(resp.Text())))
	if !core.ValidCategory(answer, income) {
		slog.WarnContext(ctx, "Model returned off-vocabulary category, using fallback",
			"answer", string(answer))
		return g.fallback.Classify(ctx, description, income)
	}
	return answer
}

// buildPrompt constrains the model to the closed vocabulary for the
// direction and demands a bare single-word answer.
func buildPrompt(description string, income bool) string {
	vocab := core.ExpenseCategories()
	direction := "expense"
	if income {
		vocab = core.IncomeCategories()
		direction = "income"
	}

	var b strings.Builder
	b.WriteString("You categorize personal finance transactions.\n\n")
	fmt.Fprintf(&b, "Pick the single best category for this %s description:\n%q\n\n", direction, description)
	b.WriteString("Allowed categories (answer must be EXACTLY one of these, lowercase):\n")
	for _, c := range vocab {
		b.WriteString("- " + string(c) + "\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Respond with the category word only, no punctuation, no explanation.\n")
	b.WriteString("- If unsure, respond with \"other\".\n")
	return b.String()
}
