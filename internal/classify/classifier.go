// Package classify assigns category tags to transaction descriptions. The
// classifier contract is total: it always returns a category from the
// vocabulary matching the transaction direction, falling back to keyword
// rules and finally to "other". Classification failures are never surfaced
// as errors.
package classify

import (
	"context"
	"os"
	"strings"

	"runway/internal/core"
)

// Classifier resolves a free-text description to a category tag.
type Classifier interface {
	Classify(ctx context.Context, description string, income bool) core.Category
}

// RuleClassifier is the deterministic fallback used when no model
// credential is configured or the model call fails. Expense descriptions go
// through the keyword table; income descriptions resolve to "other"
// directly, as there is no keyword table for the income vocabulary.
type RuleClassifier struct{}

func (RuleClassifier) Classify(_ context.Context, description string, income bool) core.Category {
	if income {
		return core.CategoryOther
	}
	return keywordCategory(description)
}

// NewFromEnv returns the Gemini classifier when GEMINI_API_KEY is set and
// the rule classifier otherwise.
func NewFromEnv(ctx context.Context) Classifier {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		return RuleClassifier{}
	}
	gc, err := NewGemini(ctx, key)
	if err != nil {
		return RuleClassifier{}
	}
	return gc
}
