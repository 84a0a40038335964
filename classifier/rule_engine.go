package classifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookwerk/bookstore-mas/ontology"
)

// ThresholdRule classifies a single book.
type ThresholdRule func(book *ontology.Book, defaultThreshold int) bool

// lowStockRule is the built-in classification rule:
// availableQuantity < effectiveThreshold.
func lowStockRule(book *ontology.Book, defaultThreshold int) bool {
	return book.AvailableQuantity < book.EffectiveThreshold(defaultThreshold)
}

// ThresholdRuleEngine is an in-process InferenceEngine evaluating the
// low-stock rule as a first-class classification. It exists so the
// preferred path can be exercised without an external reasoner; by
// construction it must produce the same membership set as the fallback.
type ThresholdRuleEngine struct {
	rule ThresholdRule
}

// NewThresholdRuleEngine creates an engine with the built-in low-stock rule.
func NewThresholdRuleEngine() *ThresholdRuleEngine {
	return &ThresholdRuleEngine{rule: lowStockRule}
}

// Probe reports availability; the in-process engine is always usable
// unless the context is already done.
func (e *ThresholdRuleEngine) Probe(ctx context.Context) error {
	return ctx.Err()
}

// InferLowStock classifies every book with the engine's rule.
func (e *ThresholdRuleEngine) InferLowStock(ctx context.Context, books []*ontology.Book, defaultThreshold int) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var classified []uuid.UUID

	for _, book := range books {
		if e.rule(book, defaultThreshold) {
			classified = append(classified, book.ID)
		}
	}

	return classified, nil
}
