package validators

import (
	"fmt"
	"strings"

	"cortexgraph/domain/core/entities"
	apperrors "cortexgraph/pkg/errors"
)

// EdgeValidator enforces that relation is one of the 19 recognized
// labels and confidence and weight fields stay in range. Endpoint
// existence (both nodes present at creation time) is a storage-layer
// concern, not checked here, since this validator has no storage handle.
type EdgeValidator struct{}

// NewEdgeValidator constructs an EdgeValidator.
func NewEdgeValidator() *EdgeValidator {
	return &EdgeValidator{}
}

// Validate checks an edge for creation or update.
func (v *EdgeValidator) Validate(e entities.Edge) error {
	var problems []string

	if e.FromNode.IsZero() {
		problems = append(problems, "from_node is required")
	}
	if e.ToNode.IsZero() {
		problems = append(problems, "to_node is required")
	}
	if !e.Relation.IsValid() {
		problems = append(problems, fmt.Sprintf("relation %q is not one of the 19 recognized labels", e.Relation))
	}

	problems = append(problems, rangeCheck01("confidence", e.Confidence)...)
	problems = append(problems, rangeCheck01("weight.strength", e.Weight.Strength)...)
	if e.Weight.DecayRate < 0 {
		problems = append(problems, "weight.decay_rate must be >= 0")
	}
	if e.Weight.ReinforcementRate < 0 {
		problems = append(problems, "weight.reinforcement_rate must be >= 0")
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
