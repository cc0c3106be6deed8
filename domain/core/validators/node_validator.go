// Package validators enforces numeric-range and structural invariants
// at entity creation and update boundaries. Every failure is surfaced
// as a *errors.AppError of type ErrorTypeValidation, never a bare
// error.
package validators

import (
	"fmt"
	"strings"

	"cortexgraph/domain/core/entities"
	apperrors "cortexgraph/pkg/errors"
)

// NodeValidator enforces that every [0,1]-typed field stays in range,
// timestamps are ordered, and kind is one of the nine recognized
// members.
type NodeValidator struct{}

// NewNodeValidator constructs a NodeValidator.
func NewNodeValidator() *NodeValidator {
	return &NodeValidator{}
}

// Validate checks a node for creation or update.
func (v *NodeValidator) Validate(n entities.Node) error {
	var problems []string

	if strings.TrimSpace(n.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !n.Kind.IsValid() {
		problems = append(problems, fmt.Sprintf("kind %q is not a recognized node kind", n.Kind))
	}

	problems = append(problems, rangeCheck01("level.abstraction", n.Level.Abstraction)...)
	problems = append(problems, rangeCheck01("level.difficulty", n.Level.Difficulty)...)
	problems = append(problems, rangeCheck01("level.volatility", n.Level.Volatility)...)

	problems = append(problems, rangeCheck01("cognitive_state.strength", n.CognitiveState.Strength)...)
	problems = append(problems, rangeCheck01("cognitive_state.activation", n.CognitiveState.Activation)...)
	problems = append(problems, rangeCheck01("cognitive_state.confidence", n.CognitiveState.Confidence)...)
	if n.CognitiveState.DecayRate < 0 {
		problems = append(problems, "cognitive_state.decay_rate must be >= 0")
	}

	if n.Temporal.IntroducedAt.After(n.Temporal.LastReinforcedAt) {
		problems = append(problems, "temporal.introduced_at must be <= temporal.last_reinforced_at")
	}

	if n.RealWorld.CompaniesUsing < 0 {
		problems = append(problems, "real_world.companies_using must be >= 0")
	}
	problems = append(problems, rangeCheck01("real_world.avg_salary_weight", n.RealWorld.AvgSalaryWeight)...)
	problems = append(problems, rangeCheck01("real_world.interview_frequency", n.RealWorld.InterviewFrequency)...)

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

// rangeCheck01 returns a problem string if value is outside [0,1].
func rangeCheck01(field string, value float64) []string {
	if value < 0 || value > 1 {
		return []string{fmt.Sprintf("%s must be in [0,1], got %v", field, value)}
	}
	return nil
}
