package validators

import (
	"fmt"
	"strings"

	"cortexgraph/domain/core/entities"
	apperrors "cortexgraph/pkg/errors"
)

// VectorValidator enforces that embedding_type, source_tier and
// abstraction_level are recognized enum members and confidence stays in
// [0,1]. Collection-wide dimension consistency is enforced by the
// vector backend at insert time, since it requires comparing against
// sibling vectors already in the collection.
type VectorValidator struct{}

// NewVectorValidator constructs a VectorValidator.
func NewVectorValidator() *VectorValidator {
	return &VectorValidator{}
}

// Validate checks a vector payload for creation.
func (v *VectorValidator) Validate(vec entities.VectorPayload) error {
	var problems []string

	if len(vec.Embedding) == 0 {
		problems = append(problems, "embedding must not be empty")
	}
	if vec.Collection == "" {
		problems = append(problems, "collection is required")
	}
	if !vec.EmbeddingType.IsValid() {
		problems = append(problems, fmt.Sprintf("embedding_type %q is not recognized", vec.EmbeddingType))
	}
	if !vec.SourceTier.IsValid() {
		problems = append(problems, fmt.Sprintf("source_tier %q is not recognized", vec.SourceTier))
	}
	if !vec.AbstractionLevel.IsValid() {
		problems = append(problems, fmt.Sprintf("abstraction_level %q is not recognized", vec.AbstractionLevel))
	}
	problems = append(problems, rangeCheck01("confidence", vec.Confidence)...)

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

// ValidateDimension enforces that vec's embedding length matches the
// collection's established dimension: every vector within one
// collection must share the same dimension.
func (v *VectorValidator) ValidateDimension(vec entities.VectorPayload, collectionDimension int) error {
	if collectionDimension > 0 && len(vec.Embedding) != collectionDimension {
		return apperrors.NewValidationError(fmt.Sprintf(
			"embedding has dimension %d, collection %q requires %d",
			len(vec.Embedding), vec.Collection, collectionDimension))
	}
	return nil
}
