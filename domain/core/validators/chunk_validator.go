package validators

import (
	"strings"

	"cortexgraph/domain/core/entities"
	apperrors "cortexgraph/pkg/errors"
)

// ChunkValidator enforces that every concept tag on a chunk is a
// case-insensitive substring of that chunk's own content.
type ChunkValidator struct{}

// NewChunkValidator constructs a ChunkValidator.
func NewChunkValidator() *ChunkValidator {
	return &ChunkValidator{}
}

// Validate checks a document chunk.
func (v *ChunkValidator) Validate(c entities.DocumentChunk) error {
	var problems []string

	if c.SourceID == "" {
		problems = append(problems, "source_id is required")
	}
	problems = append(problems, rangeCheck01("confidence", c.Confidence)...)

	lowerContent := strings.ToLower(c.Content)
	for _, concept := range c.ConceptIDs {
		if !strings.Contains(lowerContent, strings.ToLower(concept)) {
			problems = append(problems, "concept \""+concept+"\" does not appear literally in chunk content")
		}
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
