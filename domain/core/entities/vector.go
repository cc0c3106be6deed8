package entities

import (
	"time"

	"cortexgraph/domain/config"
)

// VectorPayload is an opaque-id, fixed-dimension embedding annotating
// zero or more nodes. Independent of nodes unless EntityRefs is non-empty.
type VectorPayload struct {
	ID            string                  `json:"id"`
	Embedding     []float64               `json:"embedding"`
	EmbeddingType config.EmbeddingType     `json:"embedding_type"`
	Collection    string                  `json:"collection"`
	EntityRefs    []string                `json:"entity_refs"`
	Confidence    float64                 `json:"confidence"`
	AbstractionLevel config.AbstractionLevel `json:"abstraction_level"`
	SourceTier    config.SourceTier       `json:"source_tier"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	DecayScore    *float64                `json:"decay_score,omitempty"`
}

// Dimension returns the embedding's length, used by the vector backend
// to enforce the per-collection fixed-dimension invariant.
func (v VectorPayload) Dimension() int {
	return len(v.Embedding)
}
