package entities

import (
	"time"

	"cortexgraph/domain/config"
)

// DocumentChunk is one window of a parsed document, tagged with a claim
// classification and the concept ids it mentions.
type DocumentChunk struct {
	ID          string          `json:"id"`
	Content     string          `json:"content"`
	SourceID    string          `json:"source_id"`
	Section     string          `json:"section"`
	ClaimType   config.ClaimType `json:"claim_type"`
	ConceptIDs  []string        `json:"concept_ids"`
	EmbeddingID *string         `json:"embedding_id,omitempty"`
	Confidence  float64         `json:"confidence"`
	CreatedAt   time.Time       `json:"created_at"`
}
