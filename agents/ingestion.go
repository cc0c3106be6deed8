package agents

import (
	"context"
	"fmt"
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/ingestion"
	"cortexgraph/storage"
)

// ingestionConfidence is the fixed confidence assigned to create_node
// proposals authored by the Ingestion agent.
const ingestionConfidence = 0.8

// Ingestion runs the parse/chunk/embed pipeline over a raw document, then emits one
// create_node proposal per extracted concept not already present in
// storage (checked via searchByText returning empty).
func Ingestion(ctx context.Context, store storage.NodeStore, pipeline *ingestion.Pipeline, sourceID, raw string, now time.Time) ([]entities.AgentProposal, error) {
	result := pipeline.Ingest(sourceID, raw, now)

	var proposals []entities.AgentProposal
	for _, concept := range result.Concepts {
		existing, err := store.SearchNodesByText(ctx, concept, 1)
		if err != nil {
			return nil, nil
		}
		if len(existing) > 0 {
			continue
		}

		node := entities.Node{
			ID:          valueobjects.NewNodeID(),
			Kind:        config.NodeKindConcept,
			Name:        concept,
			Description: fmt.Sprintf("concept extracted from document %s", sourceID),
			CognitiveState: entities.CognitiveState{
				Strength:   0.5,
				Activation: 0.5,
				Confidence: ingestionConfidence,
			},
			Temporal: entities.Temporal{
				IntroducedAt:     now,
				LastReinforcedAt: now,
				PeakRelevanceAt:  now,
			},
			Grounding: entities.Grounding{
				SourceRefs: []string{sourceID},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		proposals = append(proposals, entities.AgentProposal{
			ID:         valueobjects.NewID(),
			AgentType:  config.AgentTypeIngestion,
			Action:     config.ActionCreateNode,
			Target:     entities.CreateNodeTarget{Node: node},
			Reasoning:  fmt.Sprintf("concept %q extracted from document %s and not found in storage", concept, sourceID),
			Confidence: ingestionConfidence,
			Status:     config.ProposalStatusProposed,
			CreatedAt:  now,
		})
	}
	return proposals, nil
}
