package agents

import (
	"context"
	"fmt"
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage"
)

// contradictionConfidenceFloor and contradictionConfidenceCeiling bound
// the derived confidence range for flag_conflict proposals.
const (
	contradictionConfidenceFloor   = 0.70
	contradictionConfidenceCeiling = 0.90
)

// Contradiction scans edges and emits a flag_conflict proposal for every
// edge whose relation is competes_with or fails_on.
func Contradiction(ctx context.Context, store storage.EdgeStore, now time.Time) ([]entities.AgentProposal, error) {
	var proposals []entities.AgentProposal

	for _, relation := range []config.RelationType{config.RelationCompetesWith, config.RelationFailsOn} {
		edges, err := store.EdgesByRelation(ctx, string(relation))
		if err != nil {
			return nil, nil
		}
		for _, e := range edges {
			confidence := deriveContradictionConfidence(e.Confidence)
			proposals = append(proposals, entities.AgentProposal{
				ID:        valueobjects.NewID(),
				AgentType: config.AgentTypeContradiction,
				Action:    config.ActionFlagConflict,
				Target: entities.FlagConflictTarget{
					NodeA: e.FromNode.String(),
					NodeB: e.ToNode.String(),
				},
				Reasoning:  fmt.Sprintf("edge %s has relation %q", e.ID.String(), relation),
				Confidence: confidence,
				Status:     config.ProposalStatusProposed,
				CreatedAt:  now,
			})
		}
	}
	return proposals, nil
}

func deriveContradictionConfidence(edgeConfidence float64) float64 {
	span := contradictionConfidenceCeiling - contradictionConfidenceFloor
	derived := contradictionConfidenceFloor + span*edgeConfidence
	if derived < contradictionConfidenceFloor {
		return contradictionConfidenceFloor
	}
	if derived > contradictionConfidenceCeiling {
		return contradictionConfidenceCeiling
	}
	return derived
}
