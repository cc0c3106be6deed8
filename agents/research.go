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

// researchGapFloor and researchGapCeiling bound the confidence range
// used for Research's gap proposals.
const (
	researchGapFloor    = 0.60
	researchGapCeiling  = 0.70
	researchLowConfidence = 0.70
)

// Research surfaces nodes with low confidence or with no incident edges
// as gap proposals, confidence 0.60-0.70.
func Research(ctx context.Context, nodeStore storage.NodeStore, edgeStore storage.EdgeStore, now time.Time) ([]entities.AgentProposal, error) {
	page, err := nodeStore.ListNodes(ctx, 1, 0)
	if err != nil {
		return nil, nil
	}

	var proposals []entities.AgentProposal
	for _, n := range page.Items {
		reason, isGap := gapReason(ctx, edgeStore, n)
		if !isGap {
			continue
		}

		proposals = append(proposals, entities.AgentProposal{
			ID:        valueobjects.NewID(),
			AgentType: config.AgentTypeResearch,
			Action:    config.ActionFlagConflict,
			Target: entities.FlagConflictTarget{
				NodeA: n.ID.String(),
				NodeB: n.ID.String(),
			},
			Reasoning:  reason,
			Confidence: gapConfidence(n.CognitiveState.Confidence),
			Status:     config.ProposalStatusProposed,
			CreatedAt:  now,
		})
	}
	return proposals, nil
}

func gapReason(ctx context.Context, edgeStore storage.EdgeStore, n entities.Node) (string, bool) {
	if n.CognitiveState.Confidence < researchLowConfidence {
		return fmt.Sprintf("node %q has confidence %.2f below threshold", n.Name, n.CognitiveState.Confidence), true
	}

	from, err := edgeStore.EdgesFrom(ctx, n.ID.String())
	if err != nil {
		return "", false
	}
	to, err := edgeStore.EdgesTo(ctx, n.ID.String())
	if err != nil {
		return "", false
	}
	if len(from) == 0 && len(to) == 0 {
		return fmt.Sprintf("node %q has no incident edges", n.Name), true
	}
	return "", false
}

// gapConfidence maps a low node confidence into the 0.60-0.70 gap range:
// lower node confidence yields a gap proposal closer to the floor.
func gapConfidence(nodeConfidence float64) float64 {
	span := researchGapCeiling - researchGapFloor
	derived := researchGapFloor + span*nodeConfidence
	if derived < researchGapFloor {
		return researchGapFloor
	}
	if derived > researchGapCeiling {
		return researchGapCeiling
	}
	return derived
}
