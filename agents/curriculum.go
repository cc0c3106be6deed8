package agents

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage"
)

// CurriculumRequest is the Curriculum agent's input.
type CurriculumRequest struct {
	Known  map[string]bool
	Target string
}

// Curriculum performs a backwards BFS from Target through
// requires/depends_on edges, collecting every prerequisite not already
// in Known, sorted ascending by level.difficulty. It emits one
// informational proposal (no storage mutation by default).
func Curriculum(ctx context.Context, nodeStore storage.NodeStore, edgeStore storage.EdgeStore, req CurriculumRequest, now time.Time) ([]entities.AgentProposal, error) {
	visited := map[string]bool{req.Target: true}
	frontier := []string{req.Target}
	var prerequisiteIDs []string

	for len(frontier) > 0 {
		var next []string
		for _, nodeID := range frontier {
			incoming, err := edgeStore.EdgesTo(ctx, nodeID)
			if err != nil {
				return nil, nil
			}
			for _, e := range incoming {
				if e.Relation != config.RelationRequires && e.Relation != config.RelationDependsOn {
					continue
				}
				src := e.FromNode.String()
				if visited[src] {
					continue
				}
				visited[src] = true
				if !req.Known[src] {
					prerequisiteIDs = append(prerequisiteIDs, src)
				}
				next = append(next, src)
			}
		}
		frontier = next
	}

	prerequisites := make([]entities.Node, 0, len(prerequisiteIDs))
	for _, id := range prerequisiteIDs {
		n, err := nodeStore.GetNode(ctx, id)
		if err != nil || n == nil {
			continue
		}
		prerequisites = append(prerequisites, *n)
	}
	sort.SliceStable(prerequisites, func(i, j int) bool {
		return prerequisites[i].Level.Difficulty < prerequisites[j].Level.Difficulty
	})

	names := make([]string, 0, len(prerequisites))
	for _, n := range prerequisites {
		names = append(names, n.Name)
	}

	proposal := entities.AgentProposal{
		ID:        valueobjects.NewID(),
		AgentType: config.AgentTypeCurriculum,
		Action:    config.ActionUpdateNode,
		Target: entities.UpdateNodeTarget{
			NodeID: req.Target,
			Patch:  map[string]interface{}{"prerequisites": names},
		},
		Reasoning:  fmt.Sprintf("%d prerequisites not yet known, ordered by difficulty", len(prerequisites)),
		Confidence: 0.5, // below the default auto-approve threshold, so enqueueing does not execute it
		Status:     config.ProposalStatusProposed,
		CreatedAt:  now,
	}
	return []entities.AgentProposal{proposal}, nil
}
