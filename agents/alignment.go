// Package agents implements five state-machine-free functions over
// storage snapshots: Ingestion, Alignment, Contradiction, Curriculum,
// Research. None of them write to storage; they only produce proposals
// for the orchestrator.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/antzucaro/matchr"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage"
)

// DefaultAlignmentThreshold is the minimum name-similarity ratio the
// Alignment agent requires before proposing a merge.
const DefaultAlignmentThreshold = 0.85

// AlignmentConfig configures the Alignment agent's similarity threshold.
type AlignmentConfig struct {
	Threshold float64
}

// Alignment scans every unordered pair of nodes and proposes a merge for
// pairs whose name similarity meets or exceeds the threshold. Similarity
// is a Levenshtein ratio: matchr's edit distance normalized into a
// [0,1] score.
func Alignment(ctx context.Context, store storage.NodeStore, cfg AlignmentConfig, now time.Time) ([]entities.AgentProposal, error) {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultAlignmentThreshold
	}

	page, err := store.ListNodes(ctx, 1, 0)
	if err != nil {
		return nil, nil
	}
	nodes := page.Items

	var proposals []entities.AgentProposal
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			sim := levenshteinRatio(nodes[i].Name, nodes[j].Name)
			if sim < threshold {
				continue
			}
			proposals = append(proposals, entities.AgentProposal{
				ID:        valueobjects.NewID(),
				AgentType: config.AgentTypeAlignment,
				Action:    config.ActionMergeNodes,
				Target: entities.MergeNodesTarget{
					NodeA: nodes[i].ID.String(),
					NodeB: nodes[j].ID.String(),
				},
				Reasoning:  fmt.Sprintf("names %q and %q are %.2f similar", nodes[i].Name, nodes[j].Name, sim),
				Confidence: sim,
				Status:     config.ProposalStatusProposed,
				CreatedAt:  now,
			})
		}
	}
	return proposals, nil
}

// levenshteinRatio converts matchr's edit distance into a [0,1]
// similarity ratio: 1 - distance/maxLen.
func levenshteinRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	distance := matchr.Levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	ratio := 1 - float64(distance)/float64(maxLen)
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}
