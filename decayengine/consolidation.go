package decayengine

import (
	"time"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/embedding"
)

// ConsolidationResult is the synthesized vector plus the abstraction
// concept node the engine emits for one cluster.
type ConsolidationResult struct {
	SynthesizedVector entities.VectorPayload
	ConceptNode       entities.Node
}

// Cluster finds groups of >= 2 vectors whose pairwise cosine similarity
// is at least theta, using single-linkage grouping: a vector joins a cluster
// if it is similar enough to any existing member.
func Cluster(vectors []entities.VectorPayload, theta float64) [][]entities.VectorPayload {
	var clusters [][]entities.VectorPayload
	assigned := make([]bool, len(vectors))

	for i := range vectors {
		if assigned[i] {
			continue
		}
		cluster := []entities.VectorPayload{vectors[i]}
		assigned[i] = true
		for j := i + 1; j < len(vectors); j++ {
			if assigned[j] {
				continue
			}
			for _, member := range cluster {
				if embedding.Cosine(member.Embedding, vectors[j].Embedding) >= theta {
					cluster = append(cluster, vectors[j])
					assigned[j] = true
					break
				}
			}
		}
		if len(cluster) >= 2 {
			clusters = append(clusters, cluster)
		}
	}
	return clusters
}

// Consolidate synthesizes one vector and one abstraction concept node
// from a cluster.
func Consolidate(cluster []entities.VectorPayload, now time.Time) ConsolidationResult {
	dim := 0
	for _, v := range cluster {
		if len(v.Embedding) > dim {
			dim = len(v.Embedding)
		}
	}
	mean := make([]float64, dim)
	minConfidence := 1.0
	var entityRefs []string
	seen := make(map[string]bool)
	allLowerTier := true

	for _, v := range cluster {
		for i, x := range v.Embedding {
			mean[i] += x
		}
		if v.Confidence < minConfidence {
			minConfidence = v.Confidence
		}
		for _, ref := range v.EntityRefs {
			if !seen[ref] {
				seen[ref] = true
				entityRefs = append(entityRefs, ref)
			}
		}
		if v.AbstractionLevel != config.AbstractionLevelCode {
			allLowerTier = false
		}
	}
	for i := range mean {
		mean[i] /= float64(len(cluster))
	}

	promoted := config.AbstractionLevelMath
	if allLowerTier {
		promoted = config.AbstractionLevelIntuition
	}

	synthesized := entities.VectorPayload{
		ID:               valueobjects.NewID(),
		Embedding:        mean,
		EmbeddingType:    cluster[0].EmbeddingType,
		Collection:       cluster[0].Collection,
		EntityRefs:       entityRefs,
		Confidence:       0.95 * minConfidence,
		AbstractionLevel: promoted,
		SourceTier:       cluster[0].SourceTier,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	conceptNode := entities.Node{
		ID:          valueobjects.NewNodeID(),
		Kind:        config.NodeKindAbstraction,
		Name:        "consolidated concept",
		Description: "synthesized from a cluster of similar vectors",
		Grounding: entities.Grounding{
			SourceRefs: entityRefs,
		},
		CognitiveState: entities.CognitiveState{
			Strength:   synthesized.Confidence,
			Activation: 0.5,
			Confidence: synthesized.Confidence,
		},
		Temporal: entities.Temporal{
			IntroducedAt:     now,
			LastReinforcedAt: now,
			PeakRelevanceAt:  now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return ConsolidationResult{SynthesizedVector: synthesized, ConceptNode: conceptNode}
}

// RunConsolidationPass clusters vectors above theta and consolidates
// each cluster, returning one result per qualifying cluster.
func RunConsolidationPass(vectors []entities.VectorPayload, theta float64, now time.Time) []ConsolidationResult {
	clusters := Cluster(vectors, theta)
	out := make([]ConsolidationResult, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, Consolidate(c, now))
	}
	return out
}
