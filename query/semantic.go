// Package query implements semantic query, comparison, and prerequisite
// traversal over a storage snapshot.
package query

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/storage"
)

// Filters restricts a semantic query's candidate set.
type Filters struct {
	Kinds            []config.NodeKind
	DifficultyRange  *[2]float64
	AbstractionRange *[2]float64
	SourceTiers      []config.SourceTier
}

// Request is the input to Query.
type Request struct {
	Query   string
	Limit   int
	Filters Filters
}

// Response is Query's output: the ranked candidates plus a short prose
// explanation.
type Response struct {
	Results     []entities.Node
	Explanation string
}

// Query builds a candidate set via searchByText, applies filters, ranks
// by (exact name match, confidence, strength) descending, then renders
// a short explanation.
func Query(ctx context.Context, store storage.NodeStore, req Request) (Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	candidates, err := store.SearchNodesByText(ctx, req.Query, 0)
	if err != nil {
		return Response{}, err
	}

	filtered := applyFilters(candidates, req.Filters)
	rank(filtered, req.Query)

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return Response{
		Results:     filtered,
		Explanation: explain(req.Query, filtered),
	}, nil
}

func applyFilters(nodes []entities.Node, f Filters) []entities.Node {
	out := make([]entities.Node, 0, len(nodes))
	for _, n := range nodes {
		if len(f.Kinds) > 0 && !kindIn(f.Kinds, n.Kind) {
			continue
		}
		if f.DifficultyRange != nil && !inRange(n.Level.Difficulty, *f.DifficultyRange) {
			continue
		}
		if f.AbstractionRange != nil && !inRange(n.Level.Abstraction, *f.AbstractionRange) {
			continue
		}
		if len(f.SourceTiers) > 0 {
			continue // nodes carry no source_tier of their own; tier filters apply to vectors only.
		}
		out = append(out, n)
	}
	return out
}

func kindIn(kinds []config.NodeKind, k config.NodeKind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

func inRange(v float64, r [2]float64) bool {
	return v >= r[0] && v <= r[1]
}

func rank(nodes []entities.Node, query string) {
	lowerQuery := strings.ToLower(query)
	sort.SliceStable(nodes, func(i, j int) bool {
		iExact := strings.ToLower(nodes[i].Name) == lowerQuery
		jExact := strings.ToLower(nodes[j].Name) == lowerQuery
		if iExact != jExact {
			return iExact
		}
		if nodes[i].CognitiveState.Confidence != nodes[j].CognitiveState.Confidence {
			return nodes[i].CognitiveState.Confidence > nodes[j].CognitiveState.Confidence
		}
		return nodes[i].CognitiveState.Strength > nodes[j].CognitiveState.Strength
	})
}

func explain(query string, nodes []entities.Node) string {
	if len(nodes) == 0 {
		return fmt.Sprintf("No concepts found matching %q.", query)
	}
	top := nodes[0]
	if len(nodes) == 1 {
		return fmt.Sprintf("%s is the best match for %q.", top.Name, query)
	}
	related := nodes[1:]
	if len(related) > 2 {
		related = related[:2]
	}
	names := make([]string, 0, len(related))
	for _, n := range related {
		names = append(names, n.Name)
	}
	return fmt.Sprintf("%s is the best match for %q, related to %s.", top.Name, query, strings.Join(names, " and "))
}

// Comparison describes the similarities and differences between two
// nodes.
type Comparison struct {
	Similarities []string
	Differences  []string
}

// Compare computes the comparison between two nodes.
func Compare(a, b entities.Node) Comparison {
	var c Comparison

	if a.Kind == b.Kind {
		c.Similarities = append(c.Similarities, "same kind")
	}
	if math.Abs(a.Level.Difficulty-b.Level.Difficulty) < 0.2 {
		c.Similarities = append(c.Similarities, "similar difficulty")
	}
	if math.Abs(a.Level.Abstraction-b.Level.Abstraction) < 0.2 {
		c.Similarities = append(c.Similarities, "similar abstraction")
	}
	if a.Domain != nil && b.Domain != nil && *a.Domain == *b.Domain {
		c.Similarities = append(c.Similarities, "same domain")
	}

	if a.CognitiveState.Confidence > b.CognitiveState.Confidence {
		c.Differences = append(c.Differences, a.Name+" has higher confidence")
	} else if b.CognitiveState.Confidence > a.CognitiveState.Confidence {
		c.Differences = append(c.Differences, b.Name+" has higher confidence")
	}
	if a.RealWorld.UsedInProduction != b.RealWorld.UsedInProduction {
		if a.RealWorld.UsedInProduction {
			c.Differences = append(c.Differences, a.Name+" is used in production")
		} else {
			c.Differences = append(c.Differences, b.Name+" is used in production")
		}
	}
	if math.Abs(a.Level.Volatility-b.Level.Volatility) > 0.3 {
		c.Differences = append(c.Differences, "volatility differs substantially")
	}

	return c
}

// Prerequisites traverses incoming edges with relation in
// {requires, depends_on, requires_for_debugging} up to depth d,
// collecting source node ids.
func Prerequisites(ctx context.Context, store storage.EdgeStore, target string, depth int) ([]string, error) {
	if depth <= 0 {
		depth = 2
	}
	visited := map[string]bool{target: true}
	frontier := []string{target}
	var collected []string

	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, nodeID := range frontier {
			incoming, err := store.EdgesTo(ctx, nodeID)
			if err != nil {
				return nil, err
			}
			for _, e := range incoming {
				if !config.PrerequisiteRelations[e.Relation] {
					continue
				}
				src := e.FromNode.String()
				if visited[src] {
					continue
				}
				visited[src] = true
				collected = append(collected, src)
				next = append(next, src)
			}
		}
		frontier = next
	}
	return collected, nil
}
