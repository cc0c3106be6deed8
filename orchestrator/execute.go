package orchestrator

import (
	"context"
	"fmt"

	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/storage"
)

// mustNodeID wraps an id string known to already be valid (it came from
// a stored node or edge), saving callers from threading an error return
// through the merge/flag-conflict dispatch paths.
func mustNodeID(id string) valueobjects.NodeID {
	nodeID, _ := valueobjects.NewNodeIDFromString(id)
	return nodeID
}

// execute dispatches a proposal's target to the matching storage
// mutation.
func execute(ctx context.Context, store storage.Store, p entities.AgentProposal) error {
	switch p.Action {
	case config.ActionCreateNode:
		target, ok := p.Target.(entities.CreateNodeTarget)
		if !ok {
			return fmt.Errorf("create_node proposal carries wrong target type %T", p.Target)
		}
		_, err := store.CreateNode(ctx, target.Node)
		return err

	case config.ActionUpdateNode:
		target, ok := p.Target.(entities.UpdateNodeTarget)
		if !ok {
			return fmt.Errorf("update_node proposal carries wrong target type %T", p.Target)
		}
		_, err := store.UpdateNode(ctx, target.NodeID, target.Patch)
		return err

	case config.ActionCreateEdge:
		target, ok := p.Target.(entities.CreateEdgeTarget)
		if !ok {
			return fmt.Errorf("create_edge proposal carries wrong target type %T", p.Target)
		}
		_, err := store.CreateEdge(ctx, target.Edge)
		return err

	case config.ActionUpdateEdge:
		target, ok := p.Target.(entities.UpdateEdgeTarget)
		if !ok {
			return fmt.Errorf("update_edge proposal carries wrong target type %T", p.Target)
		}
		_, err := store.UpdateEdge(ctx, target.EdgeID, target.Patch)
		return err

	case config.ActionMergeNodes:
		target, ok := p.Target.(entities.MergeNodesTarget)
		if !ok {
			return fmt.Errorf("merge_nodes proposal carries wrong target type %T", p.Target)
		}
		return executeMerge(ctx, store, target)

	case config.ActionFlagConflict:
		target, ok := p.Target.(entities.FlagConflictTarget)
		if !ok {
			return fmt.Errorf("flag_conflict proposal carries wrong target type %T", p.Target)
		}
		return executeFlagConflict(ctx, store, target, p.Confidence)

	default:
		return fmt.Errorf("unknown proposal action %q", p.Action)
	}
}

// executeMerge locates both nodes, takes the higher-confidence side as
// canonical, unions groundings, updates the canonical, deletes the
// duplicate, and rewrites every edge incident on the duplicate to point
// at the canonical, deduplicating by (from, to, relation).
func executeMerge(ctx context.Context, store storage.Store, target entities.MergeNodesTarget) error {
	a, err := store.GetNode(ctx, target.NodeA)
	if err != nil {
		return err
	}
	b, err := store.GetNode(ctx, target.NodeB)
	if err != nil {
		return err
	}
	if a == nil || b == nil {
		return fmt.Errorf("merge_nodes: one or both nodes not found (%s, %s)", target.NodeA, target.NodeB)
	}

	canonical, duplicate := a, b
	if b.CognitiveState.Confidence > a.CognitiveState.Confidence {
		canonical, duplicate = b, a
	}

	mergedSourceRefs := unionStrings(canonical.Grounding.SourceRefs, duplicate.Grounding.SourceRefs)
	mergedImplRefs := unionStrings(canonical.Grounding.ImplementationRefs, duplicate.Grounding.ImplementationRefs)

	patch := map[string]interface{}{
		"grounding": map[string]interface{}{
			"source_refs":         mergedSourceRefs,
			"implementation_refs": mergedImplRefs,
		},
	}
	if _, err := store.UpdateNode(ctx, canonical.ID.String(), patch); err != nil {
		return err
	}

	if err := rewriteIncidentEdges(ctx, store, duplicate.ID.String(), canonical.ID.String()); err != nil {
		return err
	}

	_, err = store.DeleteNode(ctx, duplicate.ID.String())
	return err
}

// rewriteIncidentEdges points every edge touching duplicateID at
// canonicalID instead, dropping edges that would become exact
// (from, to, relation) duplicates of an edge the canonical already has.
func rewriteIncidentEdges(ctx context.Context, store storage.Store, duplicateID, canonicalID string) error {
	from, err := store.EdgesFrom(ctx, duplicateID)
	if err != nil {
		return err
	}
	to, err := store.EdgesTo(ctx, duplicateID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	canonicalFrom, err := store.EdgesFrom(ctx, canonicalID)
	if err != nil {
		return err
	}
	canonicalTo, err := store.EdgesTo(ctx, canonicalID)
	if err != nil {
		return err
	}
	for _, e := range canonicalFrom {
		seen[e.Key()] = true
	}
	for _, e := range canonicalTo {
		seen[e.Key()] = true
	}

	for _, e := range from {
		rewritten := e
		newFrom := canonicalID
		if e.FromNode.String() != duplicateID {
			newFrom = e.FromNode.String()
		}
		rewritten.FromNode = mustNodeID(newFrom)
		if seen[rewritten.Key()] {
			if _, err := store.DeleteEdge(ctx, e.ID.String()); err != nil {
				return err
			}
			continue
		}
		seen[rewritten.Key()] = true
		patch := map[string]interface{}{"from_node": canonicalID}
		if _, err := store.UpdateEdge(ctx, e.ID.String(), patch); err != nil {
			return err
		}
	}

	for _, e := range to {
		rewritten := e
		newTo := canonicalID
		if e.ToNode.String() != duplicateID {
			newTo = e.ToNode.String()
		}
		rewritten.ToNode = mustNodeID(newTo)
		if seen[rewritten.Key()] {
			if _, err := store.DeleteEdge(ctx, e.ID.String()); err != nil {
				return err
			}
			continue
		}
		seen[rewritten.Key()] = true
		patch := map[string]interface{}{"to_node": canonicalID}
		if _, err := store.UpdateEdge(ctx, e.ID.String(), patch); err != nil {
			return err
		}
	}

	return nil
}

// executeFlagConflict creates an inhibitory, conflicting competes_with
// edge between the two flagged nodes.
func executeFlagConflict(ctx context.Context, store storage.Store, target entities.FlagConflictTarget, confidence float64) error {
	edge := entities.Edge{
		FromNode:   mustNodeID(target.NodeA),
		ToNode:     mustNodeID(target.NodeB),
		Relation:   config.RelationCompetesWith,
		Confidence: confidence,
		Dynamics:   entities.EdgeDynamics{Inhibitory: true, Directional: false},
		Conflicting: true,
	}
	_, err := store.CreateEdge(ctx, edge)
	return err
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
