package memory

import (
	"encoding/json"

	"cortexgraph/domain/core/entities"
	"cortexgraph/storage"
)

// applyNodePatch merges patch fields onto existing by round-tripping
// through JSON: the patch map uses the same field names as Node's json
// tags, so a partial update document maps cleanly onto struct fields
// without a hand-written field-by-field switch.
func applyNodePatch(existing entities.Node, patch map[string]interface{}) entities.Node {
	merged := mergeJSON(existing, patch)
	var out entities.Node
	_ = json.Unmarshal(merged, &out)
	return out
}

func applyEdgePatch(existing entities.Edge, patch map[string]interface{}) entities.Edge {
	merged := mergeJSON(existing, patch)
	var out entities.Edge
	_ = json.Unmarshal(merged, &out)
	return out
}

// mergeJSON marshals base to a JSON object, overlays patch keys on top,
// and returns the merged document.
func mergeJSON(base interface{}, patch map[string]interface{}) []byte {
	baseBytes, err := json.Marshal(base)
	if err != nil {
		return []byte("{}")
	}
	var baseMap map[string]interface{}
	if err := json.Unmarshal(baseBytes, &baseMap); err != nil {
		return baseBytes
	}
	for k, v := range patch {
		baseMap[k] = v
	}
	merged, err := json.Marshal(baseMap)
	if err != nil {
		return baseBytes
	}
	return merged
}

// paginate slices a pre-sorted slice into the requested page.
func paginate[T any](all []T, page, limit int) storage.Page[T] {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = len(all)
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	items := append([]T(nil), all[start:end]...)
	return storage.Page[T]{
		Items:   items,
		Total:   len(all),
		Page:    page,
		Limit:   limit,
		HasMore: end < len(all),
	}
}
