package graph

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	cortexerrors "cortexgraph/pkg/errors"
	"cortexgraph/storage"
)

// nodeItem is the DynamoDB item shape for a node: PK=NODE#<id>,
// SK=METADATA, GSI1 by kind+name for NodesByType/name lookups.
type nodeItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`

	Node entities.Node `dynamodbav:"Node"`
}

func toNodeItem(n entities.Node) nodeItem {
	pk, sk := nodeKey(n.ID.String())
	return nodeItem{
		PK:     pk,
		SK:     sk,
		GSI1PK: "KIND#" + string(n.Kind),
		GSI1SK: "NAME#" + n.Name,
		Node:   n,
	}
}

// CreateNode writes a node item, failing with Conflict if the id already exists.
func (s *Store) CreateNode(ctx context.Context, node entities.Node) (entities.Node, error) {
	if node.ID.IsZero() {
		node.ID = valueobjects.NewNodeID()
	}
	item := toNodeItem(node)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Node{}, err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if isConditionalCheckFailure(err) {
		return entities.Node{}, cortexerrors.NewConflictError("node " + node.ID.String() + " already exists")
	}
	if err != nil {
		return entities.Node{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return node, nil
}

// GetNode fetches a single node by id.
func (s *Store) GetNode(ctx context.Context, id string) (*entities.Node, error) {
	pk, sk := nodeKey(id)
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var item nodeItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &item.Node, nil
}

// UpdateNode applies a JSON-merge patch and rewrites the item, preserving
// id and created_at.
func (s *Store) UpdateNode(ctx context.Context, id string, patch map[string]interface{}) (entities.Node, error) {
	existing, err := s.GetNode(ctx, id)
	if err != nil {
		return entities.Node{}, err
	}
	if existing == nil {
		return entities.Node{}, cortexerrors.NewNotFoundError("node " + id)
	}
	merged := applyPatch(*existing, patch)
	merged.UpdatedAt = time.Now().UTC()

	item := toNodeItem(merged)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Node{}, err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Node{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return merged, nil
}

// DeleteNode removes a node and cascades every incident edge.
func (s *Store) DeleteNode(ctx context.Context, id string) (bool, error) {
	existing, err := s.GetNode(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	incident, err := s.edgesIncidentOn(ctx, id)
	if err != nil {
		return false, err
	}
	for _, e := range incident {
		if _, err := s.DeleteEdge(ctx, e.ID.String()); err != nil {
			s.logger.Warn("cascade edge delete failed", zapErrField(err))
		}
	}

	pk, sk := nodeKey(id)
	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return false, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return true, nil
}

// ListNodes scans every node item (DynamoDB has no native "list all"
// sorted by an arbitrary attribute across partitions without a GSI
// dedicated to it; this reference backend accepts the scan cost) and
// sorts by created_at descending.
func (s *Store) ListNodes(ctx context.Context, page, limit int) (storage.Page[entities.Node], error) {
	nodes, err := s.scanNodes(ctx)
	if err != nil {
		return storage.Page[entities.Node]{}, err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].CreatedAt.After(nodes[j].CreatedAt) })
	return paginateNodes(nodes, page, limit), nil
}

// SearchNodesByText performs a case-insensitive substring scan over
// name, description and canonical_name, exact name match sorted first.
func (s *Store) SearchNodesByText(ctx context.Context, query string, limit int) ([]entities.Node, error) {
	nodes, err := s.scanNodes(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var ranked []rankedNode
	for _, n := range nodes {
		rank, ok := matchRank(n, q)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedNode{node: n, rank: rank})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rank < ranked[j].rank })

	out := make([]entities.Node, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.node)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type rankedNode struct {
	node entities.Node
	rank int
}

func matchRank(n entities.Node, q string) (int, bool) {
	name := strings.ToLower(n.Name)
	if name == q {
		return 0, true
	}
	canonical := ""
	if n.CanonicalName != nil {
		canonical = strings.ToLower(*n.CanonicalName)
	}
	if strings.Contains(name, q) || strings.Contains(canonical, q) {
		return 1, true
	}
	if strings.Contains(strings.ToLower(n.Description), q) {
		return 2, true
	}
	return 0, false
}

// NodesByType queries GSI1 for the exact kind.
func (s *Store) NodesByType(ctx context.Context, kind string, limit int) ([]entities.Node, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "KIND#" + kind},
		},
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	nodes := make([]entities.Node, 0, len(out.Items))
	for _, rawItem := range out.Items {
		var item nodeItem
		if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
			continue
		}
		nodes = append(nodes, item.Node)
	}
	return nodes, nil
}

// scanNodes performs a full-table scan filtered to SK=METADATA node
// items. Acceptable for this reference backend's text-search and
// listing paths; a production deployment would route these through a
// search index instead.
func (s *Store) scanNodes(ctx context.Context) ([]entities.Node, error) {
	var nodes []entities.Node
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			FilterExpression:  aws.String("SK = :meta AND begins_with(PK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":meta":   &types.AttributeValueMemberS{Value: metaSK},
				":prefix": &types.AttributeValueMemberS{Value: nodePrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
		}
		for _, rawItem := range out.Items {
			var item nodeItem
			if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
				continue
			}
			nodes = append(nodes, item.Node)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return nodes, nil
}

func paginateNodes(all []entities.Node, page, limit int) storage.Page[entities.Node] {
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
	items := append([]entities.Node(nil), all[start:end]...)
	return storage.Page[entities.Node]{
		Items:   items,
		Total:   len(all),
		Page:    page,
		Limit:   limit,
		HasMore: end < len(all),
	}
}

// applyPatch merges patch fields onto existing by round-tripping
// through JSON, mirroring storage/memory's patch semantics so both
// backends apply an identical merge rule.
func applyPatch(existing entities.Node, patch map[string]interface{}) entities.Node {
	return jsonMergeNode(existing, patch)
}
