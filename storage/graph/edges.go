package graph

import (
	"context"
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

// edgeItem is the DynamoDB item shape for an edge: PK=NODE#<from>,
// SK=EDGE#<relation>#<to>, with GSI2 keyed by the "to" endpoint for
// incoming-edge lookups and GSI3 keyed by relation.
type edgeItem struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI2PK string `dynamodbav:"GSI2PK"`
	GSI2SK string `dynamodbav:"GSI2SK"`
	GSI3PK string `dynamodbav:"GSI3PK"`

	EdgeIDIndex string        `dynamodbav:"EdgeIDIndex"`
	Edge        entities.Edge `dynamodbav:"Edge"`
}

func toEdgeItem(e entities.Edge) edgeItem {
	pk, sk := edgeItemKeys(e.FromNode.String(), string(e.Relation), e.ToNode.String())
	return edgeItem{
		PK:          pk,
		SK:          sk,
		GSI2PK:      nodePrefix + e.ToNode.String(),
		GSI2SK:      edgePrefix + string(e.Relation) + "#" + e.FromNode.String(),
		GSI3PK:      "RELATION#" + string(e.Relation),
		EdgeIDIndex: edgePrefix + e.ID.String(),
		Edge:        e,
	}
}

// CreateEdge validates both endpoints exist, then writes the edge item.
func (s *Store) CreateEdge(ctx context.Context, edge entities.Edge) (entities.Edge, error) {
	fromNode, err := s.GetNode(ctx, edge.FromNode.String())
	if err != nil {
		return entities.Edge{}, err
	}
	toNode, err := s.GetNode(ctx, edge.ToNode.String())
	if err != nil {
		return entities.Edge{}, err
	}
	if fromNode == nil || toNode == nil {
		return entities.Edge{}, cortexerrors.NewNotFoundError("edge endpoint node")
	}
	if edge.ID.IsZero() {
		edge.ID = valueobjects.NewEdgeID()
	}
	if edge.Temporal.CreatedAt.IsZero() {
		edge.Temporal.CreatedAt = time.Now().UTC()
	}

	item := toEdgeItem(edge)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Edge{}, err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Edge{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return edge, nil
}

// GetEdge scans for the edge with matching EdgeIDIndex, since edges are
// keyed by (from,relation,to) rather than their own id in the primary
// item shape. Acceptable for a reference backend; a production
// deployment would add a dedicated GSI4 on EdgeIDIndex.
func (s *Store) GetEdge(ctx context.Context, id string) (*entities.Edge, error) {
	all, err := s.scanEdges(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID.String() == id {
			edge := e
			return &edge, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateEdge(ctx context.Context, id string, patch map[string]interface{}) (entities.Edge, error) {
	existing, err := s.GetEdge(ctx, id)
	if err != nil {
		return entities.Edge{}, err
	}
	if existing == nil {
		return entities.Edge{}, cortexerrors.NewNotFoundError("edge " + id)
	}
	merged := jsonMergeEdge(*existing, patch)

	// The (from, relation, to) composite key may have changed; delete the
	// old item location before writing the new one.
	oldPK, oldSK := edgeItemKeys(existing.FromNode.String(), string(existing.Relation), existing.ToNode.String())
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: oldPK},
			"SK": &types.AttributeValueMemberS{Value: oldSK},
		},
	}); err != nil {
		return entities.Edge{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}

	item := toEdgeItem(merged)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Edge{}, err
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return entities.Edge{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return merged, nil
}

func (s *Store) DeleteEdge(ctx context.Context, id string) (bool, error) {
	existing, err := s.GetEdge(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	pk, sk := edgeItemKeys(existing.FromNode.String(), string(existing.Relation), existing.ToNode.String())
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

func (s *Store) ListEdges(ctx context.Context, page, limit int) (storage.Page[entities.Edge], error) {
	all, err := s.scanEdges(ctx)
	if err != nil {
		return storage.Page[entities.Edge]{}, err
	}
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
	return storage.Page[entities.Edge]{
		Items:   append([]entities.Edge(nil), all[start:end]...),
		Total:   len(all),
		Page:    page,
		Limit:   limit,
		HasMore: end < len(all),
	}, nil
}

// EdgesFrom queries the primary key for every edge item whose PK is the
// node's outgoing partition.
func (s *Store) EdgesFrom(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	pk := nodePrefix + nodeID
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: edgePrefix},
		},
	})
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return unmarshalEdgeItems(out.Items), nil
}

// EdgesTo queries GSI2, keyed by the "to" endpoint.
func (s *Store) EdgesTo(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI2"),
		KeyConditionExpression: aws.String("GSI2PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: nodePrefix + nodeID},
		},
	})
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return unmarshalEdgeItems(out.Items), nil
}

func (s *Store) EdgesBetween(ctx context.Context, a, b string) ([]entities.Edge, error) {
	from, err := s.EdgesFrom(ctx, a)
	if err != nil {
		return nil, err
	}
	var out []entities.Edge
	for _, e := range from {
		if e.ToNode.String() == b {
			out = append(out, e)
		}
	}
	toB, err := s.EdgesFrom(ctx, b)
	if err != nil {
		return nil, err
	}
	for _, e := range toB {
		if e.ToNode.String() == a {
			out = append(out, e)
		}
	}
	return out, nil
}

// EdgesByRelation queries GSI3, keyed by relation.
func (s *Store) EdgesByRelation(ctx context.Context, relation string) ([]entities.Edge, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI3"),
		KeyConditionExpression: aws.String("GSI3PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "RELATION#" + relation},
		},
	})
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return unmarshalEdgeItems(out.Items), nil
}

// Path runs a breadth-first search bounded by maxDepth, querying
// EdgesFrom/EdgesTo per hop (non-directional edges count as traversable
// both ways, mirroring storage/memory's Path).
func (s *Store) Path(ctx context.Context, from, to string, maxDepth int) ([]entities.Edge, error) {
	if from == to {
		return nil, nil
	}
	type frontierNode struct {
		id   string
		path []entities.Edge
	}
	visited := map[string]bool{from: true}
	queue := []frontierNode{{id: from}}

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var next []frontierNode
		for _, fn := range queue {
			neighbors, err := s.neighborsOf(ctx, fn.id)
			if err != nil {
				return nil, err
			}
			for _, step := range neighbors {
				if visited[step.neighborID] {
					continue
				}
				path := append(append([]entities.Edge(nil), fn.path...), step.edge)
				if step.neighborID == to {
					return path, nil
				}
				visited[step.neighborID] = true
				next = append(next, frontierNode{id: step.neighborID, path: path})
			}
		}
		queue = next
	}
	return nil, nil
}

type neighborStep struct {
	neighborID string
	edge       entities.Edge
}

func (s *Store) neighborsOf(ctx context.Context, nodeID string) ([]neighborStep, error) {
	var steps []neighborStep
	from, err := s.EdgesFrom(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	for _, e := range from {
		steps = append(steps, neighborStep{neighborID: e.ToNode.String(), edge: e})
	}
	to, err := s.EdgesTo(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	for _, e := range to {
		if !e.Dynamics.Directional {
			steps = append(steps, neighborStep{neighborID: e.FromNode.String(), edge: e})
		}
	}
	return steps, nil
}

// edgesIncidentOn returns every edge touching nodeID, for cascade delete.
func (s *Store) edgesIncidentOn(ctx context.Context, nodeID string) ([]entities.Edge, error) {
	from, err := s.EdgesFrom(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	to, err := s.EdgesTo(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	return append(from, to...), nil
}

func (s *Store) scanEdges(ctx context.Context) ([]entities.Edge, error) {
	var edges []entities.Edge
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			FilterExpression:  aws.String("begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prefix": &types.AttributeValueMemberS{Value: edgePrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
		}
		edges = append(edges, unmarshalEdgeItems(out.Items)...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return edges, nil
}

func unmarshalEdgeItems(rawItems []map[string]types.AttributeValue) []entities.Edge {
	edges := make([]entities.Edge, 0, len(rawItems))
	for _, rawItem := range rawItems {
		var item edgeItem
		if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
			continue
		}
		edges = append(edges, item.Edge)
	}
	return edges
}
