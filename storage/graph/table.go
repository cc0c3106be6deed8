// Package graph implements a DynamoDB single-table backend for nodes,
// edges, and chunks.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"cortexgraph/domain/core/entities"
	cortexerrors "cortexgraph/pkg/errors"
)

// item prefixes for the single-table design.
const (
	nodePrefix = "NODE#"
	edgePrefix = "EDGE#"
	chunkPrefix = "CHUNK#"
	metaSK      = "METADATA"
)

// Store is the DynamoDB-backed graph storage adapter. It implements
// NodeStore, EdgeStore, ChunkStore, BulkStore and HealthCheckable;
// VectorStore methods return NotSupported, since a KV/wide-column store
// has no native vector similarity search.
type Store struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// Config configures table name and client for the DynamoDB backend.
type Config struct {
	TableName string
}

// New constructs a graph Store.
func New(client *dynamodb.Client, cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, tableName: cfg.TableName, logger: logger}
}

// Initialize verifies the table exists and is reachable.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return nil
}

// Disconnect is a no-op: the AWS SDK client has no persistent connection
// to tear down.
func (s *Store) Disconnect(ctx context.Context) error {
	return nil
}

// HealthCheck reports whether the table is describable within ctx's
// deadline.
func (s *Store) HealthCheck(ctx context.Context) (bool, error) {
	if err := s.Initialize(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func isConditionalCheckFailure(err error) bool {
	if err == nil {
		return false
	}
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func nodeKey(id string) (string, string) {
	return nodePrefix + id, metaSK
}

func edgeItemKeys(fromID, relation, toID string) (string, string) {
	return nodePrefix + fromID, fmt.Sprintf("%s%s#%s", edgePrefix, relation, toID)
}

func zapErrField(err error) zap.Field {
	return zap.Error(err)
}

// jsonMergeNode merges patch fields onto existing by round-tripping
// through JSON, the same merge rule storage/memory uses.
func jsonMergeNode(existing entities.Node, patch map[string]interface{}) entities.Node {
	baseBytes, err := json.Marshal(existing)
	if err != nil {
		return existing
	}
	var baseMap map[string]interface{}
	if err := json.Unmarshal(baseBytes, &baseMap); err != nil {
		return existing
	}
	for k, v := range patch {
		baseMap[k] = v
	}
	merged, err := json.Marshal(baseMap)
	if err != nil {
		return existing
	}
	var out entities.Node
	if err := json.Unmarshal(merged, &out); err != nil {
		return existing
	}
	return out
}

// jsonMergeEdge merges patch fields onto existing edge, same rule.
func jsonMergeEdge(existing entities.Edge, patch map[string]interface{}) entities.Edge {
	baseBytes, err := json.Marshal(existing)
	if err != nil {
		return existing
	}
	var baseMap map[string]interface{}
	if err := json.Unmarshal(baseBytes, &baseMap); err != nil {
		return existing
	}
	for k, v := range patch {
		baseMap[k] = v
	}
	merged, err := json.Marshal(baseMap)
	if err != nil {
		return existing
	}
	var out entities.Edge
	if err := json.Unmarshal(merged, &out); err != nil {
		return existing
	}
	return out
}
