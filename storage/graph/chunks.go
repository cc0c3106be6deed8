package graph

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	cortexerrors "cortexgraph/pkg/errors"
)

// chunkItem is the DynamoDB item shape for a document chunk: PK=CHUNK#<id>,
// SK=METADATA, GSI1 by source id for ChunksBySource.
type chunkItem struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`

	Chunk entities.DocumentChunk `dynamodbav:"Chunk"`
}

func toChunkItem(c entities.DocumentChunk) chunkItem {
	return chunkItem{
		PK:     chunkPrefix + c.ID,
		SK:     metaSK,
		GSI1PK: "SOURCE#" + c.SourceID,
		Chunk:  c,
	}
}

// StoreChunk writes a chunk item, generating an id if absent.
func (s *Store) StoreChunk(ctx context.Context, chunk entities.DocumentChunk) (entities.DocumentChunk, error) {
	if chunk.ID == "" {
		chunk.ID = valueobjects.NewID()
	}
	item := toChunkItem(chunk)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.DocumentChunk{}, err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.DocumentChunk{}, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return chunk, nil
}

// ChunksBySource queries GSI1 by source id.
func (s *Store) ChunksBySource(ctx context.Context, sourceID string) ([]entities.DocumentChunk, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "SOURCE#" + sourceID},
		},
	})
	if err != nil {
		return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
	}
	return unmarshalChunkItems(out.Items), nil
}

// ChunksByConcept scans for chunks referencing a concept id: DynamoDB
// has no native array-contains index, so this reference backend pays
// the scan cost (documented tradeoff, matching ListNodes/SearchNodesByText).
func (s *Store) ChunksByConcept(ctx context.Context, conceptID string) ([]entities.DocumentChunk, error) {
	all, err := s.scanChunks(ctx)
	if err != nil {
		return nil, err
	}
	var out []entities.DocumentChunk
	for _, c := range all {
		for _, concept := range c.ConceptIDs {
			if concept == conceptID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// DeleteChunksBySource deletes every chunk whose source id matches.
func (s *Store) DeleteChunksBySource(ctx context.Context, sourceID string) (int, error) {
	chunks, err := s.ChunksBySource(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, c := range chunks {
		_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: chunkPrefix + c.ID},
				"SK": &types.AttributeValueMemberS{Value: metaSK},
			},
		})
		if err != nil {
			return count, cortexerrors.NewBackendUnavailableError("dynamodb", err)
		}
		count++
	}
	return count, nil
}

func (s *Store) scanChunks(ctx context.Context) ([]entities.DocumentChunk, error) {
	var chunks []entities.DocumentChunk
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			FilterExpression:  aws.String("SK = :meta AND begins_with(PK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":meta":   &types.AttributeValueMemberS{Value: metaSK},
				":prefix": &types.AttributeValueMemberS{Value: chunkPrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, cortexerrors.NewBackendUnavailableError("dynamodb", err)
		}
		chunks = append(chunks, unmarshalChunkItems(out.Items)...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return chunks, nil
}

func unmarshalChunkItems(rawItems []map[string]types.AttributeValue) []entities.DocumentChunk {
	chunks := make([]entities.DocumentChunk, 0, len(rawItems))
	for _, rawItem := range rawItems {
		var item chunkItem
		if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
			continue
		}
		chunks = append(chunks, item.Chunk)
	}
	return chunks
}
