// Package di wires the storage backend, decay engine, ingestion
// pipeline, agent orchestrator and HTTP router together from a loaded
// Config, using explicit Provide*/Container constructor wiring rather
// than a DI framework.
package di

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cortexgraph/agents"
	"cortexgraph/decayengine"
	"cortexgraph/domain/config"
	"cortexgraph/embedding"
	infraconfig "cortexgraph/infrastructure/config"
	dynamolock "cortexgraph/infrastructure/persistence/dynamodb"
	"cortexgraph/ingestion"
	"cortexgraph/interfaces/http/rest"
	"cortexgraph/orchestrator"
	"cortexgraph/pkg/auth"
	"cortexgraph/pkg/observability"
	"cortexgraph/storage"
	"cortexgraph/storage/graph"
	"cortexgraph/storage/hybrid"
	"cortexgraph/storage/memory"
	"cortexgraph/storage/vector"
	"cortexgraph/workflow"
)

// Container holds every long-lived dependency the entrypoints need.
type Container struct {
	Logger      *zap.Logger
	Store       storage.Store
	Pipeline    *ingestion.Pipeline
	Workers     *ingestion.Workers
	Queue       *orchestrator.Queue
	Bridge      workflow.Bridge
	Router      *rest.Router
	DecayTicker *DecayTicker

	decayConfig config.DecayConfig
}

// ProvideLogger creates a new logger instance, using zap's production
// config outside development and its development config otherwise.
func ProvideLogger(cfg *infraconfig.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration for the graph backend.
func ProvideAWSConfig(ctx context.Context, cfg *infraconfig.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvidePostgresPool connects a pgx pool for the vector backend.
func ProvidePostgresPool(ctx context.Context, cfg *infraconfig.Config) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.PostgresDSN)
}

// ProvideStore builds the storage backend named by STORAGE_TYPE: memory,
// graph, vector, or hybrid (external1/external2 are reserved names left
// unassigned to a concrete backend).
func ProvideStore(ctx context.Context, cfg *infraconfig.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.StorageType {
	case "", "memory":
		return memory.New(), nil

	case "graph":
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := ProvideDynamoDBClient(awsCfg)
		return graph.New(client, graph.Config{TableName: cfg.DynamoDBTable}, logger), nil

	case "vector":
		pool, err := ProvidePostgresPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return vector.New(pool, logger), nil

	case "hybrid":
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := ProvideDynamoDBClient(awsCfg)
		graphStore := graph.New(client, graph.Config{TableName: cfg.DynamoDBTable}, logger)

		pool, err := ProvidePostgresPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		vectorStore := vector.New(pool, logger)

		return hybrid.New(graphStore, vectorStore, logger), nil

	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.StorageType)
	}
}

// ProvideRateLimiter builds a DynamoDB-backed distributed rate limiter
// for deployments that already carry a DynamoDB table (graph/hybrid
// storage types); other storage types have no shared table to back it
// with, so requests go unthrottled at the HTTP layer.
func ProvideRateLimiter(ctx context.Context, cfg *infraconfig.Config) (*auth.DistributedRateLimiter, error) {
	switch cfg.StorageType {
	case "graph", "hybrid":
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := ProvideDynamoDBClient(awsCfg)
		return auth.NewDistributedIPRateLimiter(client, cfg.DynamoDBTable, 120), nil
	default:
		return nil, nil
	}
}

// ProvideMetrics builds a CloudWatch metrics publisher when
// ENABLE_METRICS is set, and a disabled (nil-client) one otherwise so
// callers can hold a *observability.Metrics unconditionally.
func ProvideMetrics(ctx context.Context, cfg *infraconfig.Config) (*observability.Metrics, error) {
	if !cfg.EnableMetrics {
		return observability.NewMetrics("cortexgraph", nil, nil), nil
	}
	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return observability.NewMetrics("cortexgraph", cloudwatch.NewFromConfig(awsCfg), nil), nil
}

// ProvideDecayLock builds a DynamoDB-backed distributed mutex guarding
// the decay ticker for graph/hybrid deployments, where several replicas
// of cmd/server may share one table and would otherwise all run the
// same decay pass concurrently. memory/vector deployments have no
// shared table (and, in the memory case, no cross-process sharing at
// all), so they run unlocked.
func ProvideDecayLock(ctx context.Context, cfg *infraconfig.Config, logger *zap.Logger) (*dynamolock.DistributedLock, error) {
	switch cfg.StorageType {
	case "graph", "hybrid":
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := ProvideDynamoDBClient(awsCfg)
		return dynamolock.NewDistributedLock(client, cfg.DynamoDBTable, logger), nil
	default:
		return nil, nil
	}
}

// ProvideVocabulary loads the shared TF-IDF/concept vocabulary from
// VOCABULARY_PATH if set, else falls back to the built-in one.
func ProvideVocabulary(cfg *infraconfig.Config) (*embedding.Vocabulary, error) {
	path := os.Getenv("VOCABULARY_PATH")
	if path == "" {
		return embedding.DefaultVocabulary(), nil
	}
	return embedding.LoadVocabularyYAML(path)
}

// ProvidePipeline builds the ingestion pipeline.
func ProvidePipeline(cfg *infraconfig.Config, vocab *embedding.Vocabulary) *ingestion.Pipeline {
	pcfg := ingestion.DefaultConfig()
	pcfg.EmbeddingDimension = cfg.EmbeddingDimension
	pcfg.AutoExtractConcepts = cfg.AutoConceptExtraction
	return ingestion.New(pcfg, vocab)
}

// ProvideWorkers builds the batch ingestion worker pool.
func ProvideWorkers(pipeline *ingestion.Pipeline, store storage.ChunkStore) *ingestion.Workers {
	return ingestion.NewWorkers(pipeline, store, 4)
}

// ProvideQueue builds the proposal orchestrator.
func ProvideQueue(store storage.Store, logger *zap.Logger) *orchestrator.Queue {
	return orchestrator.New(store, orchestrator.DefaultConfig(), logger)
}

// ProvideAlignmentConfig builds the Alignment agent's threshold config,
// overridable via ALIGNMENT_THRESHOLD.
func ProvideAlignmentConfig() agents.AlignmentConfig {
	threshold := agents.DefaultAlignmentThreshold
	if v := os.Getenv("ALIGNMENT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = f
		}
	}
	return agents.AlignmentConfig{Threshold: threshold}
}

// ProvideDecayConfig loads the decay engine's tunables from DECAY_*
// env overrides.
func ProvideDecayConfig() config.DecayConfig {
	return config.LoadDecayConfigEnv()
}

// ProvideBridge constructs the workflow bridge stub.
func ProvideBridge() workflow.Bridge {
	return workflow.NewStubBridge()
}

// InitializeContainer wires every dependency into a Container.
func InitializeContainer(ctx context.Context, cfg *infraconfig.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("provide logger: %w", err)
	}

	store, err := ProvideStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("provide store: %w", err)
	}

	vocab, err := ProvideVocabulary(cfg)
	if err != nil {
		return nil, fmt.Errorf("provide vocabulary: %w", err)
	}

	pipeline := ProvidePipeline(cfg, vocab)
	workers := ProvideWorkers(pipeline, store)
	queue := ProvideQueue(store, logger)
	bridge := ProvideBridge()
	alignCfg := ProvideAlignmentConfig()

	metrics, err := ProvideMetrics(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("provide metrics: %w", err)
	}
	queue.WithMetrics(metrics)

	decayCfg := ProvideDecayConfig()
	decayTicker := NewDecayTicker(store, decayengine.New(decayCfg), logger)
	decayLock, err := ProvideDecayLock(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("provide decay lock: %w", err)
	}
	decayTicker.WithLock(decayLock).WithMetrics(metrics)

	rateLimiter, err := ProvideRateLimiter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("provide rate limiter: %w", err)
	}

	router := rest.NewRouter(rest.Config{
		Store:         store,
		Pipeline:      pipeline,
		Workers:       workers,
		Queue:         queue,
		Bridge:        bridge,
		AlignConfig:   alignCfg,
		StorageType:   cfg.StorageType,
		EnableTracing: cfg.EnableTracing,
		RateLimiter:   rateLimiter,
		JWTSecret:     cfg.JWTSecret,
		JWTIssuer:     cfg.JWTIssuer,
		Logger:        logger,
	})

	return &Container{
		Logger:      logger,
		Store:       store,
		Pipeline:    pipeline,
		Workers:     workers,
		Queue:       queue,
		Bridge:      bridge,
		Router:      router,
		DecayTicker: decayTicker,
		decayConfig: decayCfg,
	}, nil
}

// StartDecayTicker launches the decay background loop. Callers own the
// context's lifetime; cancel it to stop the loop.
func (c *Container) StartDecayTicker(ctx context.Context) {
	go c.DecayTicker.Run(ctx, c.decayConfig.TickInterval)
}
