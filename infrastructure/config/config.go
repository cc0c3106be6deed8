package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	IndexName     string // GSI1 - nodes by kind+name, chunks by source id
	GSI2IndexName string // GSI2 - edges by their "to" endpoint
	EventBusName  string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string
	ColdStartTimeout   int // milliseconds

	// WebSocket configuration
	WebSocketEndpoint string
	ConnectionsTable  string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool

	// Storage backend selection: memory, graph, vector, hybrid, or one
	// of the two reserved external names.
	StorageType string

	// Postgres connection string, used by the vector and hybrid backends.
	PostgresDSN string

	// EmbeddingDimension is the vector width the TF-IDF fallback and any
	// externally supplied embedding must agree on.
	EmbeddingDimension int

	// Domain feature flags.
	EnableVectorSearch    bool
	EnableGraphReasoning  bool
	AutoConceptExtraction bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "cortexgraph")),
		IndexName:     getEnv("INDEX_NAME", "KeywordIndex"),        // GSI1
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "EdgeIndex"), // GSI2
		EventBusName:  getEnv("EVENT_BUS_NAME", "cortexgraph-events"),

		// Lambda configuration
		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),
		ColdStartTimeout:   getEnvInt("COLD_START_TIMEOUT", 3000),

		// WebSocket configuration
		WebSocketEndpoint: getEnv("WEBSOCKET_ENDPOINT", ""),
		ConnectionsTable:  getEnv("CONNECTIONS_TABLE", "cortexgraph-connections"),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "cortexgraph"),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		// Storage
		StorageType:        getEnv("STORAGE_TYPE", "memory"),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 768),

		// Domain feature flags
		EnableVectorSearch:    getEnvBool("ENABLE_VECTOR_SEARCH", true),
		EnableGraphReasoning:  getEnvBool("ENABLE_GRAPH_REASONING", true),
		AutoConceptExtraction: getEnvBool("AUTO_CONCEPT_EXTRACTION", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present. Missing
// required credentials for the chosen storage backend fail with a
// descriptive error listing the missing keys.
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}

	var missing []string
	switch c.StorageType {
	case "graph", "hybrid":
		if c.DynamoDBTable == "" {
			missing = append(missing, "TABLE_NAME")
		}
	}
	switch c.StorageType {
	case "vector", "hybrid":
		if c.PostgresDSN == "" {
			missing = append(missing, "POSTGRES_DSN")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("storage type %q requires missing configuration: %v", c.StorageType, missing)
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
