package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cortexgraph/agents"
	"cortexgraph/ingestion"
	"cortexgraph/interfaces/http/rest/handlers"
	"cortexgraph/interfaces/http/rest/middleware"
	"cortexgraph/orchestrator"
	"cortexgraph/pkg/auth"
	"cortexgraph/pkg/observability"
	"cortexgraph/storage"
	"cortexgraph/workflow"
)

// Router wires the endpoint table onto a chi mux, one route group per
// resource.
type Router struct {
	store       storage.Store
	pipeline    *ingestion.Pipeline
	workers     *ingestion.Workers
	queue       *orchestrator.Queue
	bridge      workflow.Bridge
	alignCfg    agents.AlignmentConfig
	storageType string
	tracing     bool
	rateLimiter *auth.DistributedRateLimiter
	jwtSecret   string
	jwtIssuer   string
	logger      *zap.Logger
}

// Config bundles the dependencies Router.Setup wires into handlers.
type Config struct {
	Store         storage.Store
	Pipeline      *ingestion.Pipeline
	Workers       *ingestion.Workers
	Queue         *orchestrator.Queue
	Bridge        workflow.Bridge
	AlignConfig   agents.AlignmentConfig
	StorageType   string
	EnableTracing bool
	RateLimiter   *auth.DistributedRateLimiter
	JWTSecret     string
	JWTIssuer     string
	Logger        *zap.Logger
}

// NewRouter constructs a Router from Config.
func NewRouter(cfg Config) *Router {
	return &Router{
		store:       cfg.Store,
		pipeline:    cfg.Pipeline,
		workers:     cfg.Workers,
		queue:       cfg.Queue,
		bridge:      cfg.Bridge,
		alignCfg:    cfg.AlignConfig,
		storageType: cfg.StorageType,
		tracing:     cfg.EnableTracing,
		rateLimiter: cfg.RateLimiter,
		jwtSecret:   cfg.JWTSecret,
		jwtIssuer:   cfg.JWTIssuer,
		logger:      cfg.Logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(middleware.Logger(rt.logger))

	if rt.tracing {
		router.Use(middleware.Tracing(observability.NewTracer("cortexgraph")))
	}

	if rt.rateLimiter != nil {
		router.Use(middleware.RateLimit(rt.rateLimiter))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(rt.storageType, rt.store, rt.logger)
	nodesHandler := handlers.NewNodesHandler(rt.store, rt.logger)
	queryHandler := handlers.NewQueryHandler(rt.store, rt.logger)
	agentsHandler := handlers.NewAgentsHandler(rt.store, rt.store, rt.pipeline, rt.queue, rt.alignCfg, rt.logger)
	ingestHandler := handlers.NewIngestHandler(rt.workers, rt.logger)
	workflowsHandler := handlers.NewWorkflowsHandler(rt.bridge, rt.logger)

	router.Get("/health", healthHandler.Check)

	router.Route("/query", func(r chi.Router) {
		r.Get("/", queryHandler.Get)
		r.Post("/", queryHandler.Post)
	})

	// authenticate gates the mutating routes below (bearer-token JWT
	// plus per-IP/per-user request limiting). With no JWT secret
	// configured it degrades to a pass-through so local/dev deployments
	// keep working without one.
	authenticate := func(next http.Handler) http.Handler { return next }
	authCfg := middleware.AuthConfig{JWTSecret: rt.jwtSecret, JWTIssuer: rt.jwtIssuer, Audience: "cortexgraph-api"}
	if rt.jwtSecret == "" {
		rt.logger.Warn("JWT_SECRET not set: mutating routes are unauthenticated")
	} else if authFn, err := middleware.Authenticate(authCfg, rt.logger); err != nil {
		rt.logger.Error("auth middleware disabled: invalid JWT config", zap.Error(err))
	} else {
		authenticate = authFn
		if refresher, err := middleware.NewTokenRefreshMiddleware(authCfg); err != nil {
			rt.logger.Error("token refresh endpoint disabled", zap.Error(err))
		} else {
			router.Post("/auth/refresh", refresher.RefreshToken)
		}
	}

	router.Route("/nodes", func(r chi.Router) {
		r.Get("/", nodesHandler.List)
		r.With(authenticate).Post("/", nodesHandler.Create)
	})

	router.Route("/agents", func(r chi.Router) {
		r.Get("/", agentsHandler.List)
		r.With(authenticate).Post("/", agentsHandler.Run)
	})

	router.With(authenticate).Post("/ingest", ingestHandler.Submit)

	router.Route("/workflows", func(r chi.Router) {
		r.With(authenticate).Post("/{kind}", workflowsHandler.Submit)
		r.Get("/{id}", workflowsHandler.Status)
	})

	return router
}
