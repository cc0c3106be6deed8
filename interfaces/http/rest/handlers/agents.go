package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cortexgraph/agents"
	"cortexgraph/domain/config"
	"cortexgraph/domain/core/entities"
	"cortexgraph/ingestion"
	"cortexgraph/orchestrator"
	"cortexgraph/storage"
)

// AgentsHandler serves POST/GET /agents.
type AgentsHandler struct {
	nodeStore storage.NodeStore
	edgeStore storage.EdgeStore
	pipeline  *ingestion.Pipeline
	queue     *orchestrator.Queue
	alignCfg  agents.AlignmentConfig
	logger    *zap.Logger
}

// NewAgentsHandler constructs an AgentsHandler.
func NewAgentsHandler(nodeStore storage.NodeStore, edgeStore storage.EdgeStore, pipeline *ingestion.Pipeline, queue *orchestrator.Queue, alignCfg agents.AlignmentConfig, logger *zap.Logger) *AgentsHandler {
	return &AgentsHandler{
		nodeStore: nodeStore,
		edgeStore: edgeStore,
		pipeline:  pipeline,
		queue:     queue,
		alignCfg:  alignCfg,
		logger:    logger,
	}
}

type runAgentRequest struct {
	SourceID string                 `json:"source_id"`
	Document string                 `json:"document"`
	Known    map[string]bool        `json:"known"`
	Target   string                 `json:"target"`
}

// Run handles POST /agents?action=ingest|align|contradict|curriculum|research.
func (h *AgentsHandler) Run(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	now := time.Now().UTC()

	var body runAgentRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	var result []entities.AgentProposal
	var err error

	switch action {
	case "ingest":
		if body.SourceID == "" || body.Document == "" {
			writeValidationError(w, "source_id and document are required")
			return
		}
		result, err = agents.Ingestion(r.Context(), h.nodeStore, h.pipeline, body.SourceID, body.Document, now)
	case "align":
		result, err = agents.Alignment(r.Context(), h.nodeStore, h.alignCfg, now)
	case "contradict":
		result, err = agents.Contradiction(r.Context(), h.edgeStore, now)
	case "curriculum":
		result, err = agents.Curriculum(r.Context(), h.nodeStore, h.edgeStore, agents.CurriculumRequest{Known: body.Known, Target: body.Target}, now)
	case "research":
		result, err = agents.Research(r.Context(), h.nodeStore, h.edgeStore, now)
	default:
		writeValidationError(w, "unknown action: "+action)
		return
	}

	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	enqueued := h.queue.EnqueueAll(r.Context(), result)
	writeOK(w, enqueued)
}

// List handles GET /agents?status=.
func (h *AgentsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeValidationError(w, "status is required")
		return
	}
	writeOK(w, h.queue.ByStatus(config.ProposalStatus(status)))
}
