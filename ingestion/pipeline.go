package ingestion

import (
	"time"

	"cortexgraph/domain/core/entities"
	"cortexgraph/domain/core/valueobjects"
	"cortexgraph/embedding"
)

// Config configures one pipeline run (defaults: size 512, overlap 100,
// auto_extract_concepts true).
type Config struct {
	ChunkSize          int
	Overlap            int
	AutoExtractConcepts bool
	EmbeddingDimension int
}

// DefaultConfig returns the pipeline's default settings.
func DefaultConfig() Config {
	return Config{ChunkSize: 512, Overlap: 100, AutoExtractConcepts: true, EmbeddingDimension: embedding.DefaultDimension}
}

// Result is one document's ingestion output: chunks plus the distinct
// concept list extracted across them.
type Result struct {
	SourceID string
	Chunks   []entities.DocumentChunk
	Concepts []string
}

// Pipeline runs Parse -> Chunk -> section detection -> claim
// classification -> concept extraction for one document. Ingest gives
// each chunk an embedding id but computes no vector; EmbedChunk computes
// the vector for one chunk's content.
type Pipeline struct {
	cfg   Config
	vocab *embedding.Vocabulary
}

// New constructs a Pipeline.
func New(cfg Config, vocab *embedding.Vocabulary) *Pipeline {
	if vocab == nil {
		vocab = embedding.DefaultVocabulary()
	}
	return &Pipeline{cfg: cfg, vocab: vocab}
}

// Ingest runs the full pipeline over raw document content.
func (p *Pipeline) Ingest(sourceID string, raw string, now time.Time) Result {
	parsed := Parse(raw)
	rawChunks := Chunk(parsed, ChunkConfig{Size: p.cfg.ChunkSize, Overlap: p.cfg.Overlap})

	distinctConcepts := make(map[string]bool)
	chunks := make([]entities.DocumentChunk, 0, len(rawChunks))

	for _, rc := range rawChunks {
		section := SectionFor(parsed, rc.Start)
		claimType := ClassifyClaim(rc.Content)

		var concepts []string
		if p.cfg.AutoExtractConcepts {
			concepts = p.vocab.ExtractConcepts(rc.Content)
			for _, c := range concepts {
				distinctConcepts[c] = true
			}
		}

		embeddingID := valueobjects.NewID()
		chunk := entities.DocumentChunk{
			ID:          valueobjects.NewID(),
			Content:     rc.Content,
			SourceID:    sourceID,
			Section:     section,
			ClaimType:   claimType,
			ConceptIDs:  concepts,
			EmbeddingID: &embeddingID,
			Confidence:  1.0,
			CreatedAt:   now,
		}
		chunks = append(chunks, chunk)
	}

	concepts := make([]string, 0, len(distinctConcepts))
	for c := range distinctConcepts {
		concepts = append(concepts, c)
	}

	return Result{SourceID: sourceID, Chunks: chunks, Concepts: concepts}
}

// EmbedChunk produces an embedding for one chunk via the TF-IDF fallback
// embedder, or an externally injected embed function if provided.
func (p *Pipeline) EmbedChunk(content string, embedFn func(string) []float64) []float64 {
	if embedFn != nil {
		return embedFn(content)
	}
	return embedding.Embed(content, p.vocab.Terms, p.cfg.EmbeddingDimension)
}
