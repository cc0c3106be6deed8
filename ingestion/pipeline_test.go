package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cortexgraph/domain/config"
	"cortexgraph/embedding"
	"cortexgraph/storage/memory"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatHTML, DetectFormat("<p>hello</p>"))
	assert.Equal(t, FormatMarkdown, DetectFormat("# heading\ntext"))
	assert.Equal(t, FormatPlain, DetectFormat("just plain text"))
}

func TestParse_StripsHTMLTagsAndEntities(t *testing.T) {
	// Arrange
	raw := "<p>A &amp; B</p>"

	// Act
	out := Parse(raw)

	// Assert
	assert.Equal(t, "A & B", out)
}

func TestParse_StripsMarkdownSyntax(t *testing.T) {
	// Arrange
	raw := "# Title\n[link](http://example.com) and `code`"

	// Act
	out := Parse(raw)

	// Assert
	assert.NotContains(t, out, "](")
	assert.NotContains(t, out, "`")
	assert.Contains(t, out, "[Title]")
	assert.Contains(t, out, "link")
	assert.Contains(t, out, "code")
}

func TestChunk_ShortDocumentYieldsOneChunk(t *testing.T) {
	// Arrange
	text := "a short document"

	// Act
	chunks := Chunk(text, ChunkConfig{Size: 512, Overlap: 100})

	// Assert
	assert.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Content)
}

func TestChunk_EmptyDocumentYieldsOneEmptyChunk(t *testing.T) {
	// Act
	chunks := Chunk("", DefaultChunkConfig())

	// Assert
	assert.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0].Content)
}

func TestChunk_LongDocumentSlidesWithOverlap(t *testing.T) {
	// Arrange
	text := make([]byte, 1200)
	for i := range text {
		text[i] = 'a'
	}

	// Act
	chunks := Chunk(string(text), ChunkConfig{Size: 512, Overlap: 100})

	// Assert
	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
}

func TestSectionFor_ReturnsIntroductionBeforeAnyHeading(t *testing.T) {
	// Arrange
	text := "intro text\n# First Section\nmore text"

	// Act
	section := SectionFor(text, 5)

	// Assert
	assert.Equal(t, "introduction", section)
}

func TestSectionFor_ReturnsNearestPrecedingHeading(t *testing.T) {
	// Arrange
	text := "# First\nbody one\n# Second\nbody two"
	position := len(text) - len("body two") - 3

	// Act
	section := SectionFor(text, position)

	// Assert
	assert.Equal(t, "Second", section)
}

func TestClassifyClaim_DefinitionBeatsOtherPatterns(t *testing.T) {
	claimType := ClassifyClaim("A gradient is defined as the vector of partial derivatives.")
	assert.Equal(t, config.ClaimTypeDefinition, claimType)
}

func TestClassifyClaim_Unknown(t *testing.T) {
	claimType := ClassifyClaim("the sky is blue today")
	assert.Equal(t, config.ClaimTypeUnknown, claimType)
}

func TestPipeline_Ingest_ProducesChunksAndConcepts(t *testing.T) {
	// Arrange
	pipeline := New(DefaultConfig(), embedding.DefaultVocabulary())
	now := time.Now().UTC()

	// Act
	result := pipeline.Ingest("doc-1", "# Intro\nGradient descent is an optimization algorithm.", now)

	// Assert
	assert.NotEmpty(t, result.Chunks)
	for _, c := range result.Chunks {
		assert.Equal(t, "doc-1", c.SourceID)
		assert.Equal(t, now, c.CreatedAt)
	}
}

func TestWorkers_Submit_ContinuesPastPerDocumentFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	pipeline := New(DefaultConfig(), embedding.DefaultVocabulary())
	workers := NewWorkers(pipeline, store, 2)

	docs := []Document{
		{SourceID: "a", Raw: "some content about gradients"},
		{SourceID: "b", Raw: "more content about attention"},
	}

	// Act
	job, err := workers.Submit(ctx, docs)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 2, job.Total)
	assert.Equal(t, 2, job.Processed)
	assert.Equal(t, 0, job.Failed)
}

func TestWorkers_CancelJob_MarksCancelled(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := memory.New()
	pipeline := New(DefaultConfig(), embedding.DefaultVocabulary())
	workers := NewWorkers(pipeline, store, 1)
	job, err := workers.Submit(ctx, []Document{{SourceID: "a", Raw: "text"}})
	assert.NoError(t, err)

	// Act
	ok := workers.CancelJob(job.ID)

	// Assert
	assert.True(t, ok)
	tracked, found := workers.Job(job.ID)
	assert.True(t, found)
	assert.True(t, tracked.Cancelled)
}

func TestWorkers_CancelJob_UnknownIDReturnsFalse(t *testing.T) {
	store := memory.New()
	pipeline := New(DefaultConfig(), embedding.DefaultVocabulary())
	workers := NewWorkers(pipeline, store, 1)

	ok := workers.CancelJob("does-not-exist")
	assert.False(t, ok)
}
