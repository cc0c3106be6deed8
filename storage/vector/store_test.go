package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgvector_NarrowsFloat64ToFloat32(t *testing.T) {
	// Arrange
	embedding := []float64{0.1, -0.25, 1.0}

	// Act
	vec := toPgvector(embedding)

	// Assert
	assert.Len(t, vec.Slice(), 3)
	assert.InDelta(t, float32(0.1), vec.Slice()[0], 1e-6)
}

func TestFromPgvector_RoundTripsToPgvectorOutput(t *testing.T) {
	// Arrange
	embedding := []float64{0.2, 0.4, 0.6}
	vec := toPgvector(embedding)

	// Act
	out := fromPgvector(vec)

	// Assert
	assert.Len(t, out, 3)
	for i, v := range embedding {
		assert.InDelta(t, v, out[i], 1e-6)
	}
}

func TestToPgvector_EmptyEmbeddingYieldsEmptyVector(t *testing.T) {
	// Arrange + Act
	vec := toPgvector(nil)

	// Assert
	assert.Empty(t, vec.Slice())
}
