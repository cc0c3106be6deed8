package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndDropsShortTokens(t *testing.T) {
	// Act
	tokens := Tokenize("The Gradient is at 45 degrees, ok?")

	// Assert
	assert.Contains(t, tokens, "the")
	assert.Contains(t, tokens, "gradient")
	assert.Contains(t, tokens, "degrees")
	assert.NotContains(t, tokens, "ok")
	assert.NotContains(t, tokens, "at")
}

func TestTermFrequencies_NormalizesByTokenCount(t *testing.T) {
	// Act
	tf := TermFrequencies([]string{"cat", "dog", "cat"})

	// Assert
	assert.InDelta(t, 2.0/3.0, tf["cat"], 0.0001)
	assert.InDelta(t, 1.0/3.0, tf["dog"], 0.0001)
}

func TestTermFrequencies_EmptyInput(t *testing.T) {
	tf := TermFrequencies(nil)
	assert.Empty(t, tf)
}

func TestEmbed_ProducesL2NormalizedVectorOfRequestedDimension(t *testing.T) {
	// Act
	vec := Embed("gradient descent optimizes a loss function", map[string]float64{"gradient": 2.0}, 64)

	// Assert
	assert.Len(t, vec, 64)
	var sumSquares float64
	for _, v := range vec {
		sumSquares += v * v
	}
	assert.InDelta(t, 1.0, sumSquares, 0.01)
}

func TestEmbed_EmptyTextYieldsZeroVector(t *testing.T) {
	vec := Embed("", nil, 32)
	assert.Len(t, vec, 32)
	for _, v := range vec {
		assert.Equal(t, 0.0, v)
	}
}

func TestCosine_IdenticalVectorsAreOne(t *testing.T) {
	v := []float64{1, 2, 3}
	assert.InDelta(t, 1.0, Cosine(v, v), 0.0001)
}

func TestCosine_OrthogonalVectorsAreZero(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestCosine_ZeroMagnitudeReturnsZero(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{1, 1}
	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestKeywords_ReturnsTopKByFrequencyThenAlpha(t *testing.T) {
	// Act
	keywords := Keywords("gradient gradient descent descent descent attention", 2)

	// Assert
	assert.Equal(t, []string{"descent", "gradient"}, keywords)
}

func TestVocabulary_ExtractConcepts_MatchesCaseInsensitiveSubstring(t *testing.T) {
	// Arrange
	vocab := DefaultVocabulary()

	// Act
	concepts := vocab.ExtractConcepts("Attention is a key part of the Transformer architecture.")

	// Assert
	assert.Contains(t, concepts, "attention")
	assert.Contains(t, concepts, "transformer")
}
