// Package embedding is a deterministic, dependency-free text core for
// environments without a real embedding model: tokenize, TF-IDF embed,
// cosine similarity, keyword extraction. A float64 TF-IDF hashing
// embedder stands in for an externally-supplied vector.
package embedding

import (
	"hash/fnv"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultDimension is the fallback embedding width when a deployment
// does not override it via EMBEDDING_DIMENSION.
const DefaultDimension = 768

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize lowercases input, splits on non-alphanumeric boundaries, and
// drops tokens of length <= 2.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := tokenPattern.FindAllString(lower, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// TermFrequencies returns a normalized term-frequency map for tokens.
func TermFrequencies(tokens []string) map[string]float64 {
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	if len(tokens) == 0 {
		return counts
	}
	for t := range counts {
		counts[t] /= float64(len(tokens))
	}
	return counts
}

// Embed projects a document's term frequencies into a fixed-dimension
// vector: each term lands at index hash(term) mod dimension with weight
// tf*idf, looking up idf from vocab (falling back to 1.0 for out of
// vocabulary terms), then the whole vector is L2-normalized.
func Embed(text string, vocab map[string]float64, dimension int) []float64 {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	vec := make([]float64, dimension)
	tokens := Tokenize(text)
	tf := TermFrequencies(tokens)

	for term, freq := range tf {
		idf, ok := vocab[term]
		if !ok {
			idf = 1.0
		}
		idx := hashTerm(term) % uint32(dimension)
		vec[idx] += freq * idf
	}
	return l2Normalize(vec)
}

func hashTerm(term string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return h.Sum32()
}

func l2Normalize(vec []float64) []float64 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

// Cosine computes standard cosine similarity, padding the shorter vector
// with zeros and returning 0 when either magnitude is 0.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		dot += av * bv
		magA += av * av
		magB += bv * bv
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Keywords returns the top-k most frequent tokens of length > 2.
func Keywords(text string, k int) []string {
	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	type termCount struct {
		term  string
		count int
	}
	ranked := make([]termCount, 0, len(counts))
	for t, c := range counts {
		ranked = append(ranked, termCount{t, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].term < ranked[j].term
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].term
	}
	return out
}
