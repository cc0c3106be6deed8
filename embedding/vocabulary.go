package embedding

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is a domain term list with precomputed IDF weights, shared
// by the TF-IDF embedder and the ingestion pipeline's concept extractor
// so both draw from one data source.
type Vocabulary struct {
	Terms map[string]float64 `yaml:"terms"`
}

// LoadVocabularyYAML reads a {terms: {term: idf}} document.
func LoadVocabularyYAML(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v.Terms == nil {
		v.Terms = make(map[string]float64)
	}
	return &v, nil
}

// DefaultVocabulary returns a small built-in domain vocabulary so a
// deployment can run without an external YAML file.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{Terms: map[string]float64{
		"transformer":      2.3,
		"attention":        2.1,
		"gradient descent": 1.8,
		"backpropagation":  2.0,
		"embedding":         1.6,
		"neural network":   1.7,
		"decay":             1.4,
		"reinforcement":     1.5,
		"consolidation":     1.9,
		"graph":             1.2,
	}}
}

// ExtractConcepts returns every vocabulary term that appears as a
// case-insensitive substring of text.
func (v *Vocabulary) ExtractConcepts(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for term := range v.Terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}
