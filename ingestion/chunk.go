package ingestion

import "strings"

// ChunkConfig configures the sliding-window chunker (defaults: size
// 512, overlap 100).
type ChunkConfig struct {
	Size    int
	Overlap int
}

// DefaultChunkConfig returns the chunker's default settings.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{Size: 512, Overlap: 100}
}

// RawChunk is one sliding-window span before section/claim/concept
// tagging is applied.
type RawChunk struct {
	Content string
	Start   int
	End     int
}

// Chunk splits text into a sliding window of cfg.Size characters with
// cfg.Overlap characters of overlap, advancing the start by
// size-overlap each step. A document shorter than size yields exactly
// one chunk covering the whole input; the empty document yields one
// empty chunk.
func Chunk(text string, cfg ChunkConfig) []RawChunk {
	if cfg.Size <= 0 {
		cfg = DefaultChunkConfig()
	}
	if len(text) == 0 {
		return []RawChunk{{Content: "", Start: 0, End: 0}}
	}
	if len(text) <= cfg.Size {
		return []RawChunk{{Content: text, Start: 0, End: len(text)}}
	}

	step := cfg.Size - cfg.Overlap
	if step <= 0 {
		step = cfg.Size
	}

	var chunks []RawChunk
	for start := 0; start < len(text); start += step {
		end := start + cfg.Size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, RawChunk{Content: text[start:end], Start: start, End: end})
		if end == len(text) {
			break
		}
	}
	return chunks
}

// SectionFor scans backwards from position in text to the nearest
// preceding markdown heading line, returning its title, or
// "introduction" if none precedes it.
func SectionFor(text string, position int) string {
	if position > len(text) {
		position = len(text)
	}
	section := "introduction"
	for _, m := range mdHeadingPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] >= position {
			break
		}
		section = strings.TrimSpace(text[m[4]:m[5]])
	}
	return section
}
