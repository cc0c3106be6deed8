// Package ingestion implements document ingestion as plain functions:
// Parse, Chunk, SectionFor, ClassifyClaim, concept extraction and
// EmbedChunk, chained by Pipeline.Ingest and run in batches by Workers.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	mdImagePattern     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkPattern      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdInlineCodePattern = regexp.MustCompile("`([^`]*)`")
	mdHeadingPattern   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

	htmlEntities = map[string]string{
		"&amp;":  "&",
		"&lt;":   "<",
		"&gt;":   ">",
		"&quot;": `"`,
		"&#39;":  "'",
	}
)

// Format is the detected document format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

// DetectFormat picks HTML if the document contains '<', else markdown if
// it contains '#', else plain.
func DetectFormat(raw string) Format {
	if strings.Contains(raw, "<") {
		return FormatHTML
	}
	if strings.Contains(raw, "#") {
		return FormatMarkdown
	}
	return FormatPlain
}

// Parse detects the format and normalizes raw into plain text.
func Parse(raw string) string {
	switch DetectFormat(raw) {
	case FormatHTML:
		return parseHTML(raw)
	case FormatMarkdown:
		return parseMarkdown(raw)
	default:
		return raw
	}
}

func parseHTML(raw string) string {
	stripped := htmlTagPattern.ReplaceAllString(raw, "")
	for entity, replacement := range htmlEntities {
		stripped = strings.ReplaceAll(stripped, entity, replacement)
	}
	return stripped
}

func parseMarkdown(raw string) string {
	text := mdImagePattern.ReplaceAllString(raw, "$1")
	text = mdLinkPattern.ReplaceAllString(text, "$1")
	text = mdInlineCodePattern.ReplaceAllString(text, "$1")
	text = mdHeadingPattern.ReplaceAllString(text, "[$2]")
	return text
}
