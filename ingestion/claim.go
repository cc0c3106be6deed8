package ingestion

import (
	"regexp"
	"strings"

	"cortexgraph/domain/config"
)

var (
	definitionPattern = regexp.MustCompile(`(?i)\b(definition|defined as)\b|^(is|means|refers to)\b`)
	methodPattern      = regexp.MustCompile(`(?i)\b(method|algorithm|approach|technique)\b.*\b(how to|implement|calculate)\b|\b(how to|implement|calculate)\b.*\b(method|algorithm|approach|technique)\b`)
	resultPattern      = regexp.MustCompile(`(?i)\b(result|showed|demonstrated|proved|conclus\w*)\b`)
	limitationPattern  = regexp.MustCompile(`(?i)\b(limitation|however|but|fail\w*)\b`)
)

// ClassifyClaim applies an ordered set of regex heuristics:
// definition -> method -> result -> limitation -> else unknown.
func ClassifyClaim(content string) config.ClaimType {
	trimmed := strings.TrimSpace(content)
	switch {
	case definitionPattern.MatchString(trimmed):
		return config.ClaimTypeDefinition
	case methodPattern.MatchString(trimmed):
		return config.ClaimTypeMethod
	case resultPattern.MatchString(trimmed):
		return config.ClaimTypeResult
	case limitationPattern.MatchString(trimmed):
		return config.ClaimTypeLimitation
	default:
		return config.ClaimTypeUnknown
	}
}
