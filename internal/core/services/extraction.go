package services

import (
	"encoding/json"
	"strings"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/logger"
)

// ParseAnalysis turns a model completion into a PolicyAnalysis. Models
// frequently wrap JSON in markdown code fences or surround it with
// prose, so parsing is attempted in three passes: the raw text, the
// text with fences stripped, and the outermost brace-delimited block.
// When every pass fails the typed default record is returned so the
// caller always has a complete, well-formed analysis.
func ParseAnalysis(raw string) domain.PolicyAnalysis {
	for _, candidate := range []string{
		raw,
		stripCodeFences(raw),
		outerJSONObject(raw),
	} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		analysis := domain.DefaultPolicyAnalysis()
		if err := json.Unmarshal([]byte(candidate), &analysis); err == nil {
			return analysis
		}
	}

	logger.Warn("Analysis response was not parseable JSON, using defaults")
	return domain.DefaultPolicyAnalysis()
}

// stripCodeFences removes a surrounding ``` or ```json fence pair.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON" or empty).
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// outerJSONObject returns the substring from the first '{' to the last
// '}', or empty when no such block exists.
func outerJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
