package service

import (
	"encoding/json"
	"strings"
)

// extractJSONBlock pulls the JSON object out of a model reply that may
// carry a preamble or trailing prose. The heuristic takes the substring
// from the first '{' to the last '}' and parses it; anything that does
// not parse yields an empty map so the caller falls through to the
// positional fallbacks. The model is told to emit strict JSON but is
// not trusted to.
func extractJSONBlock(text string) map[string]any {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end <= start {
		return map[string]any{}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &data); err != nil {
		return map[string]any{}
	}
	if data == nil {
		return map[string]any{}
	}
	return data
}
