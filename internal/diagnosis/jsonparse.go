package diagnosis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON strips a markdown code fence from a model response so the
// payload inside can be unmarshaled. Responses without a fence pass
// through unchanged.
func extractJSON(response string) string {
	if idx := strings.Index(response, "```json"); idx >= 0 {
		rest := response[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(response, "```"); idx >= 0 {
		rest := response[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(response)
}

// parseJSONResponse unmarshals a model response into out, tolerating
// markdown fences around the JSON body.
func parseJSONResponse(response string, out any) error {
	if err := json.Unmarshal([]byte(extractJSON(response)), out); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}
