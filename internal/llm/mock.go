package llm

import (
	"context"
	"fmt"
	"strings"
)

// Mock is the offline stand-in for the gateway. Extraction prompts get a
// deterministic stub record; anything else (the enhancement prompt) errors so
// callers exercise their raw-input fallback.
type Mock struct{}

const mockExtraction = `{"task": "Project sync", "with_whom": "Priya", ` +
	`"time": "2025-03-10T15:00:00Z", "location": null, "agenda": "budget review", ` +
	`"duration": null, "participants": "Priya, Rahul"}`

func (Mock) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Return only a JSON object") {
		return mockExtraction, nil
	}
	return "", fmt.Errorf("mock llm handles extraction prompts only")
}
