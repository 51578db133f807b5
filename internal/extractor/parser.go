package extractor

import (
	"encoding/json"
	"strings"

	"voice-scheduler-go/internal/task"
)

// Outcome tags which path produced the parsed mapping.
type Outcome int

const (
	// OutcomeStrict: the whole response decoded as JSON.
	OutcomeStrict Outcome = iota
	// OutcomeFallback: JSON was recovered by slicing between the first '{'
	// and the last '}'.
	OutcomeFallback
	// OutcomeEmpty: no JSON object could be recovered; the mapping is empty
	// and every field is treated as absent.
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStrict:
		return "strict"
	case OutcomeFallback:
		return "fallback"
	default:
		return "empty"
	}
}

// Parse decodes an LLM response into a field mapping. It tries the whole
// string first, then brace-delimited extraction; total failure degrades to an
// empty mapping rather than an error so the pipeline can continue. JSON nulls
// become the sentinel on every successful path.
func Parse(raw string) (map[string]any, Outcome) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err == nil {
		return replaceNulls(fields), OutcomeStrict
	}

	sliced := sliceObject(raw)
	if sliced == "" {
		return map[string]any{}, OutcomeEmpty
	}
	if err := json.Unmarshal([]byte(sliced), &fields); err != nil {
		return map[string]any{}, OutcomeEmpty
	}
	return replaceNulls(fields), OutcomeFallback
}

// sliceObject cuts the substring between the first '{' and the last '}'
// inclusive, after dropping the markdown fences LLMs like to wrap JSON in.
func sliceObject(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```"} {
		s = strings.ReplaceAll(s, fence, "")
	}
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

func replaceNulls(fields map[string]any) map[string]any {
	for k, v := range fields {
		if v == nil {
			fields[k] = task.Sentinel
		}
	}
	return fields
}
