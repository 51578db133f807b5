package extractor

import (
	"testing"

	"voice-scheduler-go/internal/task"
)

func TestParseStrict(t *testing.T) {
	fields, outcome := Parse(`{"task":"call Bob","time":null}`)
	if outcome != OutcomeStrict {
		t.Fatalf("outcome = %v, want strict", outcome)
	}
	if fields["task"] != "call Bob" {
		t.Errorf("task = %v", fields["task"])
	}
	if fields["time"] != task.Sentinel {
		t.Errorf("null not replaced by sentinel: %v", fields["time"])
	}
}

func TestParseFallbackBraceExtraction(t *testing.T) {
	fields, outcome := Parse(`Sure! {"task":"call Bob"} Let me know if...`)
	if outcome != OutcomeFallback {
		t.Fatalf("outcome = %v, want fallback", outcome)
	}
	if fields["task"] != "call Bob" {
		t.Errorf("task = %v", fields["task"])
	}
}

func TestParseFallbackStripsFences(t *testing.T) {
	raw := "```json\n{\"task\":\"standup\",\"with_whom\":null}\n```"
	fields, outcome := Parse(raw)
	if outcome != OutcomeFallback {
		t.Fatalf("outcome = %v, want fallback", outcome)
	}
	if fields["task"] != "standup" {
		t.Errorf("task = %v", fields["task"])
	}
	if fields["with_whom"] != task.Sentinel {
		t.Errorf("null not replaced on fallback path: %v", fields["with_whom"])
	}
}

func TestParseDegradesToEmpty(t *testing.T) {
	cases := []string{
		"no braces here",
		"",
		"open only { and nothing closes",
		"{not json at all}",
	}
	for _, raw := range cases {
		fields, outcome := Parse(raw)
		if outcome != OutcomeEmpty {
			t.Errorf("Parse(%q) outcome = %v, want empty", raw, outcome)
		}
		if len(fields) != 0 {
			t.Errorf("Parse(%q) = %v, want empty mapping", raw, fields)
		}
	}
}
