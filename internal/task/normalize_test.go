package task

import (
	"reflect"
	"testing"
)

func TestNormalizeScalarsDefaultToSentinel(t *testing.T) {
	rec := Normalize(map[string]any{
		"task":      "call Bob",
		"with_whom": nil,
		"agenda":    "",
	})
	if rec.Task != "call Bob" {
		t.Errorf("Task = %q", rec.Task)
	}
	for name, got := range map[string]string{
		"with_whom": rec.WithWhom,
		"location":  rec.Location,
		"agenda":    rec.Agenda,
		"duration":  rec.Duration,
		"time":      rec.Time,
	} {
		if got != Sentinel {
			t.Errorf("%s = %q, want sentinel", name, got)
		}
	}
}

func TestNormalizeParticipants(t *testing.T) {
	t.Run("comma string with noise", func(t *testing.T) {
		rec := Normalize(map[string]any{"participants": "Alice, Bob ,, "})
		if want := []string{"Alice", "Bob"}; !reflect.DeepEqual(rec.Participants, want) {
			t.Errorf("Participants = %v, want %v", rec.Participants, want)
		}
	})

	t.Run("empty string becomes sentinel slice", func(t *testing.T) {
		rec := Normalize(map[string]any{"participants": ""})
		if want := []string{Sentinel}; !reflect.DeepEqual(rec.Participants, want) {
			t.Errorf("Participants = %v, want %v", rec.Participants, want)
		}
	})

	t.Run("json list", func(t *testing.T) {
		rec := Normalize(map[string]any{"participants": []any{" Alice ", "Bob", ""}})
		if want := []string{"Alice", "Bob"}; !reflect.DeepEqual(rec.Participants, want) {
			t.Errorf("Participants = %v, want %v", rec.Participants, want)
		}
	})

	t.Run("absent becomes sentinel slice", func(t *testing.T) {
		rec := Normalize(map[string]any{})
		if want := []string{Sentinel}; !reflect.DeepEqual(rec.Participants, want) {
			t.Errorf("Participants = %v, want %v", rec.Participants, want)
		}
	})
}

func TestNormalizeTime(t *testing.T) {
	if rec := Normalize(map[string]any{"time": "3:00pm"}); rec.Time != "3:00 PM" {
		t.Errorf("Time = %q, want 3:00 PM", rec.Time)
	}
	if rec := Normalize(map[string]any{"time": "garbage"}); rec.Time != Sentinel {
		t.Errorf("Time = %q, want sentinel", rec.Time)
	}
	// ISO stamps pass through untouched for the calendar variant
	iso := "2025-03-10T15:00:00Z"
	if rec := Normalize(map[string]any{"time": iso}); rec.Time != iso {
		t.Errorf("Time = %q, want %q", rec.Time, iso)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(map[string]any{
		"task":         "call",
		"with_whom":    "Priya",
		"time":         "3:00pm",
		"participants": "Alice, Bob",
	})
	second := Normalize(first.Fields())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}

	// also on a fully-defaulted record
	empty := Normalize(map[string]any{})
	if again := Normalize(empty.Fields()); !reflect.DeepEqual(empty, again) {
		t.Errorf("normalize not idempotent on defaults:\nfirst  %+v\nsecond %+v", empty, again)
	}
}

func TestNormalizeEndToEndScenario(t *testing.T) {
	rec := Normalize(map[string]any{
		"task":         "call",
		"with_whom":    "Priya",
		"time":         "3:00pm",
		"agenda":       "budget",
		"location":     nil,
		"duration":     nil,
		"participants": nil,
	})
	want := Record{
		Task:         "call",
		WithWhom:     "Priya",
		Time:         "3:00 PM",
		Location:     Sentinel,
		Agenda:       "budget",
		Duration:     Sentinel,
		Participants: []string{Sentinel},
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("got %+v, want %+v", rec, want)
	}
}
