package event

import (
	"fmt"
	"strings"
	"time"

	"voice-scheduler-go/internal/task"
)

// Payload is the vendor-ready event representation for the calendar sink.
// Start and End each carry their own timezone label; the label is "UTC" when
// the parsed timestamp had no explicit zone, and empty when the RFC3339
// offset already says everything the vendor needs.
type Payload struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	StartZone   string
	EndZone     string
}

// BuildPayload converts a finalized record into a calendar event payload.
// It requires an ISO-parseable start time; that failing is fatal to event
// creation, so the error propagates instead of degrading to the sentinel.
// The end is start plus the fixed span. The record's duration field is not
// consulted here; see DESIGN.md for the documented gap.
func BuildPayload(rec task.Record, span time.Duration) (Payload, error) {
	start, err := task.ParseStart(rec.Time)
	if err != nil {
		return Payload{}, fmt.Errorf("cannot build calendar payload: %w", err)
	}
	end := start.Add(span)

	desc := fmt.Sprintf("With: %s\nAgenda: %s\nLocation: %s\nParticipants: %s",
		rec.WithWhom, rec.Agenda, rec.Location, strings.Join(rec.Participants, ", "))

	return Payload{
		Summary:     rec.Task,
		Description: desc,
		Start:       start,
		End:         end,
		StartZone:   zoneLabel(start),
		EndZone:     zoneLabel(end),
	}, nil
}

func zoneLabel(t time.Time) string {
	if _, offset := t.Zone(); offset == 0 {
		return "UTC"
	}
	return ""
}

// RenderSummary renders the display-mode calendar event block, one labeled
// line per field.
func RenderSummary(rec task.Record) string {
	var b strings.Builder
	b.WriteString("=== Calendar Event ===\n")
	fmt.Fprintf(&b, "Task: %s\n", rec.Task)
	fmt.Fprintf(&b, "With Whom: %s\n", rec.WithWhom)
	fmt.Fprintf(&b, "Time: %s\n", rec.Time)
	fmt.Fprintf(&b, "Location: %s\n", rec.Location)
	fmt.Fprintf(&b, "Agenda: %s\n", rec.Agenda)
	fmt.Fprintf(&b, "Duration: %s\n", rec.Duration)
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(rec.Participants, ", "))
	b.WriteString("======================")
	return b.String()
}
