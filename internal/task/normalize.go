package task

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"voice-scheduler-go/internal/logger"
)

// Normalize turns the loose field mapping produced by the response parser
// into a complete Record. Every branch has a defined fallback; this never
// returns an error and is idempotent on its own output.
func Normalize(fields map[string]any) Record {
	log := logger.New().WithField("component", "task.normalize")

	rec := Record{
		Task:     scalarOr(fields[FieldTask], FieldTask, log),
		WithWhom: scalarOr(fields[FieldWithWhom], FieldWithWhom, log),
		Location: scalarOr(fields[FieldLocation], FieldLocation, log),
		Agenda:   scalarOr(fields[FieldAgenda], FieldAgenda, log),
		Duration: scalarOr(fields[FieldDuration], FieldDuration, log),
	}

	// ISO stamps pass through for the calendar variant; everything else goes
	// through the wall-clock validator.
	rawTime := stringOf(fields[FieldTime])
	if IsISO(rawTime) {
		rec.Time = rawTime
	} else {
		rec.Time = ValidateClock(rawTime)
	}

	rec.Participants = coerceParticipants(fields[FieldParticipants])
	return rec
}

// SplitParticipants splits a comma-separated participants string, trimming
// whitespace and dropping empty parts.
func SplitParticipants(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func coerceParticipants(v any) []string {
	var parts []string
	switch pv := v.(type) {
	case string:
		parts = SplitParticipants(pv)
	case []any:
		for _, e := range pv {
			if s := strings.TrimSpace(stringOf(e)); s != "" {
				parts = append(parts, s)
			}
		}
	case []string:
		for _, e := range pv {
			if s := strings.TrimSpace(e); s != "" {
				parts = append(parts, s)
			}
		}
	}
	if len(parts) == 0 {
		return []string{Sentinel}
	}
	return parts
}

func scalarOr(v any, name string, log *logrus.Entry) string {
	s := stringOf(v)
	if s == "" {
		log.WithField("field", name).Info("field missing, setting to N/A")
		return Sentinel
	}
	return s
}

func stringOf(v any) string {
	switch sv := v.(type) {
	case nil:
		return ""
	case string:
		return sv
	default:
		return fmt.Sprint(sv)
	}
}
