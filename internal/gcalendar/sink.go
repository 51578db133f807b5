package gcalendar

import (
	"context"
	"time"

	"voice-scheduler-go/internal/event"
)

// Event is a simplified view of a persisted calendar event.
type Event struct {
	ID      string
	Summary string
	Link    string
	Start   string
	End     string
}

// Sink persists and lists calendar events. Both operations are
// failure-tolerant at the call site: the pipeline logs and continues.
type Sink interface {
	CreateEvent(ctx context.Context, p event.Payload) (link string, err error)
	ListUpcoming(ctx context.Context, max int64) ([]Event, error)
}

// rfc3339 formats a payload timestamp for the wire.
func rfc3339(t time.Time) string {
	return t.Format(time.RFC3339)
}
