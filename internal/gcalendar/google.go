package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"voice-scheduler-go/internal/event"
)

// GoogleSink writes events to Google Calendar. It loads client secrets and a
// previously cached OAuth token from disk; obtaining and refreshing that
// token is the sink collaborator's business, not the pipeline's.
type GoogleSink struct {
	srv        *calendar.Service
	calendarID string
}

// NewGoogleSink builds the calendar service from a credentials file and a
// cached token file.
func NewGoogleSink(ctx context.Context, credentialsFile, tokenFile, calendarID string) (*GoogleSink, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", credentialsFile, err)
	}
	config, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached oauth token at %s: %w", tokenFile, err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleSink{srv: srv, calendarID: calendarID}, nil
}

func (s *GoogleSink) CreateEvent(ctx context.Context, p event.Payload) (string, error) {
	ev := &calendar.Event{
		Summary:     p.Summary,
		Description: p.Description,
		Start: &calendar.EventDateTime{
			DateTime: rfc3339(p.Start),
			TimeZone: p.StartZone,
		},
		End: &calendar.EventDateTime{
			DateTime: rfc3339(p.End),
			TimeZone: p.EndZone,
		},
	}
	created, err := s.srv.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.HtmlLink, nil
}

func (s *GoogleSink) ListUpcoming(ctx context.Context, max int64) ([]Event, error) {
	res, err := s.srv.Events.List(s.calendarID).
		TimeMin(time.Now().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(max).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve upcoming events: %w", err)
	}
	out := make([]Event, 0, len(res.Items))
	for _, it := range res.Items {
		ev := Event{ID: it.Id, Summary: it.Summary, Link: it.HtmlLink}
		if it.Start != nil {
			ev.Start = it.Start.DateTime
		}
		if it.End != nil {
			ev.End = it.End.DateTime
		}
		out = append(out, ev)
	}
	return out, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", file, err)
	}
	return tok, nil
}
