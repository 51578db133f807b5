package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"voice-scheduler-go/internal/config"
	"voice-scheduler-go/internal/event"
	"voice-scheduler-go/internal/extractor"
	"voice-scheduler-go/internal/gcalendar"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Transcribe(context.Context, string) (string, error) {
	return f.text, f.err
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(context.Context, string) (string, error) {
	return f.response, f.err
}

type fakeSink struct {
	payloads []event.Payload
	link     string
	err      error
}

func (f *fakeSink) CreateEvent(_ context.Context, p event.Payload) (string, error) {
	f.payloads = append(f.payloads, p)
	return f.link, f.err
}

func (f *fakeSink) ListUpcoming(context.Context, int64) ([]gcalendar.Event, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{DefaultEventSpan: time.Hour}
}

func TestRunDisplayMode(t *testing.T) {
	provider := &fakeProvider{text: "schedule a call with Priya at 3pm about the budget"}
	llmClient := &fakeLLM{response: `{"task":"call","with_whom":"Priya","time":"3:00pm",` +
		`"agenda":"budget","location":null,"duration":null,"participants":null}`}

	p := New(testConfig(), provider, extractor.New(llmClient), nil, nil)
	res, err := p.Run(context.Background(), "audio1.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Record.Time != "3:00 PM" || res.Record.Location != "N/A" {
		t.Errorf("record = %+v", res.Record)
	}
	for _, want := range []string{"Task: call", "Time: 3:00 PM", "Participants: N/A"} {
		if !strings.Contains(res.Summary, want) {
			t.Errorf("summary missing %q:\n%s", want, res.Summary)
		}
	}
	if res.EventLink != "" {
		t.Errorf("display mode produced an event link: %q", res.EventLink)
	}
}

func TestRunCalendarMode(t *testing.T) {
	provider := &fakeProvider{text: "sync with Priya"}
	llmClient := &fakeLLM{response: `{"task":"Project sync","with_whom":"Priya",` +
		`"time":"2025-03-10T15:00:00Z","location":"HQ","agenda":"budget",` +
		`"duration":"45 minutes","participants":"Priya, Rahul"}`}
	sink := &fakeSink{link: "https://calendar/e/1"}

	p := New(testConfig(), provider, extractor.New(llmClient), nil, sink)
	res, err := p.Run(context.Background(), "audio2.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EventLink != "https://calendar/e/1" {
		t.Errorf("EventLink = %q", res.EventLink)
	}
	if len(sink.payloads) != 1 {
		t.Fatalf("sink received %d payloads, want 1", len(sink.payloads))
	}
	got := sink.payloads[0]
	if got.Summary != "Project sync" {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.End.Sub(got.Start) != time.Hour {
		t.Errorf("span = %v, want the fixed 1h", got.End.Sub(got.Start))
	}
}

func TestRunCalendarSkippedWithoutISOTime(t *testing.T) {
	provider := &fakeProvider{text: "call Bob sometime"}
	llmClient := &fakeLLM{response: `{"task":"call Bob","time":null}`}
	sink := &fakeSink{link: "https://calendar/e/2"}

	p := New(testConfig(), provider, extractor.New(llmClient), nil, sink)
	res, err := p.Run(context.Background(), "audio3.wav")
	if err != nil {
		t.Fatalf("run must survive a skipped calendar step: %v", err)
	}
	if len(sink.payloads) != 0 {
		t.Errorf("sink was called despite missing start time")
	}
	// the rest of the run still completes
	if !strings.Contains(res.Summary, "Task: call Bob") {
		t.Errorf("summary missing task line:\n%s", res.Summary)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	t.Run("transcription failure aborts the run early", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("vendor down")}
		p := New(testConfig(), provider, extractor.New(&fakeLLM{}), nil, nil)
		res, err := p.Run(context.Background(), "audio4.wav")
		if err == nil {
			t.Fatal("expected error")
		}
		if res.Error == "" {
			t.Error("result should carry the failure for logging")
		}
	})

	t.Run("extraction failure aborts the run early", func(t *testing.T) {
		provider := &fakeProvider{text: "hello"}
		p := New(testConfig(), provider, extractor.New(&fakeLLM{err: errors.New("llm down")}), nil, nil)
		if _, err := p.Run(context.Background(), "audio5.wav"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("sink failure does not fail the run", func(t *testing.T) {
		provider := &fakeProvider{text: "sync"}
		llmClient := &fakeLLM{response: `{"task":"sync","time":"2025-03-10T15:00:00Z"}`}
		sink := &fakeSink{err: errors.New("quota exceeded")}
		p := New(testConfig(), provider, extractor.New(llmClient), nil, sink)
		res, err := p.Run(context.Background(), "audio6.wav")
		if err != nil {
			t.Fatalf("sink failures must be tolerated: %v", err)
		}
		if res.EventLink != "" {
			t.Errorf("EventLink = %q, want empty after sink failure", res.EventLink)
		}
	})
}
