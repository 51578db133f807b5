package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"voice-scheduler-go/internal/config"
	"voice-scheduler-go/internal/event"
	"voice-scheduler-go/internal/extractor"
	"voice-scheduler-go/internal/gcalendar"
	"voice-scheduler-go/internal/interactive"
	"voice-scheduler-go/internal/logger"
	"voice-scheduler-go/internal/task"
	"voice-scheduler-go/internal/transcription"
)

// Result is everything one pipeline run produced.
type Result struct {
	AudioRef   string      `json:"audio_ref"`
	Transcript string      `json:"transcript"`
	Record     task.Record `json:"record"`
	Summary    string      `json:"summary"`
	EventLink  string      `json:"event_link,omitempty"`
	DurationMs int64       `json:"duration_ms"`
	Error      string      `json:"error,omitempty"`
}

// Pipeline runs one audio reference through transcription, extraction,
// optional interactive completion, and materialization. Runs are strictly
// sequential and isolated; a failed run never aborts the next one.
type Pipeline struct {
	cfg         *config.Config
	transcriber transcription.Provider
	extractor   *extractor.Extractor
	completer   *interactive.Completer // nil disables interactive back-fill
	sink        gcalendar.Sink         // nil keeps display-only mode
	log         *logger.Logger
}

func New(cfg *config.Config, tr transcription.Provider, ex *extractor.Extractor,
	cp *interactive.Completer, sink gcalendar.Sink) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		transcriber: tr,
		extractor:   ex,
		completer:   cp,
		sink:        sink,
		log:         logger.New(),
	}
}

func (p *Pipeline) Run(ctx context.Context, audioRef string) (Result, error) {
	log := p.log.WithRun(audioRef)
	start := time.Now()
	res := Result{AudioRef: audioRef}

	tr, err := p.transcriber.Transcribe(ctx, audioRef)
	if err != nil {
		log.WithError(err).Error("failed to transcribe audio")
		res.Error = fmt.Sprintf("transcription error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}
	res.Transcript = tr
	log.WithField("transcript", tr).Info("transcription complete")

	rec, err := p.extractor.Extract(ctx, tr)
	if err != nil {
		log.WithError(err).Error("failed to extract task details")
		res.Error = fmt.Sprintf("extraction error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}
	logRecord(log, "extracted task details", rec)

	if p.completer != nil {
		rec = p.completer.Complete(ctx, rec)
		logRecord(log, "task details after completion", rec)
	}
	res.Record = rec
	res.Summary = event.RenderSummary(rec)

	if p.sink != nil {
		p.writeToCalendar(ctx, log, rec, &res)
	}

	res.DurationMs = time.Since(start).Milliseconds()
	return res, nil
}

// writeToCalendar builds the vendor payload and pushes it to the sink. A
// missing or unparseable start time is fatal to this step only; the rest of
// the run's output still completes.
func (p *Pipeline) writeToCalendar(ctx context.Context, log *logrus.Entry, rec task.Record, res *Result) {
	payload, err := event.BuildPayload(rec, p.cfg.DefaultEventSpan)
	if err != nil {
		log.WithField("time", rec.Time).WithField("error", err.Error()).
			Error("skipping calendar write")
		return
	}
	link, err := p.sink.CreateEvent(ctx, payload)
	if err != nil {
		log.WithField("error", err.Error()).Error("calendar write failed")
		return
	}
	res.EventLink = link
	log.WithField("event_link", link).Info("calendar event created")
}

func logRecord(log *logrus.Entry, msg string, rec task.Record) {
	b, _ := json.MarshalIndent(rec, "", "  ")
	log.WithField("record", string(b)).Info(msg)
}
