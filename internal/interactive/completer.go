package interactive

import (
	"context"
	"fmt"
	"strings"

	"voice-scheduler-go/internal/llm"
	"voice-scheduler-go/internal/logger"
	"voice-scheduler-go/internal/task"
)

// promptOrder is fixed; fields are asked for once, in this sequence, and only
// while they still hold the sentinel.
var promptOrder = []string{
	task.FieldTime,
	task.FieldLocation,
	task.FieldAgenda,
	task.FieldDuration,
	task.FieldParticipants,
}

// Completer solicits replacements for sentinel-valued fields. When an
// enhancer is set, replies are routed through a best-effort LLM rewrite;
// enhancement failure falls back to the raw reply and is never fatal.
type Completer struct {
	prompter Prompter
	enhancer llm.Client
	log      *logger.Logger
}

func NewCompleter(prompter Prompter, enhancer llm.Client) *Completer {
	return &Completer{prompter: prompter, enhancer: enhancer, log: logger.New()}
}

// BuildEnhancePrompt composes the secondary rewrite prompt for one field.
func BuildEnhancePrompt(field, input string) string {
	return fmt.Sprintf(
		"Improve the following %s information for a calendar event:\n\n"+
			"Original %s: %s\n\n"+
			"Enhanced:", field, field, input)
}

func (c *Completer) Complete(ctx context.Context, rec task.Record) task.Record {
	log := c.log.WithField("component", "interactive")

	for _, field := range promptOrder {
		if !isMissing(rec, field) {
			continue
		}
		label := fmt.Sprintf("Please provide the %s for the task '%s' (or type 'skip' to leave as 'N/A')",
			field, rec.Task)
		reply, err := c.prompter.Ask(label)
		if err != nil {
			log.WithError(err).WithField("field", field).Warn("prompt aborted, leaving as N/A")
			continue
		}
		reply = strings.TrimSpace(reply)
		if reply == "" || strings.EqualFold(reply, "skip") {
			log.WithField("field", field).Info("leaving field as N/A")
			continue
		}
		if c.enhancer != nil {
			reply = c.enhance(ctx, field, reply)
		}
		apply(&rec, field, reply)
	}
	return rec
}

func (c *Completer) enhance(ctx context.Context, field, input string) string {
	log := c.log.WithField("component", "interactive").WithField("field", field)
	log.Info("enhancing reply with llm")
	out, err := c.enhancer.Complete(ctx, BuildEnhancePrompt(field, input))
	if err != nil {
		log.WithError(err).Warn("enhancement failed, using raw reply")
		return input
	}
	if out = strings.TrimSpace(out); out == "" {
		return input
	}
	log.WithField("enhanced", out).Info("reply enhanced")
	return out
}

func isMissing(rec task.Record, field string) bool {
	switch field {
	case task.FieldTime:
		return rec.Time == task.Sentinel
	case task.FieldLocation:
		return rec.Location == task.Sentinel
	case task.FieldAgenda:
		return rec.Agenda == task.Sentinel
	case task.FieldDuration:
		return rec.Duration == task.Sentinel
	case task.FieldParticipants:
		return len(rec.Participants) == 1 && rec.Participants[0] == task.Sentinel
	}
	return false
}

func apply(rec *task.Record, field, reply string) {
	switch field {
	case task.FieldTime:
		// Keep the record invariant: the stored time is canonical wall clock,
		// ISO, or the sentinel.
		if task.IsISO(reply) {
			rec.Time = reply
		} else {
			rec.Time = task.ValidateClock(reply)
		}
	case task.FieldLocation:
		rec.Location = reply
	case task.FieldAgenda:
		rec.Agenda = reply
	case task.FieldDuration:
		rec.Duration = reply
	case task.FieldParticipants:
		if parts := task.SplitParticipants(reply); len(parts) > 0 {
			rec.Participants = parts
		}
	}
}
