package extractor

import (
	"context"
	"fmt"

	"voice-scheduler-go/internal/llm"
	"voice-scheduler-go/internal/logger"
	"voice-scheduler-go/internal/task"
)

// BuildPrompt composes the fixed extraction instruction for one transcript.
// The model must answer with a bare JSON object over the enumerated field set,
// using the sentinel for anything the text does not mention.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(
		"Understand the following text and extract structured information about a task. "+
			"Return only a JSON object with the following fields: "+
			"'task', 'with_whom', 'time', 'location', 'agenda', 'duration', 'participants'. "+
			"If any field is not mentioned in the text, set it to 'N/A'. "+
			"Do not include any additional text or explanations.\n\n"+
			"Text: %s\n\n"+
			"Response:", transcript)
}

// Extractor turns transcript text into a normalized task record.
type Extractor struct {
	client llm.Client
	log    *logger.Logger
}

func New(client llm.Client) *Extractor {
	return &Extractor{client: client, log: logger.New()}
}

// Extract invokes the language model and funnels the response through the
// parser and the normalizer. An LLM failure is logged and returned; the
// caller treats it as "extraction failed" for this run, no retry here.
func (e *Extractor) Extract(ctx context.Context, transcript string) (task.Record, error) {
	log := e.log.WithField("component", "extractor")

	raw, err := e.client.Complete(ctx, BuildPrompt(transcript))
	if err != nil {
		log.WithError(err).Error("llm extraction call failed")
		return task.Record{}, fmt.Errorf("llm extraction: %w", err)
	}

	// Raw response goes out before any parsing so decode failures stay
	// diagnosable.
	log.WithField("raw_response", raw).Info("received llm response")

	fields, outcome := Parse(raw)
	if outcome != OutcomeStrict {
		log.WithField("parse_outcome", outcome.String()).Warn("response was not pure JSON")
	}
	return task.Normalize(fields), nil
}
