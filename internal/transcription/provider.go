package transcription

import "context"

// Provider converts an audio reference (URL or vendor-visible path) to
// transcript text. Any error means "no transcript" and halts that run.
type Provider interface {
	Transcribe(ctx context.Context, audioRef string) (string, error)
}

// Mock is the offline provider for demo runs.
type Mock struct{}

func (Mock) Transcribe(context.Context, string) (string, error) {
	return "Schedule a call with Priya tomorrow at 3 PM to discuss the budget.", nil
}
