package llm

import "context"

// Client is the language-model capability the pipeline depends on. It is used
// twice per run: once for structured extraction and once for ad hoc field
// enhancement.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
