package summarize

import "context"

// ModelResolver returns the current model for an engine from settings
type ModelResolver func() string

// Request is one summarization request
type Request struct {
	Transcript   string
	Style        string
	CustomPrompt string
}

// Engine produces a summary of a podcast transcript
type Engine interface {
	// Name identifies the engine ("openai", "gemini")
	Name() string

	// Summarize returns the summary text for the request
	Summarize(ctx context.Context, req Request) (string, error)
}
