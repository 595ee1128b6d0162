package transcribe

import "context"

// Engine transcribes a single audio file on disk
type Engine interface {
	// Name identifies the engine ("openai", "whisper.cpp")
	Name() string

	// Ready reports whether the engine is configured for use
	Ready() error

	// TranscribeFile converts one audio file to text
	TranscribeFile(ctx context.Context, path string) (string, error)

	// MaxFileBytes is the largest upload the engine accepts, 0 for no limit
	MaxFileBytes() int64
}
