package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobTranscribe JobType = "transcribe"
	JobSummarize  JobType = "summarize"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued task (transcription or summarization)
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	AudioURL    string          `json:"audio_url"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranscribeParams are parameters for a transcription job
type TranscribeParams struct {
	Engine         string           `json:"engine"`                    // "openai", "whisper.cpp"
	Force          bool             `json:"force"`                     // bypass the transcript cache
	ChainSummarize *SummarizeParams `json:"chain_summarize,omitempty"` // auto-summarize after transcribe completes
}

// SummarizeParams are parameters for a summarization job
type SummarizeParams struct {
	TranscriptID int64  `json:"transcript_id"` // transcripts row to summarize
	Engine       string `json:"engine"`        // "openai", "gemini"
	Style        string `json:"style"`         // "default", "brief", "detailed", "custom"
	CustomPrompt string `json:"custom_prompt"` // for "custom" style
}

// TranscribeResult is the output of a successful transcription
type TranscribeResult struct {
	TranscriptID int64  `json:"transcript_id"`
	Engine       string `json:"engine"`
	Chunks       int    `json:"chunks"`
	Length       int    `json:"length"` // transcript length in characters
	Cached       bool   `json:"cached"` // served from the transcript cache
}

// SummarizeResult is the output of a successful summarization
type SummarizeResult struct {
	TranscriptID int64 `json:"transcript_id"`
	Length       int   `json:"length"` // summary length in characters
}

// JobHandler processes a job. Implementations are provided by the
// transcribe/summarize workers.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
