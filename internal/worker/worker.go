package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Eriw/podcast-transcriber/internal/db"
	"github.com/Eriw/podcast-transcriber/internal/job"
	"github.com/Eriw/podcast-transcriber/internal/summarize"
	"github.com/Eriw/podcast-transcriber/internal/transcribe"
)

// Worker runs queued transcription and summarization jobs against the
// transcript cache
type Worker struct {
	db          *db.Database
	transcriber *transcribe.Service
	summarizer  *summarize.Service
	queue       *job.JobQueue
}

func New(database *db.Database, transcriber *transcribe.Service, summarizer *summarize.Service) *Worker {
	return &Worker{
		db:          database,
		transcriber: transcriber,
		summarizer:  summarizer,
	}
}

// Attach registers the worker's handlers on the queue
func (w *Worker) Attach(q *job.JobQueue) {
	w.queue = q
	q.RegisterHandler(job.JobTranscribe, w.HandleTranscribe)
	q.RegisterHandler(job.JobSummarize, w.HandleSummarize)
}

// HandleTranscribe processes a transcription job. Cached transcripts are
// reused unless the job was enqueued with force.
func (w *Worker) HandleTranscribe(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.TranscribeParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	if !params.Force {
		cached, err := w.db.GetTranscriptByURL(j.AudioURL)
		if err != nil {
			return fmt.Errorf("check transcript cache: %w", err)
		}
		if cached != nil {
			log.Printf("[worker] transcript cache hit for %s", j.AudioURL)
			w.setResult(j, job.TranscribeResult{
				TranscriptID: cached.ID,
				Engine:       cached.Engine,
				Length:       len(cached.Transcript),
				Cached:       true,
			})
			w.chainSummarize(j, params.ChainSummarize, cached.ID)
			updateProgress(1.0)
			return nil
		}
	}

	updateProgress(0.05)

	result, err := w.transcriber.TranscribeWith(ctx, params.Engine, j.AudioURL)
	if err != nil {
		return err
	}

	updateProgress(0.9)

	id, err := w.db.SaveTranscript(j.AudioURL, result.Transcript, result.Engine, result.DurationSecs)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	log.Printf("[worker] transcription complete: transcript %d (%d chunks, %d chars)",
		id, result.Chunks, len(result.Transcript))

	w.setResult(j, job.TranscribeResult{
		TranscriptID: id,
		Engine:       result.Engine,
		Chunks:       result.Chunks,
		Length:       len(result.Transcript),
	})
	w.chainSummarize(j, params.ChainSummarize, id)

	updateProgress(1.0)
	return nil
}

// HandleSummarize processes a summarization job and stores the summary
// on the transcript row
func (w *Worker) HandleSummarize(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.SummarizeParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	transcript, err := w.db.GetTranscript(params.TranscriptID)
	if err != nil {
		return fmt.Errorf("load transcript %d: %w", params.TranscriptID, err)
	}

	updateProgress(0.1)

	summary, err := w.summarizer.SummarizeWith(ctx, params.Engine, summarize.Request{
		Transcript:   transcript.Transcript,
		Style:        params.Style,
		CustomPrompt: params.CustomPrompt,
	})
	if err != nil {
		return err
	}

	updateProgress(0.9)

	if err := w.db.SetTranscriptSummary(transcript.ID, summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	log.Printf("[worker] summarization complete: transcript %d (%d chars)", transcript.ID, len(summary))

	w.setResult(j, job.SummarizeResult{
		TranscriptID: transcript.ID,
		Length:       len(summary),
	})

	updateProgress(1.0)
	return nil
}

// chainSummarize enqueues the follow-up summarize job when requested
func (w *Worker) chainSummarize(j *job.Job, params *job.SummarizeParams, transcriptID int64) {
	if params == nil || w.queue == nil {
		return
	}
	chain := *params
	chain.TranscriptID = transcriptID
	if _, err := w.queue.Enqueue(job.JobSummarize, j.AudioURL, chain); err != nil {
		log.Printf("[worker] failed to chain summarize job: %v", err)
	}
}

func (w *Worker) setResult(j *job.Job, result interface{}) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("[worker] marshal result: %v", err)
		return
	}
	j.Result = resultJSON
}
