package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Eriw/podcast-transcriber/internal/job"
)

type JobHandler struct {
	queue *job.JobQueue
}

func NewJobHandler(queue *job.JobQueue) *JobHandler {
	return &JobHandler{queue: queue}
}

// EnqueueTranscribe queues a background transcription job, optionally
// chained into a summarization of the resulting transcript
func (h *JobHandler) EnqueueTranscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioURL     string `json:"audio_url"`
		Engine       string `json:"engine,omitempty"`
		Force        bool   `json:"force,omitempty"`
		Summarize    bool   `json:"summarize,omitempty"`
		Style        string `json:"style,omitempty"`
		CustomPrompt string `json:"custom_prompt,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.AudioURL) == "" {
		jsonError(w, "audio_url is required", http.StatusBadRequest)
		return
	}

	params := job.TranscribeParams{
		Engine: req.Engine,
		Force:  req.Force,
	}
	if req.Summarize {
		params.ChainSummarize = &job.SummarizeParams{
			Style:        req.Style,
			CustomPrompt: req.CustomPrompt,
		}
	}

	j, err := h.queue.Enqueue(job.JobTranscribe, req.AudioURL, params)
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// EnqueueSummarize queues a background summarization of a stored transcript
func (h *JobHandler) EnqueueSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TranscriptID int64  `json:"transcript_id"`
		Engine       string `json:"engine,omitempty"`
		Style        string `json:"style,omitempty"`
		CustomPrompt string `json:"custom_prompt,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.TranscriptID == 0 {
		jsonError(w, "transcript_id is required", http.StatusBadRequest)
		return
	}

	params := job.SummarizeParams{
		TranscriptID: req.TranscriptID,
		Engine:       req.Engine,
		Style:        req.Style,
		CustomPrompt: req.CustomPrompt,
	}

	j, err := h.queue.Enqueue(job.JobSummarize, "", params)
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// ListJobs returns all jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.queue.ListJobs()
	if err != nil {
		jsonError(w, "failed to list jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetJob returns a single job by ID
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	j, err := h.queue.GetJob(id)
	if err != nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(j)
}

// CancelJob cancels a pending or running job
func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	if err := h.queue.CancelJob(id); err != nil {
		jsonError(w, "failed to cancel job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetryJob re-queues a failed or cancelled job
func (h *JobHandler) RetryJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	j, err := h.queue.RetryJob(id)
	if err != nil {
		jsonError(w, "failed to retry job: "+err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, j, http.StatusOK)
}
