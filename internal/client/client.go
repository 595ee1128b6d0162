package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Record is one search result. The backend returns heterogeneous lists;
// Type discriminates ("podcast", "episode", "unknown", or empty for
// catalog entries, which are episodes).
type Record struct {
	ID           int64  `json:"id,omitempty"`
	PodcastID    int64  `json:"podcast_id,omitempty"`
	Title        string `json:"title"`
	PodcastTitle string `json:"podcast_title,omitempty"`
	Artist       string `json:"artist,omitempty"`
	Description  string `json:"description,omitempty"`
	Genre        string `json:"genre,omitempty"`
	ArtworkURL   string `json:"artwork_url,omitempty"`
	AudioURL     string `json:"audio_url,omitempty"`
	Duration     int64  `json:"duration,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	Type         string `json:"type,omitempty"`
}

// Client is a typed client for the backend's public API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Minute},
	}
}

// Health checks the backend health endpoint
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, &out)
}

// Search queries the episode catalog
func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	q := url.Values{"query": {query}}
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPodcasts queries the iTunes podcast search
func (c *Client) SearchPodcasts(ctx context.Context, query string, limit int) ([]Record, error) {
	q := url.Values{"query": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/api/itunes/podcasts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchEpisodes queries the iTunes episode search. With podcastID set
// the backend lists that podcast's episodes; query may then be empty.
func (c *Client) SearchEpisodes(ctx context.Context, query string, podcastID int64, limit int) ([]Record, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if podcastID != 0 {
		q.Set("podcast_id", strconv.FormatInt(podcastID, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Record
	if err := c.do(ctx, http.MethodGet, "/api/itunes/episodes", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transcribe requests a transcription of the audio at audioURL
func (c *Client) Transcribe(ctx context.Context, audioURL string) (string, error) {
	body := map[string]string{"audio_url": audioURL}
	var out struct {
		Transcript string `json:"transcript"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/transcribe", nil, body, &out); err != nil {
		return "", err
	}
	return out.Transcript, nil
}

// Summarize requests a summary of a transcript
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	body := map[string]string{"transcript": transcript}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/summarize", nil, body, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// do issues one API request. Non-2xx responses are returned as
// *APIError carrying the body's detail field when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Detail string `json:"detail"`
		}
		json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Detail: errBody.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
