package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperCppEngine talks to a whisper.cpp HTTP server (whisper-server).
// The server runs locally, so there is no upload size limit and no
// chunk splitting.
type WhisperCppEngine struct {
	resolveURL func() string
	httpClient *http.Client
}

func NewWhisperCppEngine(resolveURL func() string) *WhisperCppEngine {
	return &WhisperCppEngine{
		resolveURL: resolveURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // transcription can be very long
		},
	}
}

func (e *WhisperCppEngine) Name() string {
	return "whisper.cpp"
}

func (e *WhisperCppEngine) Ready() error {
	if e.resolveURL() == "" {
		return fmt.Errorf("whisper server URL not configured")
	}
	return nil
}

func (e *WhisperCppEngine) MaxFileBytes() int64 {
	return 0
}

func (e *WhisperCppEngine) TranscribeFile(ctx context.Context, path string) (string, error) {
	baseURL := strings.TrimRight(e.resolveURL(), "/")
	if baseURL == "" {
		return "", fmt.Errorf("whisper server URL not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("response_format", "json")
	writer.WriteField("temperature", "0.0")
	writer.Close()

	url := baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("[transcribe-whispercpp] sending request to %s (audio: %s)", url, filepath.Base(path))

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("whisper server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse transcription response: %w", err)
	}

	return strings.TrimSpace(result.Text), nil
}
