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
	"time"
)

const openAITranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"
const maxOpenAIFileSize = 25 * 1024 * 1024 // 25MB API limit

// OpenAIEngine uses the OpenAI Whisper API
type OpenAIEngine struct {
	resolveKey   func() string
	resolveModel func() string
	httpClient   *http.Client
	baseURL      string
}

// NewOpenAIEngine creates the OpenAI engine. Key and model resolve per
// call so settings changes take effect without a restart.
func NewOpenAIEngine(resolveKey, resolveModel func() string) *OpenAIEngine {
	return &OpenAIEngine{
		resolveKey:   resolveKey,
		resolveModel: resolveModel,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
		baseURL: openAITranscriptionURL,
	}
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

func (e *OpenAIEngine) Ready() error {
	if e.resolveKey() == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func (e *OpenAIEngine) MaxFileBytes() int64 {
	return maxOpenAIFileSize
}

func (e *OpenAIEngine) TranscribeFile(ctx context.Context, path string) (string, error) {
	apiKey := e.resolveKey()
	if apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxOpenAIFileSize {
		return "", fmt.Errorf("audio file %s exceeds the 25MB size limit", filepath.Base(path))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", err
	}

	model := e.resolveModel()
	if model == "" {
		model = "whisper-1"
	}
	writer.WriteField("model", model)
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", e.baseURL, &buf)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	log.Printf("[transcribe-openai] uploading %s (%.2f MB)", filepath.Base(path), float64(info.Size())/(1024*1024))

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse transcription response: %w", err)
	}

	return result.Text, nil
}
