package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAIEngine summarizes transcripts using the OpenAI Chat API
type OpenAIEngine struct {
	resolveKey    func() string
	modelResolver ModelResolver
	httpClient    *http.Client
	baseURL       string
}

func NewOpenAIEngine(resolveKey func() string, modelResolver ModelResolver) *OpenAIEngine {
	return &OpenAIEngine{
		resolveKey:    resolveKey,
		modelResolver: modelResolver,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: openAIChatURL,
	}
}

func (o *OpenAIEngine) Name() string {
	return "openai"
}

func (o *OpenAIEngine) currentModel() string {
	if o.modelResolver != nil {
		if m := o.modelResolver(); m != "" {
			return m
		}
	}
	return "gpt-4o"
}

func (o *OpenAIEngine) Summarize(ctx context.Context, req Request) (string, error) {
	apiKey := o.resolveKey()
	if apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	system, user := BuildPrompt(req.Style, req.CustomPrompt, req.Transcript)
	model := o.currentModel()

	reqBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.5,
		"max_tokens":  1000,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	log.Printf("[summarize-openai] summarizing %d chars with %s", len(req.Transcript), model)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Request error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("Request error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error: %s", upstreamErrorDetail(resp.StatusCode, body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("Summarization failed: %v", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("Summarization failed: no choices in response")
	}

	summary := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	log.Printf("[summarize-openai] generated summary, length: %d chars", len(summary))
	return summary, nil
}

// upstreamErrorDetail pulls the human message out of an OpenAI error
// body, falling back to the raw body or the HTTP status
func upstreamErrorDetail(statusCode int, body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("HTTP error %d", statusCode)
}
