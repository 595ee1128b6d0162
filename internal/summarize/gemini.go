package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiEngine summarizes transcripts using the Google Gemini API
type GeminiEngine struct {
	resolveKey    func() string
	modelResolver ModelResolver
	httpClient    *http.Client
	baseURL       string
}

func NewGeminiEngine(resolveKey func() string, modelResolver ModelResolver) *GeminiEngine {
	return &GeminiEngine{
		resolveKey:    resolveKey,
		modelResolver: modelResolver,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: geminiAPIBase,
	}
}

func (g *GeminiEngine) Name() string {
	return "gemini"
}

func (g *GeminiEngine) currentModel() string {
	if g.modelResolver != nil {
		if m := g.modelResolver(); m != "" {
			return m
		}
	}
	return "gemini-2.0-flash"
}

func (g *GeminiEngine) Summarize(ctx context.Context, req Request) (string, error) {
	apiKey := g.resolveKey()
	if apiKey == "" {
		return "", fmt.Errorf("Gemini API key not configured")
	}

	system, user := BuildPrompt(req.Style, req.CustomPrompt, req.Transcript)
	model := g.currentModel()

	reqBody := map[string]interface{}{
		"system_instruction": map[string]interface{}{
			"parts": []map[string]string{
				{"text": system},
			},
		},
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": user},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.5,
			"maxOutputTokens": 1000,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	log.Printf("[summarize-gemini] summarizing %d chars with %s", len(req.Transcript), model)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Request error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("Request error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("Summarization failed: %v", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		log.Printf("[summarize-gemini] empty response body: %s", string(body))
		if geminiResp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("Gemini blocked: %s", geminiResp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("Summarization failed: empty Gemini response")
	}

	if fr := geminiResp.Candidates[0].FinishReason; fr != "" && fr != "STOP" {
		log.Printf("[summarize-gemini] WARNING: finishReason=%s", fr)
	}

	summary := geminiResp.Candidates[0].Content.Parts[0].Text
	log.Printf("[summarize-gemini] generated summary, length: %d chars", len(summary))
	return summary, nil
}
