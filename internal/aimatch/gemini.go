// internal/aimatch/gemini.go
// Minimal Gemini REST client implementing TextCompleter.

package aimatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-1.5-flash"
	requestTimeout = 10 * time.Second
)

var ErrEmptyCompletion = errors.New("empty completion response")

// TextCompleter turns a prompt into a single text completion.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGeminiClient builds a TextCompleter over the Gemini REST API. Model
// defaults to gemini-1.5-flash when empty.
func NewGeminiClient(apiKey, model string) TextCompleter {
	if model == "" {
		model = defaultModel
	}
	return &geminiClient{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
