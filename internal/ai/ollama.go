package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaProvider calls a local Ollama server's /api/generate endpoint.
// Generation is non-streaming; the full completion comes back in one body.
type OllamaProvider struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOllamaProvider creates a provider targeting an Ollama server.
func NewOllamaProvider(baseURL, model string, temperature float64, httpClient *http.Client) *OllamaProvider {
	return &OllamaProvider{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		httpClient:  httpClient,
	}
}

// generateRequest mirrors the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse mirrors the relevant fields of the Ollama response.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Complete sends prompt to Ollama and returns the model's raw completion.
// Local models ignore JSON instructions often enough that callers must
// tolerate fenced or padded output.
func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:   p.model,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{Temperature: p.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := p.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}

	if genResp.Error != "" {
		return "", fmt.Errorf("llm error: %s", genResp.Error)
	}

	return genResp.Response, nil
}
