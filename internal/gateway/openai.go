package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultOpenAIHost is the production OpenAI API endpoint. Any
// chat-completions-compatible server works here.
const DefaultOpenAIHost = "https://api.openai.com"

// OpenAIProvider generates text through an OpenAI-compatible
// chat-completions endpoint.
type OpenAIProvider struct {
	host       string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAI returns an OpenAI-compatible provider. An empty host selects the
// production endpoint.
func NewOpenAI(host, apiKey, model string) *OpenAIProvider {
	if host == "" {
		host = DefaultOpenAIHost
	}
	return &OpenAIProvider{
		host:   host,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type openAIContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type openAIMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, image []byte) (string, error) {
	var content interface{} = prompt
	if len(image) > 0 {
		img := &struct {
			URL string `json:"url"`
		}{URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)}
		content = []openAIContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: img},
		}
	}

	body, err := json.Marshal(openAIRequest{
		Model:    p.model,
		Messages: []openAIMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal openai request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.host+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build openai request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: status %d", resp.StatusCode)
	}

	var result openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
