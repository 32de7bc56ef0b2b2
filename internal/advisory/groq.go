package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tsel/internal/config"
)

// DefaultGroqBaseURL is the OpenAI-compatible endpoint of Groq.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// GroqSuggester talks to an OpenAI-compatible chat completions endpoint
// with bearer authentication.
type GroqSuggester struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float32
	maxTokens   int
	http        *http.Client
}

// NewGroq creates a GroqSuggester
func NewGroq(cfg config.Advisory, httpClient *http.Client) *GroqSuggester {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = config.ProviderGroq.DefaultModel()
	}
	return &GroqSuggester{
		baseURL:     baseURL,
		model:       model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		http:        httpClient,
	}
}

// Name returns the provider name
func (g *GroqSuggester) Name() string {
	return string(config.ProviderGroq)
}

// Suggest sends prompt as a single user message.
func (g *GroqSuggester) Suggest(ctx context.Context, prompt string) (Response, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(request)
	if err != nil {
		return Response{}, fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{Status: resp.StatusCode, Text: truncate(string(body), 2048)}, fmt.Errorf("groq API returned status %s", resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Response{Status: resp.StatusCode, Text: truncate(string(body), 2048)}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return Response{Status: resp.StatusCode}, fmt.Errorf("response missing choices")
	}
	return Response{
		Status: resp.StatusCode,
		Text:   strings.TrimSpace(decoded.Choices[0].Message.Content),
	}, nil
}
