package advisory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"tsel/internal/config"
)

// GeminiSuggester generates suggestions with the Google Gemini API.
type GeminiSuggester struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGemini creates a GeminiSuggester. BaseURL in cfg overrides the API endpoint.
func NewGemini(ctx context.Context, cfg config.Advisory, httpClient *http.Client) (*GeminiSuggester, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = config.ProviderGemini.DefaultModel()
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiSuggester{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxOutputTokens),
	}, nil
}

// Name returns the provider name
func (g *GeminiSuggester) Name() string {
	return string(config.ProviderGemini)
}

// Suggest asks the model for test paths.
func (g *GeminiSuggester) Suggest(ctx context.Context, prompt string) (Response, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(g.temperature),
			MaxOutputTokens: g.maxTokens,
		},
	)
	if err != nil {
		return Response{Status: apiStatus(err)}, fmt.Errorf("gemini generate failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return Response{Status: http.StatusOK}, fmt.Errorf("gemini response missing candidates")
	}
	return Response{Status: http.StatusOK, Text: strings.TrimSpace(result.Text())}, nil
}

// apiStatus extracts the HTTP status of a failed GenAI call, 0 if unknown.
func apiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
