package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rental-analyzer/domain"
)

// OpenAIProvider generates narratives through an OpenAI-compatible
// chat completions endpoint.
type OpenAIProvider struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

var _ NarrativeGenerator = (*OpenAIProvider)(nil)

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type OpenAIOptions struct {
	APIKey      string
	URL         string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func NewOpenAIProvider(opts OpenAIOptions) (*OpenAIProvider, error) {
	if opts.APIKey == "" {
		return nil, ErrAdvisorUnavailable
	}
	if opts.URL == "" {
		opts.URL = "https://api.openai.com/v1/chat/completions"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}

	return &OpenAIProvider{
		apiKey:      opts.APIKey,
		apiURL:      opts.URL,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}, nil
}

func (p *OpenAIProvider) Model() string { return p.model }

func (p *OpenAIProvider) GenerateNarrative(ctx context.Context, in domain.PropertyInput, res domain.AnalysisResult) (string, error) {
	return p.callLLM(ctx, BuildNarrativePrompt(in, res))
}

func (p *OpenAIProvider) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: p.model,
		Messages: []Message{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", classifyStatus(resp.StatusCode, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}

	if len(openAIResp.Choices) == 0 || strings.TrimSpace(openAIResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
