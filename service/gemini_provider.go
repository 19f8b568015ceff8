package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"rental-analyzer/domain"
)

// GeminiProvider generates narratives with Google's Gemini models.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
}

var _ NarrativeGenerator = (*GeminiProvider)(nil)

type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	BaseURL     string // overrides the public endpoint, used by tests
}

func NewGeminiProvider(ctx context.Context, opts GeminiOptions) (*GeminiProvider, error) {
	if opts.APIKey == "" {
		return nil, ErrAdvisorUnavailable
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-pro"
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		temperature: float32(opts.Temperature),
		maxTokens:   int32(opts.MaxTokens),
		timeout:     opts.Timeout,
	}, nil
}

func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) GenerateNarrative(ctx context.Context, in domain.PropertyInput, res domain.AnalysisResult) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: advisorSystemPrompt}},
		},
	}
	if p.temperature > 0 {
		config.Temperature = genai.Ptr(p.temperature)
	}
	if p.maxTokens > 0 {
		config.MaxOutputTokens = p.maxTokens
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(BuildNarrativePrompt(in, res)), config)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: %v", ErrQuota, err)
		}
		return classifyStatus(apiErr.Code, err)
	}
	return classifyTransport(err)
}
