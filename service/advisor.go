package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"rental-analyzer/domain"
)

var (
	// ErrAdvisorUnavailable means no narrative backend is configured.
	ErrAdvisorUnavailable = errors.New("narrative advisor not configured")
	// ErrNetwork covers transport failures, timeouts and upstream 5xx.
	ErrNetwork = errors.New("narrative advisor network error")
	// ErrQuota means the upstream rejected the call for rate or quota reasons.
	ErrQuota = errors.New("narrative advisor quota exceeded")
)

// NarrativeGenerator produces free-text commentary for an analyzed deal.
// Implementations call a remote model and must honor ctx cancellation.
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, in domain.PropertyInput, res domain.AnalysisResult) (string, error)
	Model() string
}

// classifyStatus maps an upstream HTTP status to the advisor error taxonomy.
func classifyStatus(code int, cause error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrQuota, cause)
	case code >= 500, code == http.StatusRequestTimeout:
		return fmt.Errorf("%w: %v", ErrNetwork, cause)
	}
	return fmt.Errorf("narrative request rejected (status %d): %w", code, cause)
}

// classifyTransport wraps errors that never produced an HTTP response.
// Caller cancellation is passed through untouched.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

type disabledGenerator struct {
	model string
}

// NewDisabledGenerator returns a generator that always fails with ErrAdvisorUnavailable.
func NewDisabledGenerator(model string) NarrativeGenerator {
	return disabledGenerator{model: model}
}

func (d disabledGenerator) GenerateNarrative(context.Context, domain.PropertyInput, domain.AnalysisResult) (string, error) {
	return "", ErrAdvisorUnavailable
}

func (d disabledGenerator) Model() string { return d.model }
