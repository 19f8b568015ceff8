package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"rental-analyzer/domain"
)

func TestAnalyze_MatchesEngine(t *testing.T) {
	svc := NewAnalysisService(zaptest.NewLogger(t))

	input := domain.DefaultPropertyInput()
	input.Management = 8

	assert.Equal(t, ComputeMetrics(input), svc.Analyze(input))
}

func TestAnalyze_DegenerateInput(t *testing.T) {
	svc := NewAnalysisService(zaptest.NewLogger(t))

	result := svc.Analyze(domain.PropertyInput{})

	assert.Equal(t, 0.0, result.CapRate)
	assert.Equal(t, 0.0, result.CashOnCashReturn)
	assert.True(t, result.OnePercentRule)
	assert.True(t, result.FiftyPercentRule)
}
