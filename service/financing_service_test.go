package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-analyzer/domain"
)

func financingRequest(pref string) domain.FinancingRequest {
	return domain.FinancingRequest{
		Property:     domain.DefaultPropertyInput(),
		MinTermYears: 15,
		MaxTermYears: 30,
		Preference:   pref,
	}
}

func TestCompareTerms_MaximizeCashFlowPicksLongestTerm(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())

	result, err := svc.CompareTerms(financingRequest(PreferenceMaximizeCashFlow))
	require.NoError(t, err)

	assert.Equal(t, 30, result.RecommendedTerm)
	assert.Equal(t, 8.0, result.Scenarios[0].Score)
	assert.Len(t, result.Scenarios, 16)
	for i := 1; i < len(result.Scenarios); i++ {
		assert.GreaterOrEqual(t, result.Scenarios[i-1].Score, result.Scenarios[i].Score)
	}
}

func TestCompareTerms_MinimizeInterestPicksShortestTerm(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())

	result, err := svc.CompareTerms(financingRequest(PreferenceMinimizeInterest))
	require.NoError(t, err)

	assert.Equal(t, 15, result.RecommendedTerm)
	top := result.Scenarios[0]
	assert.Equal(t, 9.0, top.Score)
	assert.Greater(t, top.TotalInterest, 0.0)
	assert.Equal(t, "Term optimized for the lowest lifetime interest", top.Reason)
}

func TestCompareTerms_ScenarioMatchesEngine(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())
	req := financingRequest(PreferenceBalanced)
	req.MinTermYears, req.MaxTermYears = 30, 30

	result, err := svc.CompareTerms(req)
	require.NoError(t, err)
	require.Len(t, result.Scenarios, 1)

	engine := ComputeMetrics(domain.DefaultPropertyInput())
	sc := result.Scenarios[0]
	assert.Equal(t, engine.MonthlyDebtService, sc.MonthlyDebtService)
	assert.Equal(t, engine.MonthlyCashFlow, sc.MonthlyCashFlow)
	assert.InDelta(t, engine.MonthlyDebtService*360-240000, sc.TotalInterest, 1e-6)
	assert.Equal(t, 10.0, sc.Score)
}

func TestCompareTerms_MinCashFlowFilter(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())
	req := financingRequest(PreferenceBalanced)
	floor := 0.0
	req.MinMonthlyCashFlow = &floor

	result, err := svc.CompareTerms(req)
	require.NoError(t, err)
	for _, sc := range result.Scenarios {
		assert.GreaterOrEqual(t, sc.MonthlyCashFlow, 0.0)
	}
	assert.Less(t, len(result.Scenarios), 16)

	floor = 100000
	result, err = svc.CompareTerms(req)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecommendedTerm)
	assert.NotNil(t, result.Scenarios)
	assert.Empty(t, result.Scenarios)
}

func TestCompareTerms_ZeroInterestPrefersShortTerm(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())
	req := financingRequest(PreferenceMaximizeCashFlow)
	req.Property.InterestRate = 0

	result, err := svc.CompareTerms(req)
	require.NoError(t, err)

	// every term has the same (zero) debt service, so only term length separates them
	assert.Equal(t, 15, result.RecommendedTerm)
	for _, sc := range result.Scenarios {
		assert.Equal(t, 0.0, sc.TotalInterest)
	}
}

func TestCompareTerms_Validation(t *testing.T) {
	svc := NewFinancingService(zap.NewNop())

	cases := map[string]func(*domain.FinancingRequest){
		"zero term":      func(r *domain.FinancingRequest) { r.MinTermYears = 0 },
		"inverted range": func(r *domain.FinancingRequest) { r.MinTermYears, r.MaxTermYears = 30, 15 },
		"too long":       func(r *domain.FinancingRequest) { r.MaxTermYears = 41 },
		"range too wide": func(r *domain.FinancingRequest) { r.MinTermYears, r.MaxTermYears = 1, 40 },
		"bad preference": func(r *domain.FinancingRequest) { r.Preference = "cheapest" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := financingRequest(PreferenceBalanced)
			mutate(&req)
			_, err := svc.CompareTerms(req)
			assert.ErrorIs(t, err, ErrInvalidFinancingRequest)
		})
	}
}
