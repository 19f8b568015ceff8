package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"rental-analyzer/domain"
	"rental-analyzer/metrics"
)

// ErrInvalidFinancingRequest is wrapped by every validation failure of CompareTerms.
var ErrInvalidFinancingRequest = errors.New("invalid financing request")

// roundTo2Decimals rounds a float64 to 2 decimal places
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type FinancingService struct {
	logger *zap.Logger
}

func NewFinancingService(logger *zap.Logger) *FinancingService {
	return &FinancingService{logger: logger}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFinancingRequest, fmt.Sprintf(format, args...))
}

// CompareTerms re-runs the metrics engine for every loan term in the
// requested range and ranks the terms by the caller's preference.
func (s *FinancingService) CompareTerms(
	input domain.FinancingRequest,
) (domain.FinancingResult, error) {

	if input.MinTermYears < MinLoanTermYears || input.MaxTermYears < MinLoanTermYears {
		return domain.FinancingResult{}, invalid("terms must be at least %d year", MinLoanTermYears)
	}
	if input.MinTermYears > input.MaxTermYears {
		return domain.FinancingResult{}, invalid("minimum term greater than maximum term")
	}
	if input.MaxTermYears > MaxLoanTermYears {
		return domain.FinancingResult{}, invalid("maximum term exceeds the limit of %d years", MaxLoanTermYears)
	}
	if input.MaxTermYears-input.MinTermYears > MaxTermRangeYears {
		return domain.FinancingResult{}, invalid("term range exceeds the maximum of %d years", MaxTermRangeYears)
	}

	switch input.Preference {
	case PreferenceMaximizeCashFlow, PreferenceMinimizeInterest, PreferenceBalanced:
	default:
		return domain.FinancingResult{}, invalid("unknown preference %q", input.Preference)
	}

	scenarios := []domain.FinancingScenario{}

	for term := input.MinTermYears; term <= input.MaxTermYears; term++ {
		property := input.Property
		property.LoanTerm = float64(term)

		result := ComputeMetrics(property)
		metrics.AnalysesTotal.WithLabelValues("financing").Inc()

		if input.MinMonthlyCashFlow != nil && result.MonthlyCashFlow < *input.MinMonthlyCashFlow {
			continue
		}

		scenarios = append(scenarios, domain.FinancingScenario{
			TermYears:          term,
			MonthlyDebtService: result.MonthlyDebtService,
			MonthlyCashFlow:    result.MonthlyCashFlow,
			CashOnCashReturn:   result.CashOnCashReturn,
			TotalInterest:      totalInterest(result, term),
			Reason:             generateReason(input.Preference),
		})
	}

	if len(scenarios) == 0 {
		// a valid request can still rule out every term
		s.logger.Debug("no loan term meets the minimum monthly cash flow",
			zap.Float64("min_monthly_cash_flow", *input.MinMonthlyCashFlow),
		)
		return domain.FinancingResult{Scenarios: scenarios}, nil
	}

	scoreScenarios(scenarios, input.Preference)

	sort.SliceStable(scenarios, func(i, j int) bool {
		if scenarios[i].Score != scenarios[j].Score {
			return scenarios[i].Score > scenarios[j].Score
		}
		return scenarios[i].TermYears < scenarios[j].TermYears
	})

	s.logger.Debug("financing terms compared",
		zap.Int("min_term", input.MinTermYears),
		zap.Int("max_term", input.MaxTermYears),
		zap.String("preference", input.Preference),
		zap.Int("recommended", scenarios[0].TermYears),
	)

	return domain.FinancingResult{
		RecommendedTerm: scenarios[0].TermYears,
		Scenarios:       scenarios,
	}, nil
}

// totalInterest is the interest paid over the full life of the loan.
func totalInterest(result domain.AnalysisResult, termYears int) float64 {
	if result.MonthlyDebtService == 0 {
		return 0
	}
	paid := result.MonthlyDebtService * float64(termYears) * monthsPerYear
	return math.Max(0, paid-result.LoanAmount)
}

// scoreScenarios assigns each scenario a 0-10 score relative to the others.
func scoreScenarios(scenarios []domain.FinancingScenario, preference string) {
	minCF, maxCF := math.Inf(1), math.Inf(-1)
	minInt, maxInt := math.Inf(1), math.Inf(-1)
	minTerm, maxTerm := math.MaxInt, math.MinInt
	for _, sc := range scenarios {
		minCF, maxCF = math.Min(minCF, sc.MonthlyCashFlow), math.Max(maxCF, sc.MonthlyCashFlow)
		minInt, maxInt = math.Min(minInt, sc.TotalInterest), math.Max(maxInt, sc.TotalInterest)
		minTerm, maxTerm = min(minTerm, sc.TermYears), max(maxTerm, sc.TermYears)
	}

	for i := range scenarios {
		sc := &scenarios[i]

		cashFlowScore := 10.0
		if maxCF > minCF {
			cashFlowScore = 10.0 * (sc.MonthlyCashFlow - minCF) / (maxCF - minCF)
		}
		interestScore := 10.0
		if maxInt > minInt {
			interestScore = 10.0 * (1.0 - (sc.TotalInterest-minInt)/(maxInt-minInt))
		}
		termScore := 10.0
		if maxTerm > minTerm {
			termScore = 10.0 * (1.0 - float64(sc.TermYears-minTerm)/float64(maxTerm-minTerm))
		}

		var score float64
		switch preference {
		case PreferenceMaximizeCashFlow:
			score = 0.8*cashFlowScore + 0.1*interestScore + 0.1*termScore
		case PreferenceMinimizeInterest:
			score = 0.1*cashFlowScore + 0.8*interestScore + 0.1*termScore
		case PreferenceBalanced:
			score = 0.45*cashFlowScore + 0.45*interestScore + 0.1*termScore
		}
		sc.Score = roundTo2Decimals(score)
	}
}

func generateReason(preference string) string {
	switch preference {
	case PreferenceMaximizeCashFlow:
		return "Term optimized for the highest monthly cash flow"
	case PreferenceMinimizeInterest:
		return "Term optimized for the lowest lifetime interest"
	case PreferenceBalanced:
		return "Balance between monthly cash flow and lifetime interest"
	}
	return "Recommendation based on the provided parameters"
}
