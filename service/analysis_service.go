package service

import (
	"go.uber.org/zap"

	"rental-analyzer/domain"
	"rental-analyzer/metrics"
)

type AnalysisService struct {
	logger *zap.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(logger *zap.Logger) *AnalysisService {
	return &AnalysisService{logger: logger}
}

// Analyze runs the metrics engine for one deal. Inputs are expected to be
// validated by the caller; the engine itself accepts any finite numbers.
func (s *AnalysisService) Analyze(input domain.PropertyInput) domain.AnalysisResult {
	result := ComputeMetrics(input)

	metrics.AnalysesTotal.WithLabelValues("analyze").Inc()
	s.logger.Debug("property analyzed",
		zap.Float64("purchase_price", input.PurchasePrice),
		zap.Float64("monthly_cash_flow", result.MonthlyCashFlow),
		zap.Float64("cap_rate", result.CapRate),
		zap.Float64("cash_on_cash", result.CashOnCashReturn),
	)

	return result
}
