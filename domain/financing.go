package domain

type FinancingRequest struct {
	Property           PropertyInput `json:"property"`
	MinTermYears       int           `json:"minTermYears"`
	MaxTermYears       int           `json:"maxTermYears"`
	MinMonthlyCashFlow *float64      `json:"minMonthlyCashFlow,omitempty"`
	Preference         string        `json:"preference"` // "maximize_cash_flow", "minimize_interest", "balanced"
}

type FinancingScenario struct {
	TermYears          int     `json:"termYears"`
	MonthlyDebtService float64 `json:"monthlyDebtService"`
	MonthlyCashFlow    float64 `json:"monthlyCashFlow"`
	CashOnCashReturn   float64 `json:"cashOnCashReturn"`
	TotalInterest      float64 `json:"totalInterest"`
	Score              float64 `json:"score"`
	Reason             string  `json:"reason"`
}

// FinancingResult lists the surviving terms best first. RecommendedTerm is 0
// when the cash flow floor excludes every term.
type FinancingResult struct {
	RecommendedTerm int                 `json:"recommendedTerm"`
	Scenarios       []FinancingScenario `json:"scenarios"`
}
