package service

const (
	MinLoanTermYears  = 1
	MaxLoanTermYears  = 40 // 40 years
	MaxTermRangeYears = 30 // max number of terms evaluated per request
)

// Financing preferences
const (
	PreferenceMaximizeCashFlow = "maximize_cash_flow"
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceBalanced         = "balanced"
)
