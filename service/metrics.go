package service

import (
	"math"

	"rental-analyzer/domain"
)

const monthsPerYear = 12.0

// monthlyPayment returns the fixed principal-and-interest payment of an
// amortizing loan. A zero rate, zero term or fully paid-down loan yields 0.
func monthlyPayment(loanAmount, monthlyRate, n float64) float64 {
	if loanAmount <= 0 || n <= 0 || monthlyRate <= 0 {
		return 0
	}

	growth := math.Pow(1+monthlyRate, n)
	if math.IsInf(growth, 1) {
		// (1+r)^n / ((1+r)^n - 1) tends to 1
		return loanAmount * monthlyRate
	}
	denom := growth - 1
	if denom <= 0 {
		// 1+r rounded to 1
		return 0
	}

	// divide first: loanAmount*r*growth overflows long before growth does
	return loanAmount * monthlyRate * (growth / denom)
}

// ComputeMetrics derives the first-year cash flow, return and rule-of-thumb
// metrics for a property. It has no side effects and never fails.
func ComputeMetrics(in domain.PropertyInput) domain.AnalysisResult {
	// Loan details
	downPaymentAmount := in.PurchasePrice * (in.DownPayment / 100)
	closingCostsAmount := in.PurchasePrice * (in.ClosingCosts / 100)
	loanAmount := in.PurchasePrice - downPaymentAmount
	monthlyRate := (in.InterestRate / 100) / monthsPerYear
	numberOfPayments := in.LoanTerm * monthsPerYear

	payment := monthlyPayment(loanAmount, monthlyRate, numberOfPayments)

	// Income (annual)
	grossPotentialRent := in.GrossMonthlyRent * monthsPerYear
	vacancyLoss := grossPotentialRent * (in.VacancyRate / 100)
	effectiveGrossIncome := grossPotentialRent - vacancyLoss

	// Expenses (annual); reserves are sized on effective income
	hoa := in.HOA * monthsPerYear
	repairs := effectiveGrossIncome * (in.Repairs / 100)
	capex := effectiveGrossIncome * (in.Capex / 100)
	management := effectiveGrossIncome * (in.Management / 100)

	totalOperatingExpenses := in.PropertyTaxes + in.HomeInsurance + hoa + repairs + capex + management

	// Cash flow
	netOperatingIncome := effectiveGrossIncome - totalOperatingExpenses
	annualDebtService := payment * monthsPerYear
	annualCashFlow := netOperatingIncome - annualDebtService
	monthlyCashFlow := annualCashFlow / monthsPerYear

	// Returns
	totalCashNeeded := downPaymentAmount + closingCostsAmount
	capRate := 0.0
	if in.PurchasePrice > 0 {
		capRate = netOperatingIncome / in.PurchasePrice * 100
	}
	cashOnCash := 0.0
	if totalCashNeeded > 0 {
		cashOnCash = annualCashFlow / totalCashNeeded * 100
	}

	return domain.AnalysisResult{
		GrossPotentialRent:   in.GrossMonthlyRent,
		VacancyLoss:          vacancyLoss / monthsPerYear,
		EffectiveGrossIncome: effectiveGrossIncome / monthsPerYear,

		PrincipalAndInterest:   payment,
		MonthlyTaxes:           in.PropertyTaxes / monthsPerYear,
		MonthlyInsurance:       in.HomeInsurance / monthsPerYear,
		MonthlyHOA:             hoa / monthsPerYear,
		MonthlyVacancy:         vacancyLoss / monthsPerYear,
		MonthlyRepairs:         repairs / monthsPerYear,
		MonthlyCapex:           capex / monthsPerYear,
		MonthlyManagement:      management / monthsPerYear,
		TotalOperatingExpenses: totalOperatingExpenses / monthsPerYear,

		NetOperatingIncome: netOperatingIncome / monthsPerYear,
		MonthlyDebtService: payment,
		MonthlyCashFlow:    monthlyCashFlow,
		AnnualCashFlow:     monthlyCashFlow * monthsPerYear, // exact multiple of the monthly figure

		LoanAmount:         loanAmount,
		DownPaymentAmount:  downPaymentAmount,
		ClosingCostsAmount: closingCostsAmount,

		TotalCashNeeded:  totalCashNeeded,
		CapRate:          capRate,
		CashOnCashReturn: cashOnCash,

		OnePercentRule:   in.GrossMonthlyRent >= in.PurchasePrice*0.01,
		FiftyPercentRule: totalOperatingExpenses <= effectiveGrossIncome*0.5,
	}
}
