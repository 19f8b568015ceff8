package domain

// PropertyInput is a snapshot of the purchase, loan, income and expense
// assumptions for one property. Percentages are expressed 0-100.
type PropertyInput struct {
	PurchasePrice    float64 `json:"purchasePrice"`
	DownPayment      float64 `json:"downPayment"`
	InterestRate     float64 `json:"interestRate"`
	LoanTerm         float64 `json:"loanTerm"` // years
	PropertyTaxes    float64 `json:"propertyTaxes"`
	HomeInsurance    float64 `json:"homeInsurance"`
	HOA              float64 `json:"hoa"`
	GrossMonthlyRent float64 `json:"grossMonthlyRent"`
	VacancyRate      float64 `json:"vacancyRate"`
	Repairs          float64 `json:"repairs"`
	Capex            float64 `json:"capex"`
	Management       float64 `json:"management"`
	ClosingCosts     float64 `json:"closingCosts"`
}

// DefaultPropertyInput returns the baseline deal shown before the user edits anything.
func DefaultPropertyInput() PropertyInput {
	return PropertyInput{
		PurchasePrice:    300000,
		DownPayment:      20,
		InterestRate:     6.5,
		LoanTerm:         30,
		PropertyTaxes:    4000,
		HomeInsurance:    1200,
		HOA:              50,
		GrossMonthlyRent: 2500,
		VacancyRate:      5,
		Repairs:          5,
		Capex:            5,
		Management:       0,
		ClosingCosts:     3,
	}
}

// AnalysisResult holds the first-year metrics derived from a PropertyInput.
// Income, expense and cash flow lines are monthly unless named otherwise.
type AnalysisResult struct {
	// Income
	GrossPotentialRent   float64 `json:"grossPotentialRent"`
	VacancyLoss          float64 `json:"vacancyLoss"`
	EffectiveGrossIncome float64 `json:"effectiveGrossIncome"`

	// Expenses
	PrincipalAndInterest   float64 `json:"principalAndInterest"`
	MonthlyTaxes           float64 `json:"monthlyTaxes"`
	MonthlyInsurance       float64 `json:"monthlyInsurance"`
	MonthlyHOA             float64 `json:"monthlyHOA"`
	MonthlyVacancy         float64 `json:"monthlyVacancy"`
	MonthlyRepairs         float64 `json:"monthlyRepairs"`
	MonthlyCapex           float64 `json:"monthlyCapex"`
	MonthlyManagement      float64 `json:"monthlyManagement"`
	TotalOperatingExpenses float64 `json:"totalOperatingExpenses"`

	// Cash flow
	NetOperatingIncome float64 `json:"netOperatingIncome"`
	MonthlyDebtService float64 `json:"monthlyDebtService"`
	MonthlyCashFlow    float64 `json:"monthlyCashFlow"`
	AnnualCashFlow     float64 `json:"annualCashFlow"`

	// Acquisition
	LoanAmount         float64 `json:"loanAmount"`
	DownPaymentAmount  float64 `json:"downPaymentAmount"`
	ClosingCostsAmount float64 `json:"closingCostsAmount"`

	// Returns
	TotalCashNeeded  float64 `json:"totalCashNeeded"`
	CapRate          float64 `json:"capRate"`
	CashOnCashReturn float64 `json:"cashOnCashReturn"`

	// Rules of thumb
	OnePercentRule   bool `json:"onePercentRule"`
	FiftyPercentRule bool `json:"fiftyPercentRule"`
}
