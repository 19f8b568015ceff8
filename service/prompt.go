package service

import (
	"fmt"

	"rental-analyzer/domain"
)

const advisorSystemPrompt = "You are an expert real estate investment advisor. You give clear, honest, numbers-driven assessments of rental property deals and answer in well-structured markdown."

// BuildNarrativePrompt renders the deal and its metrics into the advisor prompt.
func BuildNarrativePrompt(in domain.PropertyInput, res domain.AnalysisResult) string {
	return fmt.Sprintf(`Act as an expert real estate investment advisor. I will provide you with data about a potential investment property and the calculated financial metrics.
Your task is to provide a comprehensive analysis of this deal.

**Property & Loan Data:**
- Purchase Price: %s
- Down Payment: %s
- Interest Rate: %s
- Loan Term: %s years
- Gross Monthly Rent: %s
- Closing Costs: %s

**Calculated Monthly Metrics:**
- Monthly Cash Flow: %s
- Total Monthly Expenses: %s
- Net Operating Income (NOI): %s

**Calculated Annual Metrics:**
- Annual Cash Flow: %s

**Key Investment Returns & Rules of Thumb:**
- Total Cash Needed to Close: %s
- Capitalization Rate (Cap Rate): %s
- Cash-on-Cash (CoC) Return: %s
- 1%% Rule: %s
- 50%% Rule: %s

**Your Analysis:**
Based on the data provided, please provide the following in a clear, well-structured markdown format:
1.  **Executive Summary:** A brief, high-level overview of the investment's potential. Is it strong, average, or weak?
2.  **Strengths:** What are the positive aspects of this deal? (e.g., strong cash flow, high CoC return, passes key rules).
3.  **Weaknesses/Risks:** What are the potential downsides or risks? (e.g., negative cash flow, low Cap Rate, high vacancy assumption, dependence on appreciation).
4.  **Actionable Recommendations:** What could be done to improve this deal? (e.g., "Negotiate a lower purchase price," "Verify if the projected rent is achievable by checking local comps," "Consider a different loan product to lower the monthly payment").
5.  **Final Verdict:** A concluding thought on whether to proceed with, cautiously explore, or pass on this investment opportunity.
`,
		formatCurrency(in.PurchasePrice),
		formatPercentage(in.DownPayment),
		formatPercentage(in.InterestRate),
		formatYears(in.LoanTerm),
		formatCurrency(in.GrossMonthlyRent),
		formatPercentage(in.ClosingCosts),
		formatCurrency(res.MonthlyCashFlow),
		formatCurrency(res.TotalOperatingExpenses+res.MonthlyDebtService),
		formatCurrency(res.NetOperatingIncome),
		formatCurrency(res.AnnualCashFlow),
		formatCurrency(res.TotalCashNeeded),
		formatPercentage(res.CapRate),
		formatPercentage(res.CashOnCashReturn),
		passFail(res.OnePercentRule),
		passFail(res.FiftyPercentRule),
	)
}
