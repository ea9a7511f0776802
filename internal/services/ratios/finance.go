package ratios

import (
	"FinGrade/internal/domain/models"
)

// NetInterestMargin is net interest income over earning assets, as a
// percentage.
func NetInterestMargin(netInterestIncome, assets float64) float64 {
	return SafePct(netInterestIncome, assets)
}

// CostToIncome is operating expenses over revenue, as a percentage.
func CostToIncome(operatingExpenses, revenue float64) float64 {
	return SafePct(operatingExpenses, revenue)
}

// PeriodGrowth is the simple period-over-period delta used for loan and
// deposit growth; finance growth is never compounded.
func PeriodGrowth(current, previous float64) float64 {
	return SafePct(current-previous, previous)
}

// CapitalAdequacy proxies the Basel minimum as equity over assets.
func CapitalAdequacy(equity, assets float64) float64 {
	return SafePct(equity, assets)
}

// CalculateFinanceRatios derives the finance set from parsed sector data.
// When a direct input is absent, it is re-derived from more primitive
// fields using the configured assumptions: net interest income as
// NetInterestShare of revenue, non-interest income as NonInterestShare of
// revenue, and operating expenses as revenue minus net income minus the
// assumed tax.
func CalculateFinanceRatios(data *models.FinanceData, a Assumptions) models.FinanceRatios {
	var out models.FinanceRatios
	if data == nil || len(data.Quarterly) == 0 {
		return out
	}

	q := data.Quarterly[0]

	nii := q.FinancingProfit
	if nii == 0 {
		nii = q.Revenue * a.NetInterestShare
	}

	nonInterest := q.OtherIncome
	if nonInterest == 0 {
		nonInterest = q.Revenue * a.NonInterestShare
	}

	opex := q.Expenses
	if opex == 0 {
		tax := a.TaxRate * q.ProfitBeforeTax
		if q.ProfitBeforeTax == 0 {
			tax = a.TaxRate * q.NetProfit
		}
		opex = q.Revenue - q.NetProfit - tax
	}

	out.CostToIncome = CostToIncome(opex, q.Revenue)
	out.NonInterestIncomeRatio = SafePct(nonInterest, q.Revenue)

	if q.FinancingMarginPercent != 0 {
		out.NetInterestMargin = q.FinancingMarginPercent
	}

	if len(data.BalanceSheet) > 0 {
		bs := data.BalanceSheet[0]
		if out.NetInterestMargin == 0 {
			out.NetInterestMargin = NetInterestMargin(nii, bs.TotalAssets)
		}
		out.CapitalAdequacy = CapitalAdequacy(bs.EquityCapital+bs.Reserves, bs.TotalAssets)

		if len(data.BalanceSheet) > 1 {
			prev := data.BalanceSheet[1]
			out.LoanGrowth = PeriodGrowth(bs.OtherAssets, prev.OtherAssets)
			out.DepositGrowth = PeriodGrowth(bs.Deposits, prev.Deposits)
		}
	}

	return out
}
