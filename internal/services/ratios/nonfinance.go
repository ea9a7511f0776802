package ratios

import (
	"FinGrade/internal/domain/models"
)

// Quarterly P&L lines convert to daily rates over a 90-day quarter.
const daysPerQuarter = 90

// OperatingProfitMargin is operating profit over sales, as a percentage.
func OperatingProfitMargin(operatingProfit, sales float64) float64 {
	return SafePct(operatingProfit, sales)
}

// ROCE is EBIT over capital employed (assets minus current liabilities).
func ROCE(ebit, totalAssets, currentLiabilities float64) float64 {
	return SafePct(ebit, totalAssets-currentLiabilities)
}

// DayMetric converts a balance against a P&L line into days outstanding:
// balance divided by the line's daily rate.
func DayMetric(balance, plLine float64) float64 {
	return SafeDiv(balance, plLine/daysPerQuarter)
}

// CashConversionCycle is debtor days + inventory days - payable days.
func CashConversionCycle(debtorDays, inventoryDays, payableDays float64) float64 {
	return debtorDays + inventoryDays - payableDays
}

// InterestCoverage is EBIT over interest expense.
func InterestCoverage(ebit, interest float64) float64 {
	return SafeDiv(ebit, interest)
}

// CalculateNonFinanceRatios derives the operating-company set from parsed
// sector data. Uses the latest quarter, latest balance sheet, and latest
// cash-flow period; absent inputs yield 0.
func CalculateNonFinanceRatios(data *models.NonFinanceData) models.NonFinanceRatios {
	var out models.NonFinanceRatios
	if data == nil || len(data.Quarterly) == 0 {
		return out
	}

	q := data.Quarterly[0]
	out.OperatingProfitMargin = OperatingProfitMargin(q.OperatingProfit, q.Sales)

	ebit := q.ProfitBeforeTax + q.Interest
	if q.ProfitBeforeTax == 0 {
		ebit = q.OperatingProfit + q.OtherIncome - q.Depreciation
	}
	out.InterestCoverage = InterestCoverage(ebit, q.Interest)

	if len(data.BalanceSheet) > 0 {
		bs := data.BalanceSheet[0]
		out.ROCE = ROCE(ebit, bs.TotalAssets, bs.CurrentLiabilities)
		out.AssetQuality = SafeDiv(bs.FixedAssets, bs.TotalAssets)
		out.CurrentRatio = SafeDiv(bs.CurrentAssets, bs.CurrentLiabilities)
		out.QuickRatio = SafeDiv(bs.CurrentAssets-bs.Inventory, bs.CurrentLiabilities)
		out.InventoryTurnover = SafeDiv(cogsLine(q), bs.Inventory)

		out.DebtorDays = DayMetric(bs.Debtors, q.Sales)
		out.InventoryDays = DayMetric(bs.Inventory, cogsLine(q))
		out.PayableDays = DayMetric(bs.CurrentLiabilities, cogsLine(q))
		out.CashConversionCycle = CashConversionCycle(out.DebtorDays, out.InventoryDays, out.PayableDays)
	}

	if len(data.CashFlow) > 0 {
		cf := data.CashFlow[0]
		revenue := q.Sales
		if len(data.Annual) > 0 {
			revenue = data.Annual[0].Sales
		}
		out.FreeCashFlowMargin = SafePct(cf.Operating+cf.Investing, revenue)
	}

	return out
}

// cogsLine picks the cost line used for inventory and payable day
// metrics: reported expenses, falling back to sales minus operating
// profit when expenses are absent.
func cogsLine(q models.NonFinanceQuarter) float64 {
	if q.Expenses != 0 {
		return q.Expenses
	}
	return q.Sales - q.OperatingProfit
}
