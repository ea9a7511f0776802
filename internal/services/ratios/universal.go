package ratios

import (
	"math"

	"FinGrade/internal/domain/models"
)

// ReturnOnEquity is net income over total equity, as a percentage.
func ReturnOnEquity(netIncome, equity float64) float64 {
	return SafePct(netIncome, equity)
}

// NetProfitMargin is net income over revenue, as a percentage.
func NetProfitMargin(netIncome, revenue float64) float64 {
	return SafePct(netIncome, revenue)
}

// AssetTurnover is revenue over total assets.
func AssetTurnover(revenue, assets float64) float64 {
	return SafeDiv(revenue, assets)
}

// DebtToEquity is total debt over total equity.
func DebtToEquity(debt, equity float64) float64 {
	return SafeDiv(debt, equity)
}

// Growth computes percentage growth from previous to current over the
// given horizon: a simple delta for one year, CAGR beyond that. A base
// value of zero returns 0. Sign flips are reported as +/-100%, and two
// negative values are compared by absolute magnitude so a shrinking loss
// reads as positive growth.
func Growth(current, previous float64, years int) float64 {
	switch {
	case previous == 0:
		return 0
	case previous < 0 && current >= 0:
		return 100
	case previous > 0 && current < 0:
		return -100
	case previous < 0 && current < 0:
		return SafePct(math.Abs(previous)-math.Abs(current), math.Abs(previous))
	}

	if years <= 1 {
		return SafePct(current-previous, previous)
	}
	return (math.Pow(current/previous, 1/float64(years)) - 1) * 100
}

// CalculateUniversalRatios derives the full universal set from normalized
// data. Growth horizons read the annual sequence, which is ordered
// most-recent-first. Every field is populated; missing inputs yield 0.
func CalculateUniversalRatios(n *models.NormalizedFinancialData, info models.CompanyInfo, market *models.MarketData) models.UniversalRatios {
	var out models.UniversalRatios
	if n == nil {
		return out
	}

	latest, hasQuarter := n.LatestQuarter()
	bs, hasBS := n.LatestBalanceSheet()

	equity := 0.0
	if hasBS {
		equity = bs.EquityCapital + bs.Reserves
	}

	if hasQuarter {
		out.ReturnOnEquity = ReturnOnEquity(latest.NetProfit, equity)
		out.NetProfitMargin = NetProfitMargin(latest.NetProfit, latest.PrimaryIncome)
		if hasBS {
			out.AssetTurnover = AssetTurnover(latest.PrimaryIncome, bs.TotalAssets)
		}
	}
	if hasBS {
		out.DebtToEquity = DebtToEquity(bs.TotalDebt, equity)
	}

	out.RevenueGrowth1Y = annualGrowth(n.Annual, 1, func(r models.NormalizedPeriodRecord) float64 { return r.PrimaryIncome })
	out.RevenueGrowth3Y = annualGrowth(n.Annual, 3, func(r models.NormalizedPeriodRecord) float64 { return r.PrimaryIncome })
	out.RevenueGrowth5Y = annualGrowth(n.Annual, 5, func(r models.NormalizedPeriodRecord) float64 { return r.PrimaryIncome })
	out.ProfitGrowth1Y = annualGrowth(n.Annual, 1, func(r models.NormalizedPeriodRecord) float64 { return r.NetProfit })
	out.ProfitGrowth3Y = annualGrowth(n.Annual, 3, func(r models.NormalizedPeriodRecord) float64 { return r.NetProfit })
	out.ProfitGrowth5Y = annualGrowth(n.Annual, 5, func(r models.NormalizedPeriodRecord) float64 { return r.NetProfit })

	out.PriceToEarnings, out.PriceToBook = marketMultiples(n, info, market)
	return out
}

// annualGrowth reads current vs years-back values off the most-recent-first
// annual sequence.
func annualGrowth(annual []models.NormalizedPeriodRecord, years int, pick func(models.NormalizedPeriodRecord) float64) float64 {
	if len(annual) <= years {
		return 0
	}
	return Growth(pick(annual[0]), pick(annual[years]), years)
}

// marketMultiples passes through provided P/E and P/B, deriving them from
// EPS and book value per share only when the provider left them out.
func marketMultiples(n *models.NormalizedFinancialData, info models.CompanyInfo, market *models.MarketData) (pe, pb float64) {
	if market != nil {
		pe, pb = market.PE, market.PB
	}

	if pe == 0 && info.CurrentPrice > 0 {
		eps := 0.0
		if len(n.Annual) > 0 {
			eps = n.Annual[0].EPS
		} else if q, ok := n.LatestQuarter(); ok {
			eps = q.EPS * 4 // annualize the latest quarter
		}
		pe = SafeDiv(info.CurrentPrice, eps)
	}
	if pb == 0 && info.CurrentPrice > 0 && market != nil {
		pb = SafeDiv(info.CurrentPrice, market.BookValuePerShare)
	}
	return pe, pb
}
