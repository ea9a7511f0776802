package ratios

import (
	"math"
	"testing"

	"FinGrade/internal/domain/models"
)

func TestSafeDivZeroDenominator(t *testing.T) {
	for _, num := range []float64{0, 1, -5, 1e9, math.NaN(), math.Inf(1)} {
		if got := SafeDiv(num, 0); got != 0 {
			t.Fatalf("SafeDiv(%v, 0) = %v, want 0", num, got)
		}
	}
	if got := NetProfitMargin(42, 0); got != 0 {
		t.Fatalf("NetProfitMargin(42, 0) = %v, want 0", got)
	}
	if got := SafeDiv(10, math.NaN()); got != 0 {
		t.Fatalf("SafeDiv NaN denominator = %v, want 0", got)
	}
}

func TestOperatingProfitMarginScenario(t *testing.T) {
	// 219 / 963 * 100
	got := OperatingProfitMargin(219, 963)
	if math.Abs(got-22.74) > 0.05 {
		t.Fatalf("OPM = %v, want ~22.75", got)
	}
}

func TestGrowthSignHandling(t *testing.T) {
	cases := []struct {
		name           string
		curr, prev     float64
		years          int
		want           float64
		approx         bool
	}{
		{"simple 1y", 110, 100, 1, 10, false},
		{"zero base", 50, 0, 1, 0, false},
		{"negative to positive", 20, -10, 1, 100, false},
		{"positive to negative", -20, 10, 1, -100, false},
		{"both negative shrinking loss", -5, -10, 1, 50, false},
		{"both negative growing loss", -20, -10, 1, -100, false},
		{"3y cagr doubling", 200, 100, 3, 25.99, true},
	}
	for _, tc := range cases {
		got := Growth(tc.curr, tc.prev, tc.years)
		if tc.approx {
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("%s: Growth = %v, want ~%v", tc.name, got, tc.want)
			}
		} else if got != tc.want {
			t.Fatalf("%s: Growth = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCalculateUniversalRatios(t *testing.T) {
	n := &models.NormalizedFinancialData{
		Quarterly: []models.NormalizedPeriodRecord{
			{Period: "Mar 2024", PrimaryIncome: 1000, NetProfit: 150},
		},
		Annual: []models.NormalizedPeriodRecord{
			{Period: "FY2024", PrimaryIncome: 4000, NetProfit: 600, EPS: 12},
			{Period: "FY2023", PrimaryIncome: 3600, NetProfit: 500},
		},
		BalanceSheet: []models.NormalizedBalanceSheetRecord{
			{Period: "Mar 2024", EquityCapital: 100, Reserves: 900, TotalDebt: 500, TotalAssets: 2000},
		},
	}

	got := CalculateUniversalRatios(n, models.CompanyInfo{CurrentPrice: 240}, nil)
	if got.ReturnOnEquity != 15 {
		t.Fatalf("ROE = %v, want 15", got.ReturnOnEquity)
	}
	if got.NetProfitMargin != 15 {
		t.Fatalf("NPM = %v, want 15", got.NetProfitMargin)
	}
	if math.Abs(got.RevenueGrowth1Y-(400.0/3600*100)) > 1e-9 {
		t.Fatalf("revenue growth 1y = %v", got.RevenueGrowth1Y)
	}
	// Only two annual periods: 3y and 5y horizons default to 0.
	if got.RevenueGrowth3Y != 0 || got.ProfitGrowth5Y != 0 {
		t.Fatalf("long horizons should be 0: %v %v", got.RevenueGrowth3Y, got.ProfitGrowth5Y)
	}
	if got.AssetTurnover != 0.5 {
		t.Fatalf("asset turnover = %v, want 0.5", got.AssetTurnover)
	}
	if got.DebtToEquity != 0.5 {
		t.Fatalf("debt/equity = %v, want 0.5", got.DebtToEquity)
	}
	// Derived P/E = price / annual EPS.
	if got.PriceToEarnings != 20 {
		t.Fatalf("P/E = %v, want 20", got.PriceToEarnings)
	}
}

func TestCalculateNonFinanceRatios(t *testing.T) {
	data := &models.NonFinanceData{
		Quarterly: []models.NonFinanceQuarter{
			{Period: "Mar 2024", Sales: 900, Expenses: 720, OperatingProfit: 180,
				Interest: 10, ProfitBeforeTax: 170, NetProfit: 120},
		},
		BalanceSheet: []models.NonFinanceBalanceSheet{
			{Period: "Mar 2024", CurrentLiabilities: 200, CurrentAssets: 500,
				Inventory: 240, Debtors: 150, FixedAssets: 800, TotalAssets: 1600},
		},
	}

	got := CalculateNonFinanceRatios(data)
	if got.OperatingProfitMargin != 20 {
		t.Fatalf("OPM = %v, want 20", got.OperatingProfitMargin)
	}
	// debtor days = 150 / (900/90) = 15
	if got.DebtorDays != 15 {
		t.Fatalf("debtor days = %v, want 15", got.DebtorDays)
	}
	// inventory days = 240 / (720/90) = 30
	if got.InventoryDays != 30 {
		t.Fatalf("inventory days = %v, want 30", got.InventoryDays)
	}
	// payable days = 200 / (720/90) = 25
	if got.PayableDays != 25 {
		t.Fatalf("payable days = %v, want 25", got.PayableDays)
	}
	if got.CashConversionCycle != 15+30-25 {
		t.Fatalf("CCC = %v, want 20", got.CashConversionCycle)
	}
	// ROCE = EBIT 180 / (1600-200)
	ebit := 170.0 + 10.0
	if math.Abs(got.ROCE-ebit/1400*100) > 1e-9 {
		t.Fatalf("ROCE = %v", got.ROCE)
	}
	if got.CurrentRatio != 2.5 {
		t.Fatalf("current ratio = %v, want 2.5", got.CurrentRatio)
	}
}

func TestCalculateFinanceRatiosEstimation(t *testing.T) {
	data := &models.FinanceData{
		Quarterly: []models.FinanceQuarter{
			// No financing profit, expenses, or other income reported:
			// everything must be estimated from revenue and net profit.
			{Period: "Mar 2024", Revenue: 1000, NetProfit: 200},
		},
		BalanceSheet: []models.FinanceBalanceSheet{
			{Period: "Mar 2024", EquityCapital: 400, Reserves: 3600, Deposits: 30000,
				OtherAssets: 24000, TotalAssets: 40000},
			{Period: "Mar 2023", Deposits: 25000, OtherAssets: 20000, TotalAssets: 34000},
		},
	}

	got := CalculateFinanceRatios(data, DefaultAssumptions())

	// NII estimated as 70% of revenue: NIM = 700/40000*100
	if math.Abs(got.NetInterestMargin-1.75) > 1e-9 {
		t.Fatalf("NIM = %v, want 1.75", got.NetInterestMargin)
	}
	// Non-interest income estimated as 30% of revenue.
	if got.NonInterestIncomeRatio != 30 {
		t.Fatalf("non-interest ratio = %v, want 30", got.NonInterestIncomeRatio)
	}
	// Opex = revenue - net income - 30% assumed tax on net profit.
	wantOpex := 1000 - 200 - 0.3*200
	if math.Abs(got.CostToIncome-wantOpex/1000*100) > 1e-9 {
		t.Fatalf("cost/income = %v", got.CostToIncome)
	}
	// Loan and deposit growth are simple deltas, not CAGR.
	if got.DepositGrowth != 20 {
		t.Fatalf("deposit growth = %v, want 20", got.DepositGrowth)
	}
	if got.LoanGrowth != 20 {
		t.Fatalf("loan growth = %v, want 20", got.LoanGrowth)
	}
	if got.CapitalAdequacy != 10 {
		t.Fatalf("capital adequacy = %v, want 10", got.CapitalAdequacy)
	}
}
