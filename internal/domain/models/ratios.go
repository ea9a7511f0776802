package models

// UniversalRatios apply to every company regardless of sector. Every field
// is always populated; a missing or zero input yields 0, never NaN.
type UniversalRatios struct {
	ReturnOnEquity    float64 `json:"return_on_equity"`
	NetProfitMargin   float64 `json:"net_profit_margin"`
	RevenueGrowth1Y   float64 `json:"revenue_growth_1y"`
	RevenueGrowth3Y   float64 `json:"revenue_growth_3y"`
	RevenueGrowth5Y   float64 `json:"revenue_growth_5y"`
	ProfitGrowth1Y    float64 `json:"profit_growth_1y"`
	ProfitGrowth3Y    float64 `json:"profit_growth_3y"`
	ProfitGrowth5Y    float64 `json:"profit_growth_5y"`
	AssetTurnover     float64 `json:"asset_turnover"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	PriceToEarnings   float64 `json:"price_to_earnings"`
	PriceToBook       float64 `json:"price_to_book"`
}

// NonFinanceRatios apply to operating/manufacturing companies.
type NonFinanceRatios struct {
	OperatingProfitMargin float64 `json:"operating_profit_margin"`
	ROCE                  float64 `json:"roce"`
	CashConversionCycle   float64 `json:"cash_conversion_cycle"`
	DebtorDays            float64 `json:"debtor_days"`
	InventoryDays         float64 `json:"inventory_days"`
	PayableDays           float64 `json:"payable_days"`
	InventoryTurnover     float64 `json:"inventory_turnover"`
	CurrentRatio          float64 `json:"current_ratio"`
	QuickRatio            float64 `json:"quick_ratio"`
	InterestCoverage      float64 `json:"interest_coverage"`
	FreeCashFlowMargin    float64 `json:"free_cash_flow_margin"`
	AssetQuality          float64 `json:"asset_quality"`
}

// FinanceRatios apply to deposit-taking finance companies.
type FinanceRatios struct {
	NetInterestMargin      float64 `json:"net_interest_margin"`
	CostToIncome           float64 `json:"cost_to_income"`
	LoanGrowth             float64 `json:"loan_growth"`
	DepositGrowth          float64 `json:"deposit_growth"`
	NonInterestIncomeRatio float64 `json:"non_interest_income_ratio"`
	CapitalAdequacy        float64 `json:"capital_adequacy"`
}

// RatioSet bundles the universal ratios with whichever sector-specific set
// applies to the company.
type RatioSet struct {
	Universal  UniversalRatios   `json:"universal"`
	NonFinance *NonFinanceRatios `json:"non_finance,omitempty"`
	Finance    *FinanceRatios    `json:"finance,omitempty"`
}
