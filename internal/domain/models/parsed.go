package models

// NonFinanceQuarter is one parsed P&L period for an operating company.
// Periods are ordered most-recent-first in every sequence; index 0 is the
// latest period and downstream growth math relies on that ordering.
type NonFinanceQuarter struct {
	Period          string  `json:"period"`
	Sales           float64 `json:"sales"`
	Expenses        float64 `json:"expenses"`
	OperatingProfit float64 `json:"operating_profit"`
	OPMPercent      float64 `json:"opm_percent"`
	OtherIncome     float64 `json:"other_income"`
	Interest        float64 `json:"interest"`
	Depreciation    float64 `json:"depreciation"`
	ProfitBeforeTax float64 `json:"profit_before_tax"`
	TaxPercent      float64 `json:"tax_percent"`
	NetProfit       float64 `json:"net_profit"`
	EPS             float64 `json:"eps"`
}

// NonFinanceBalanceSheet is a manufacturing-style balance sheet period.
type NonFinanceBalanceSheet struct {
	Period             string  `json:"period"`
	EquityCapital      float64 `json:"equity_capital"`
	Reserves           float64 `json:"reserves"`
	Borrowings         float64 `json:"borrowings"`
	OtherLiabilities   float64 `json:"other_liabilities"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	FixedAssets        float64 `json:"fixed_assets"`
	WorkInProgress     float64 `json:"cwip"`
	Investments        float64 `json:"investments"`
	OtherAssets        float64 `json:"other_assets"`
	CurrentAssets      float64 `json:"current_assets"`
	Inventory          float64 `json:"inventory"`
	Debtors            float64 `json:"debtors"`
	CashEquivalents    float64 `json:"cash_equivalents"`
	TotalAssets        float64 `json:"total_assets"`
}

// FinanceQuarter is one parsed P&L period for a deposit-taking company.
type FinanceQuarter struct {
	Period                 string  `json:"period"`
	Revenue                float64 `json:"revenue"`
	Interest               float64 `json:"interest"`
	Expenses               float64 `json:"expenses"`
	FinancingProfit        float64 `json:"financing_profit"`
	FinancingMarginPercent float64 `json:"financing_margin_percent"`
	OtherIncome            float64 `json:"other_income"`
	Depreciation           float64 `json:"depreciation"`
	ProfitBeforeTax        float64 `json:"profit_before_tax"`
	TaxPercent             float64 `json:"tax_percent"`
	NetProfit              float64 `json:"net_profit"`
	EPS                    float64 `json:"eps"`
	GrossNPAPercent        float64 `json:"gross_npa_percent"`
	NetNPAPercent          float64 `json:"net_npa_percent"`
}

// FinanceBalanceSheet is a banking-style balance sheet period. The loan
// book is carried by providers under other_assets.
type FinanceBalanceSheet struct {
	Period           string  `json:"period"`
	EquityCapital    float64 `json:"equity_capital"`
	Reserves         float64 `json:"reserves"`
	Deposits         float64 `json:"deposits"`
	Borrowings       float64 `json:"borrowings"`
	OtherLiabilities float64 `json:"other_liabilities"`
	FixedAssets      float64 `json:"fixed_assets"`
	WorkInProgress   float64 `json:"cwip"`
	Investments      float64 `json:"investments"`
	OtherAssets      float64 `json:"other_assets"`
	TotalAssets      float64 `json:"total_assets"`
}

// CashFlowRecord is one cash-flow period, shared by both sectors.
type CashFlowRecord struct {
	Period    string  `json:"period"`
	Operating float64 `json:"operating"`
	Investing float64 `json:"investing"`
	Financing float64 `json:"financing"`
	Net       float64 `json:"net"`
}

// WorkingCapitalRatios holds per-period arrays (most-recent-first) of the
// provider's working-capital day metrics for operating companies.
type WorkingCapitalRatios struct {
	DebtorDays     []float64 `json:"debtor_days"`
	InventoryDays  []float64 `json:"inventory_days"`
	PayableDays    []float64 `json:"payable_days"`
	CashConversion []float64 `json:"cash_conversion_cycle"`
	ROCEPercent    []float64 `json:"roce_percent"`
}

// BankingRatios holds per-period arrays (most-recent-first) of
// provider-supplied banking metrics.
type BankingRatios struct {
	GrossNPAPercent []float64 `json:"gross_npa_percent"`
	NetNPAPercent   []float64 `json:"net_npa_percent"`
	CASAPercent     []float64 `json:"casa_percent"`
	ROEPercent      []float64 `json:"roe_percent"`
}

// NonFinanceData is the typed output of the non-finance parser.
type NonFinanceData struct {
	Quarterly         []NonFinanceQuarter      `json:"quarterly"`
	Annual            []NonFinanceQuarter      `json:"annual"`
	BalanceSheet      []NonFinanceBalanceSheet `json:"balance_sheet"`
	CashFlow          []CashFlowRecord         `json:"cash_flow"`
	Ratios            WorkingCapitalRatios     `json:"ratios"`
	DataQualityScore  float64                  `json:"data_quality_score"`
	CompletenessScore float64                  `json:"completeness_score"`
	Classification    SectorClassification     `json:"sector_classification"`
	IndustryType      string                   `json:"industry_type"`
}

// FinanceData is the typed output of the finance parser.
type FinanceData struct {
	Quarterly         []FinanceQuarter      `json:"quarterly"`
	Annual            []FinanceQuarter      `json:"annual"`
	BalanceSheet      []FinanceBalanceSheet `json:"balance_sheet"`
	CashFlow          []CashFlowRecord      `json:"cash_flow"`
	Ratios            BankingRatios         `json:"ratios"`
	DataQualityScore  float64               `json:"data_quality_score"`
	CompletenessScore float64               `json:"completeness_score"`
	Classification    SectorClassification  `json:"sector_classification"`
	IndustryType      string                `json:"industry_type"`
}
