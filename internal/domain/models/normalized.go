package models

import "time"

// InterestTreatment records how interest expense is interpreted for a
// sector: operating companies treat it as a cost below the operating line,
// finance companies as part of the core business.
type InterestTreatment string

const (
	InterestAsExpense       InterestTreatment = "expense"
	InterestAsCoreComponent InterestTreatment = "core_component"
)

// NormalizedPeriodRecord is the sector-agnostic P&L shape. PrimaryIncome
// and CoreProfit are re-labelings of sales/operating_profit for operating
// companies and revenue/financing_profit for finance companies.
type NormalizedPeriodRecord struct {
	Period          string  `json:"period"`
	PrimaryIncome   float64 `json:"primary_income"`
	CoreProfit      float64 `json:"core_profit"`
	OtherIncome     float64 `json:"other_income"`
	Depreciation    float64 `json:"depreciation"`
	ProfitBeforeTax float64 `json:"profit_before_tax"`
	NetProfit       float64 `json:"net_profit"`
	EPS             float64 `json:"eps"`
}

// NormalizedBalanceSheetRecord is the sector-agnostic balance sheet shape.
// TotalDebt is sector-dependent: borrowings+other+current liabilities for
// operating companies, borrowings+deposits for finance companies.
type NormalizedBalanceSheetRecord struct {
	Period        string  `json:"period"`
	EquityCapital float64 `json:"equity_capital"`
	Reserves      float64 `json:"reserves"`
	TotalDebt     float64 `json:"total_debt"`
	FixedAssets   float64 `json:"fixed_assets"`
	Investments   float64 `json:"investments"`
	TotalAssets   float64 `json:"total_assets"`
}

// NormalizationMetadata is the audit trail attached to normalized output.
type NormalizationMetadata struct {
	NormalizedAt time.Time `json:"normalized_at"`
	SourceType   Sector    `json:"source_type"`
	RulesApplied []string  `json:"normalization_rules_applied"`
	Provenance   string    `json:"provenance"`
}

// NormalizedFinancialData is one company's statements in the unified
// schema. SectorSpecific preserves extras (NPA percentages, working
// capital days) verbatim for the sector rule checks.
type NormalizedFinancialData struct {
	Quarterly            []NormalizedPeriodRecord       `json:"quarterly"`
	Annual               []NormalizedPeriodRecord       `json:"annual"`
	BalanceSheet         []NormalizedBalanceSheetRecord `json:"balance_sheet"`
	CashFlow             []CashFlowRecord               `json:"cash_flow"`
	SectorSpecific       map[string]any                 `json:"sector_specific_data"`
	InterestTreatment    InterestTreatment              `json:"interest_treatment"`
	DataQualityScore     float64                        `json:"data_quality_score"`
	CompletenessScore    float64                        `json:"completeness_score"`
	NormalizationQuality float64                        `json:"normalization_quality"`
	Metadata             NormalizationMetadata          `json:"metadata"`
}

// LatestQuarter returns the most recent normalized quarter, if any.
func (n *NormalizedFinancialData) LatestQuarter() (NormalizedPeriodRecord, bool) {
	if len(n.Quarterly) == 0 {
		return NormalizedPeriodRecord{}, false
	}
	return n.Quarterly[0], true
}

// LatestBalanceSheet returns the most recent balance sheet period, if any.
func (n *NormalizedFinancialData) LatestBalanceSheet() (NormalizedBalanceSheetRecord, bool) {
	if len(n.BalanceSheet) == 0 {
		return NormalizedBalanceSheetRecord{}, false
	}
	return n.BalanceSheet[0], true
}
