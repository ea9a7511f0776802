package normalize

import (
	"errors"
	"fmt"
	"time"

	"FinGrade/internal/domain/models"
)

// Normalization failures signal bad or contradictory caller input and are
// fatal for the company's run.
var (
	ErrNilInput              = errors.New("null_input_data: parsed data is nil")
	ErrSectorMismatch        = errors.New("sector_type_mismatch: parsed sector disagrees with requested sector")
	ErrNegativePrimaryIncome = errors.New("negative_primary_income: quarterly primary income is negative")
)

// Rule names recorded in the normalization audit trail.
const (
	RulePrimaryIncomeFromSales      = "primary_income_from_sales"
	RulePrimaryIncomeFromRevenue    = "primary_income_from_revenue"
	RuleCoreProfitFromOperating     = "core_profit_from_operating_profit"
	RuleCoreProfitFromSalesExpenses = "core_profit_derived_from_sales_minus_expenses"
	RuleCoreProfitFromFinancing     = "core_profit_from_financing_profit"
	RuleDebtNonFinance              = "total_debt_from_borrowings_other_current"
	RuleDebtFinance                 = "total_debt_from_borrowings_plus_deposits"
	RuleInterestAsExpense           = "interest_as_expense"
	RuleInterestAsCore              = "interest_as_core_component"
)

// Completeness weights for the finance branch. The non-finance branch
// reuses the richer actual-vs-ideal blend with a quarterly penalty.
const (
	finWeightQuarterly = 0.4
	finWeightAnnual    = 0.3
	finWeightBalance   = 0.3

	idealQuarters = 13
	idealYears    = 12

	quarterShortfallPenalty = 0.3
	fallbackRulePenalty     = 10.0
)

// Normalizer maps either parser's output onto the unified schema.
type Normalizer struct{}

func New() *Normalizer { return &Normalizer{} }

// NormalizeNonFinance maps operating-company data onto the unified schema.
// The negative primary income check runs before any other transformation;
// it is the one validation performed inline here rather than deferred to
// the validator.
func (n *Normalizer) NormalizeNonFinance(data *models.NonFinanceData, requested models.Sector) (*models.NormalizedFinancialData, error) {
	if data == nil {
		return nil, ErrNilInput
	}
	if requested != models.SectorNonFinance {
		return nil, fmt.Errorf("%w: parsed non_finance, requested %s", ErrSectorMismatch, requested)
	}
	if s := data.Classification.Sector; s != "" && s != models.SectorNonFinance && s != models.SectorUnknown {
		return nil, fmt.Errorf("%w: classification says %s", ErrSectorMismatch, s)
	}
	for _, q := range data.Quarterly {
		if q.Sales < 0 {
			return nil, fmt.Errorf("%w: period %s sales %v", ErrNegativePrimaryIncome, q.Period, q.Sales)
		}
	}

	rules := []string{RulePrimaryIncomeFromSales, RuleInterestAsExpense, RuleDebtNonFinance}
	fallbacks := 0

	mapPeriod := func(q models.NonFinanceQuarter) models.NormalizedPeriodRecord {
		core := q.OperatingProfit
		if core == 0 && q.Sales != 0 && q.Expenses != 0 {
			core = q.Sales - q.Expenses
			fallbacks++
			rules = appendOnce(rules, RuleCoreProfitFromSalesExpenses)
		} else {
			rules = appendOnce(rules, RuleCoreProfitFromOperating)
		}
		return models.NormalizedPeriodRecord{
			Period:          q.Period,
			PrimaryIncome:   q.Sales,
			CoreProfit:      core,
			OtherIncome:     q.OtherIncome,
			Depreciation:    q.Depreciation,
			ProfitBeforeTax: q.ProfitBeforeTax,
			NetProfit:       q.NetProfit,
			EPS:             q.EPS,
		}
	}

	out := &models.NormalizedFinancialData{
		Quarterly:         mapSlice(data.Quarterly, mapPeriod),
		Annual:            mapSlice(data.Annual, mapPeriod),
		CashFlow:          data.CashFlow,
		InterestTreatment: models.InterestAsExpense,
		DataQualityScore:  data.DataQualityScore,
		SectorSpecific: map[string]any{
			"working_capital_ratios":     data.Ratios,
			"industry_type":              data.IndustryType,
			"inventory_series":           pick(data.BalanceSheet, func(b models.NonFinanceBalanceSheet) float64 { return b.Inventory }),
			"debtor_series":              pick(data.BalanceSheet, func(b models.NonFinanceBalanceSheet) float64 { return b.Debtors }),
			"current_liabilities_series": pick(data.BalanceSheet, func(b models.NonFinanceBalanceSheet) float64 { return b.CurrentLiabilities }),
			"expenses_series":            pick(data.Quarterly, func(q models.NonFinanceQuarter) float64 { return q.Expenses }),
		},
	}

	out.BalanceSheet = make([]models.NormalizedBalanceSheetRecord, 0, len(data.BalanceSheet))
	for _, bs := range data.BalanceSheet {
		out.BalanceSheet = append(out.BalanceSheet, models.NormalizedBalanceSheetRecord{
			Period:        bs.Period,
			EquityCapital: bs.EquityCapital,
			Reserves:      bs.Reserves,
			TotalDebt:     bs.Borrowings + bs.OtherLiabilities + bs.CurrentLiabilities,
			FixedAssets:   bs.FixedAssets,
			Investments:   bs.Investments,
			TotalAssets:   bs.TotalAssets,
		})
	}

	out.CompletenessScore = nonFinanceCompleteness(len(out.Quarterly), len(out.Annual), len(out.BalanceSheet))
	out.NormalizationQuality = normalizationQuality(fallbacks)
	out.Metadata = models.NormalizationMetadata{
		NormalizedAt: time.Now().UTC(),
		SourceType:   models.SectorNonFinance,
		RulesApplied: rules,
		Provenance:   "non_finance_parser",
	}

	return out, nil
}

// NormalizeFinance maps deposit-taking company data onto the unified schema.
func (n *Normalizer) NormalizeFinance(data *models.FinanceData, requested models.Sector) (*models.NormalizedFinancialData, error) {
	if data == nil {
		return nil, ErrNilInput
	}
	if requested != models.SectorFinance {
		return nil, fmt.Errorf("%w: parsed finance, requested %s", ErrSectorMismatch, requested)
	}
	if s := data.Classification.Sector; s != "" && s != models.SectorFinance && s != models.SectorUnknown {
		return nil, fmt.Errorf("%w: classification says %s", ErrSectorMismatch, s)
	}
	for _, q := range data.Quarterly {
		if q.Revenue < 0 {
			return nil, fmt.Errorf("%w: period %s revenue %v", ErrNegativePrimaryIncome, q.Period, q.Revenue)
		}
	}

	rules := []string{
		RulePrimaryIncomeFromRevenue, RuleCoreProfitFromFinancing,
		RuleInterestAsCore, RuleDebtFinance,
	}

	mapPeriod := func(q models.FinanceQuarter) models.NormalizedPeriodRecord {
		return models.NormalizedPeriodRecord{
			Period:          q.Period,
			PrimaryIncome:   q.Revenue,
			CoreProfit:      q.FinancingProfit,
			OtherIncome:     q.OtherIncome,
			Depreciation:    q.Depreciation,
			ProfitBeforeTax: q.ProfitBeforeTax,
			NetProfit:       q.NetProfit,
			EPS:             q.EPS,
		}
	}

	out := &models.NormalizedFinancialData{
		Quarterly:         mapSlice(data.Quarterly, mapPeriod),
		Annual:            mapSlice(data.Annual, mapPeriod),
		CashFlow:          data.CashFlow,
		InterestTreatment: models.InterestAsCoreComponent,
		DataQualityScore:  data.DataQualityScore,
		SectorSpecific: map[string]any{
			"banking_ratios":           data.Ratios,
			"industry_type":            data.IndustryType,
			"deposit_series":           pick(data.BalanceSheet, func(b models.FinanceBalanceSheet) float64 { return b.Deposits }),
			"loan_series":              pick(data.BalanceSheet, func(b models.FinanceBalanceSheet) float64 { return b.OtherAssets }),
			"financing_margin_percent": pick(data.Quarterly, func(q models.FinanceQuarter) float64 { return q.FinancingMarginPercent }),
		},
	}

	out.BalanceSheet = make([]models.NormalizedBalanceSheetRecord, 0, len(data.BalanceSheet))
	for _, bs := range data.BalanceSheet {
		out.BalanceSheet = append(out.BalanceSheet, models.NormalizedBalanceSheetRecord{
			Period:        bs.Period,
			EquityCapital: bs.EquityCapital,
			Reserves:      bs.Reserves,
			TotalDebt:     bs.Borrowings + bs.Deposits,
			FixedAssets:   bs.FixedAssets,
			Investments:   bs.Investments,
			TotalAssets:   bs.TotalAssets,
		})
	}

	out.CompletenessScore = financeCompleteness(len(out.Quarterly), len(out.Annual), len(out.BalanceSheet))
	out.NormalizationQuality = normalizationQuality(0)
	out.Metadata = models.NormalizationMetadata{
		NormalizedAt: time.Now().UTC(),
		SourceType:   models.SectorFinance,
		RulesApplied: rules,
		Provenance:   "finance_parser",
	}

	return out, nil
}

// nonFinanceCompleteness scores actual-vs-ideal section counts and applies
// the multiplicative penalty for incomplete quarterly coverage.
func nonFinanceCompleteness(quarters, years, balance int) float64 {
	score := 0.4*capPct(quarters, idealQuarters) +
		0.3*capPct(years, idealYears) +
		0.3*capPct(balance, idealYears)
	if quarters < idealQuarters {
		shortfall := 1 - float64(quarters)/float64(idealQuarters)
		score *= 1 - quarterShortfallPenalty*shortfall
	}
	return score
}

// financeCompleteness is the simpler weighted-section blend.
func financeCompleteness(quarters, years, balance int) float64 {
	return finWeightQuarterly*capPct(quarters, idealQuarters) +
		finWeightAnnual*capPct(years, idealYears) +
		finWeightBalance*capPct(balance, idealYears)
}

func normalizationQuality(fallbacks int) float64 {
	q := 100 - float64(fallbacks)*fallbackRulePenalty
	if q < 0 {
		return 0
	}
	return q
}

func capPct(count, ideal int) float64 {
	if ideal <= 0 {
		return 0
	}
	p := float64(count) / float64(ideal) * 100
	if p > 100 {
		return 100
	}
	return p
}

func mapSlice[S, T any](in []S, f func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func appendOnce(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// pick extracts one field as a most-recent-first series.
func pick[S any](in []S, f func(S) float64) []float64 {
	out := make([]float64, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
