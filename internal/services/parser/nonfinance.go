package parser

import (
	"FinGrade/internal/domain/models"
)

// NonFinanceParser converts raw provider records for an operating company
// into typed per-period data. The caller has already decided the sector;
// the parser does not re-run detection.
type NonFinanceParser struct{}

func NewNonFinanceParser() *NonFinanceParser { return &NonFinanceParser{} }

// Parse validates structure, copies every period into the typed record
// with source-field fallbacks, and scores quality and completeness.
func (p *NonFinanceParser) Parse(payload *models.RawCompanyPayload, classification models.SectorClassification) (*models.NonFinanceData, error) {
	if payload == nil || len(payload.QuarterlyData) == 0 {
		return nil, ErrMissingQuarterlyData
	}
	if len(payload.BalanceSheet) == 0 {
		return nil, ErrMissingBalanceSheet
	}
	if err := checkPrimaryField(payload.QuarterlyData, "quarterly_data", "sales"); err != nil {
		return nil, err
	}

	data := &models.NonFinanceData{
		Quarterly:      parseNonFinancePeriods(payload.QuarterlyData),
		Annual:         parseNonFinancePeriods(payload.AnnualData),
		BalanceSheet:   parseNonFinanceBalanceSheets(payload.BalanceSheet),
		CashFlow:       parseCashFlow(payload.CashFlow),
		Classification: classification,
		IndustryType:   classification.SubSector,
	}

	data.Ratios = models.WorkingCapitalRatios{
		DebtorDays:     ratioSeries(payload.Ratios, "debtor_days"),
		InventoryDays:  ratioSeries(payload.Ratios, "inventory_days"),
		PayableDays:    ratioSeries(payload.Ratios, "payable_days", "days_payable"),
		CashConversion: ratioSeries(payload.Ratios, "cash_conversion_cycle", "ccc"),
		ROCEPercent:    ratioSeries(payload.Ratios, "roce_percent", "roce"),
	}

	hasRatios := len(data.Ratios.DebtorDays) > 0 || len(data.Ratios.InventoryDays) > 0
	data.DataQualityScore = qualityScore(len(data.Annual) > 0, len(data.CashFlow) > 0, hasRatios)
	data.CompletenessScore = completenessScore(
		len(data.Quarterly), len(data.Annual), len(data.BalanceSheet),
		len(data.Ratios.DebtorDays), len(data.CashFlow), true,
	)

	return data, nil
}

func parseNonFinancePeriods(seq models.RecordSeq) []models.NonFinanceQuarter {
	out := make([]models.NonFinanceQuarter, 0, len(seq))
	for _, rec := range seq {
		q := models.NonFinanceQuarter{
			Period:          rec.String("period"),
			Sales:           rec.NumberOr(0, "sales", "revenue"),
			Expenses:        rec.NumberOr(0, "expenses"),
			OperatingProfit: rec.NumberOr(0, "operating_profit"),
			// Providers have shipped both spellings of this field.
			OPMPercent:      rec.NumberOr(0, "opm_percent", "omp_percent"),
			OtherIncome:     rec.NumberOr(0, "other_income"),
			Interest:        rec.NumberOr(0, "interest"),
			Depreciation:    rec.NumberOr(0, "depreciation"),
			ProfitBeforeTax: rec.NumberOr(0, "profit_before_tax", "pbt"),
			TaxPercent:      rec.NumberOr(0, "tax_percent"),
			NetProfit:       rec.NumberOr(0, "net_profit", "profit_after_tax"),
			EPS:             rec.NumberOr(0, "eps", "eps_in_rs"),
		}
		out = append(out, q)
	}
	return out
}

func parseNonFinanceBalanceSheets(seq models.RecordSeq) []models.NonFinanceBalanceSheet {
	out := make([]models.NonFinanceBalanceSheet, 0, len(seq))
	for _, rec := range seq {
		bs := models.NonFinanceBalanceSheet{
			Period:             rec.String("period"),
			EquityCapital:      rec.NumberOr(0, "equity_capital", "share_capital"),
			Reserves:           rec.NumberOr(0, "reserves"),
			Borrowings:         rec.NumberOr(0, "borrowings"),
			OtherLiabilities:   rec.NumberOr(0, "other_liabilities"),
			CurrentLiabilities: rec.NumberOr(0, "current_liabilities"),
			FixedAssets:        rec.NumberOr(0, "fixed_assets"),
			WorkInProgress:     rec.NumberOr(0, "cwip", "work_in_progress"),
			Investments:        rec.NumberOr(0, "investments"),
			OtherAssets:        rec.NumberOr(0, "other_assets"),
			CurrentAssets:      rec.NumberOr(0, "current_assets"),
			Inventory:          rec.NumberOr(0, "inventory"),
			Debtors:            rec.NumberOr(0, "debtors", "trade_receivables"),
			CashEquivalents:    rec.NumberOr(0, "cash_equivalents", "cash_and_bank"),
			TotalAssets:        totalAssetsFallback(rec),
		}
		out = append(out, bs)
	}
	return out
}
