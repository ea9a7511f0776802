package parser

import (
	"FinGrade/internal/domain/models"
)

// FinanceParser converts raw provider records for a deposit-taking company
// into typed per-period data.
type FinanceParser struct{}

func NewFinanceParser() *FinanceParser { return &FinanceParser{} }

// Parse validates structure, copies every period into the typed record
// with source-field fallbacks, and scores quality and completeness. The
// finance completeness blend skips the quarterly shortfall penalty.
func (p *FinanceParser) Parse(payload *models.RawCompanyPayload, classification models.SectorClassification) (*models.FinanceData, error) {
	if payload == nil || len(payload.QuarterlyData) == 0 {
		return nil, ErrMissingQuarterlyData
	}
	if len(payload.BalanceSheet) == 0 {
		return nil, ErrMissingBalanceSheet
	}
	if err := checkPrimaryField(payload.QuarterlyData, "quarterly_data", "revenue"); err != nil {
		return nil, err
	}

	data := &models.FinanceData{
		Quarterly:      parseFinancePeriods(payload.QuarterlyData),
		Annual:         parseFinancePeriods(payload.AnnualData),
		BalanceSheet:   parseFinanceBalanceSheets(payload.BalanceSheet),
		CashFlow:       parseCashFlow(payload.CashFlow),
		Classification: classification,
		IndustryType:   classification.SubSector,
	}

	data.Ratios = models.BankingRatios{
		GrossNPAPercent: ratioSeries(payload.Ratios, "gross_npa_percent", "gross_npa"),
		NetNPAPercent:   ratioSeries(payload.Ratios, "net_npa_percent", "net_npa"),
		CASAPercent:     ratioSeries(payload.Ratios, "casa_percent", "casa"),
		ROEPercent:      ratioSeries(payload.Ratios, "roe_percent", "roe"),
	}

	hasRatios := len(data.Ratios.GrossNPAPercent) > 0 || len(data.Ratios.CASAPercent) > 0
	data.DataQualityScore = qualityScore(len(data.Annual) > 0, len(data.CashFlow) > 0, hasRatios)
	data.CompletenessScore = completenessScore(
		len(data.Quarterly), len(data.Annual), len(data.BalanceSheet),
		len(data.Ratios.GrossNPAPercent), len(data.CashFlow), false,
	)

	return data, nil
}

func parseFinancePeriods(seq models.RecordSeq) []models.FinanceQuarter {
	out := make([]models.FinanceQuarter, 0, len(seq))
	for _, rec := range seq {
		q := models.FinanceQuarter{
			Period:                 rec.String("period"),
			Revenue:                rec.NumberOr(0, "revenue", "sales"),
			Interest:               rec.NumberOr(0, "interest"),
			Expenses:               rec.NumberOr(0, "expenses"),
			FinancingProfit:        rec.NumberOr(0, "financing_profit"),
			FinancingMarginPercent: rec.NumberOr(0, "financing_margin_percent", "fin_margin_percent"),
			OtherIncome:            rec.NumberOr(0, "other_income"),
			Depreciation:           rec.NumberOr(0, "depreciation"),
			ProfitBeforeTax:        rec.NumberOr(0, "profit_before_tax", "pbt"),
			TaxPercent:             rec.NumberOr(0, "tax_percent"),
			NetProfit:              rec.NumberOr(0, "net_profit", "profit_after_tax"),
			EPS:                    rec.NumberOr(0, "eps", "eps_in_rs"),
			GrossNPAPercent:        rec.NumberOr(0, "gross_npa_percent"),
			NetNPAPercent:          rec.NumberOr(0, "net_npa_percent"),
		}
		out = append(out, q)
	}
	return out
}

func parseFinanceBalanceSheets(seq models.RecordSeq) []models.FinanceBalanceSheet {
	out := make([]models.FinanceBalanceSheet, 0, len(seq))
	for _, rec := range seq {
		bs := models.FinanceBalanceSheet{
			Period:           rec.String("period"),
			EquityCapital:    rec.NumberOr(0, "equity_capital", "share_capital"),
			Reserves:         rec.NumberOr(0, "reserves"),
			Deposits:         rec.NumberOr(0, "deposits"),
			Borrowings:       rec.NumberOr(0, "borrowings"),
			OtherLiabilities: rec.NumberOr(0, "other_liabilities"),
			FixedAssets:      rec.NumberOr(0, "fixed_assets"),
			WorkInProgress:   rec.NumberOr(0, "cwip", "work_in_progress"),
			Investments:      rec.NumberOr(0, "investments"),
			OtherAssets:      rec.NumberOr(0, "other_assets"),
			TotalAssets:      totalAssetsFallback(rec),
		}
		out = append(out, bs)
	}
	return out
}
