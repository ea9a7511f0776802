package parser

import (
	"errors"
	"math"
	"testing"

	"FinGrade/internal/domain/models"
)

func nonFinancePayload() *models.RawCompanyPayload {
	return &models.RawCompanyPayload{
		CompanyID: "apex-steel",
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "sales": 963.0, "expenses": 744.0, "operating_profit": 219.0, "omp_percent": 22.7, "net_profit": 140.0, "eps": 3.1},
			{"period": "Dec 2023", "sales": 910.0, "expenses": 720.0, "operating_profit": 190.0, "opm_percent": 20.9, "net_profit": 120.0, "eps": 2.7},
		},
		AnnualData: models.RecordSeq{
			{"period": "FY2024", "sales": 3700.0, "operating_profit": 800.0, "net_profit": 500.0},
		},
		BalanceSheet: models.RecordSeq{
			{"period": "Mar 2024", "equity_capital": 100.0, "reserves": 1000.0, "borrowings": 300.0,
				"fixed_assets": 600.0, "cwip": 50.0, "investments": 100.0, "other_assets": 250.0},
		},
		CashFlow: models.RecordSeq{
			{"period": "FY2024", "operating": 420.0, "investing": -120.0, "financing": -200.0},
		},
		Ratios: map[string][]float64{
			"debtor_days":    {45, 48, 50},
			"inventory_days": {60, 62, 61},
		},
	}
}

func TestNonFinanceParseFieldFallbacks(t *testing.T) {
	p := NewNonFinanceParser()
	data, err := p.Parse(nonFinancePayload(), models.SectorClassification{Sector: models.SectorNonFinance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both opm_percent spellings are accepted.
	if data.Quarterly[0].OPMPercent != 22.7 {
		t.Fatalf("omp_percent fallback not applied: %v", data.Quarterly[0].OPMPercent)
	}
	if data.Quarterly[1].OPMPercent != 20.9 {
		t.Fatalf("opm_percent not read: %v", data.Quarterly[1].OPMPercent)
	}
}

func TestNonFinanceTotalAssetsFallback(t *testing.T) {
	p := NewNonFinanceParser()
	data, err := p.Parse(nonFinancePayload(), models.SectorClassification{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// fixed 600 + cwip 50 + investments 100 + other 250, no current assets.
	if got := data.BalanceSheet[0].TotalAssets; got != 1000 {
		t.Fatalf("total assets fallback = %v, want 1000", got)
	}
}

func TestParseStructuralErrors(t *testing.T) {
	p := NewNonFinanceParser()
	if _, err := p.Parse(&models.RawCompanyPayload{}, models.SectorClassification{}); !errors.Is(err, ErrMissingQuarterlyData) {
		t.Fatalf("expected ErrMissingQuarterlyData, got %v", err)
	}

	noBS := nonFinancePayload()
	noBS.BalanceSheet = nil
	if _, err := p.Parse(noBS, models.SectorClassification{}); !errors.Is(err, ErrMissingBalanceSheet) {
		t.Fatalf("expected ErrMissingBalanceSheet, got %v", err)
	}
}

func TestParseRejectsNonFinitePrimaryField(t *testing.T) {
	p := NewNonFinanceParser()
	payload := nonFinancePayload()
	payload.QuarterlyData[0]["sales"] = math.NaN()
	if _, err := p.Parse(payload, models.SectorClassification{}); err == nil {
		t.Fatalf("expected error for NaN sales")
	}
}

func TestNonFinanceScores(t *testing.T) {
	p := NewNonFinanceParser()
	data, err := p.Parse(nonFinancePayload(), models.SectorClassification{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All sections present: quality stays at 100.
	if data.DataQualityScore != 100 {
		t.Fatalf("quality = %v, want 100", data.DataQualityScore)
	}
	// 2/13 quarters keeps completeness well under 100 and triggers the
	// quarterly shortfall penalty.
	if data.CompletenessScore <= 0 || data.CompletenessScore >= 50 {
		t.Fatalf("completeness = %v, want (0,50)", data.CompletenessScore)
	}
}

func TestFinanceParse(t *testing.T) {
	p := NewFinanceParser()
	payload := &models.RawCompanyPayload{
		CompanyID: "model-bank",
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "revenue": 1200.0, "interest": 700.0, "financing_profit": 380.0,
				"financing_margin_percent": 3.4, "net_profit": 260.0},
		},
		BalanceSheet: models.RecordSeq{
			{"period": "Mar 2024", "equity_capital": 500.0, "reserves": 4000.0, "deposits": 50000.0,
				"borrowings": 8000.0, "other_assets": 45000.0, "investments": 12000.0, "fixed_assets": 900.0},
		},
	}

	data, err := p.Parse(payload, models.SectorClassification{Sector: models.SectorFinance, SubSector: models.SubSectorBanking})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Quarterly[0].FinancingProfit != 380 {
		t.Fatalf("financing profit = %v", data.Quarterly[0].FinancingProfit)
	}
	if data.BalanceSheet[0].TotalAssets != 45000+12000+900 {
		t.Fatalf("total assets fallback = %v", data.BalanceSheet[0].TotalAssets)
	}
	if data.IndustryType != models.SubSectorBanking {
		t.Fatalf("industry type = %s", data.IndustryType)
	}
	// Missing annual and cash flow sections are penalized.
	if data.DataQualityScore != 100-penaltyMissingAnnual-penaltyMissingCashFlow-penaltyMissingRatios {
		t.Fatalf("quality = %v", data.DataQualityScore)
	}
}
