package sector

import (
	"errors"
	"testing"

	"FinGrade/internal/domain/models"
)

func TestDetectBankRoundTrip(t *testing.T) {
	d := NewDetector()
	payload := &models.RawCompanyPayload{
		CompanyInfo: models.CompanyInfo{Name: "Model Bank Ltd", Sector: "Banking"},
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "revenue": 1200.0, "financing_profit": 400.0},
		},
		BalanceSheet: models.RecordSeq{
			{"period": "Mar 2024", "deposits": 50000.0},
		},
	}

	got, err := d.Detect(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != models.SectorFinance {
		t.Fatalf("expected finance, got %s", got.Sector)
	}
	if got.SubSector != models.SubSectorBanking {
		t.Fatalf("expected banking sub-sector, got %s", got.SubSector)
	}
	if got.Confidence <= 0.95 {
		t.Fatalf("expected confidence > 0.95, got %v", got.Confidence)
	}
}

func TestDetectInsufficientData(t *testing.T) {
	d := NewDetector()
	got, err := d.Detect(&models.RawCompanyPayload{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if got.Sector != models.SectorUnknown || got.Confidence != 0 {
		t.Fatalf("expected unknown/0, got %s/%v", got.Sector, got.Confidence)
	}
}

func TestDetectManufacturer(t *testing.T) {
	d := NewDetector()
	payload := &models.RawCompanyPayload{
		CompanyInfo: models.CompanyInfo{Name: "Apex Steel Industries", Sector: "Steel"},
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "sales": 963.0, "operating_profit": 219.0},
		},
		BalanceSheet: models.RecordSeq{
			{
				"period": "Mar 2024", "borrowings": 200.0, "inventory": 150.0,
				"debtors": 90.0, "current_assets": 400.0, "fixed_assets": 600.0,
				"total_assets": 1200.0,
			},
		},
	}

	got, err := d.Detect(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != models.SectorNonFinance {
		t.Fatalf("expected non_finance, got %s", got.Sector)
	}
	if got.Confidence < 0.5 {
		t.Fatalf("confidence too low: %v", got.Confidence)
	}
}

func TestDetectNBFCFallback(t *testing.T) {
	d := NewDetector()
	// Financing profit without deposits reads as a non-bank lender even
	// when the decision scores stay under the threshold.
	payload := &models.RawCompanyPayload{
		CompanyInfo: models.CompanyInfo{Name: "Quiet Co"},
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "revenue": 100.0, "financing_profit": 30.0},
		},
	}

	got, err := d.Detect(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != models.SectorFinance || got.SubSector != models.SubSectorNBFC {
		t.Fatalf("expected finance/nbfc, got %s/%s", got.Sector, got.SubSector)
	}
}

func TestDetectConflictAndMissingBalanceSheetDiscount(t *testing.T) {
	d := NewDetector()
	payload := &models.RawCompanyPayload{
		CompanyInfo: models.CompanyInfo{Name: "Hybrid Finance Bank"},
		QuarterlyData: models.RecordSeq{
			{"period": "Mar 2024", "sales": 500.0, "financing_profit": 100.0},
		},
		BalanceSheet: models.RecordSeq{
			{"period": "Mar 2024", "deposits": 900.0},
		},
	}

	got, err := d.Detect(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base 0.5 + deposits 0.2 + financing 0.2 + structure 0.1 + keywords 0.1,
	// clamped after the 0.7 conflict discount applies to the raw sum.
	want := (0.5 + 0.2 + 0.2 + 0.1 + 0.1) * 0.7
	if diff := got.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected confidence %v, got %v", want, got.Confidence)
	}
	foundWarn := false
	for _, w := range got.Warnings {
		if w == "conflicting_sector_signals" {
			foundWarn = true
		}
	}
	if !foundWarn {
		t.Fatalf("expected conflicting_sector_signals warning, got %v", got.Warnings)
	}
}
