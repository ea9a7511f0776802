package validate

import (
	"testing"

	"FinGrade/internal/domain/models"
)

func cleanNonFinanceData() *models.NormalizedFinancialData {
	return &models.NormalizedFinancialData{
		Quarterly: []models.NormalizedPeriodRecord{
			{Period: "Mar 2024", PrimaryIncome: 1000, CoreProfit: 200, NetProfit: 150, EPS: 3},
			{Period: "Dec 2023", PrimaryIncome: 980, CoreProfit: 190, NetProfit: 140, EPS: 2.8},
		},
		Annual: []models.NormalizedPeriodRecord{
			{Period: "FY2024", PrimaryIncome: 4000, NetProfit: 600, EPS: 12},
		},
		BalanceSheet: []models.NormalizedBalanceSheetRecord{
			{Period: "Mar 2024", EquityCapital: 100, Reserves: 300, TotalDebt: 300, TotalAssets: 700},
		},
		CashFlow: []models.CashFlowRecord{{Period: "FY2024", Operating: 500}},
	}
}

func TestValidateCleanData(t *testing.T) {
	v := New()
	got := v.Validate(cleanNonFinanceData(), models.SectorNonFinance)
	if !got.IsValid {
		t.Fatalf("expected valid, got findings: %+v %+v", got.Errors, got.Warnings)
	}
	if len(got.Errors) != 0 || len(got.Warnings) != 0 {
		t.Fatalf("expected no findings, got %+v %+v", got.Errors, got.Warnings)
	}
	if got.QualityScore <= 0 {
		t.Fatalf("expected positive quality score, got %v", got.QualityScore)
	}
}

func TestValidateNilData(t *testing.T) {
	v := New()
	got := v.Validate(nil, models.SectorNonFinance)
	if got.IsValid {
		t.Fatalf("expected invalid for nil data")
	}
	if len(got.Errors) == 0 || got.Errors[0].Type != "missing_normalized_data" {
		t.Fatalf("expected missing_normalized_data, got %+v", got.Errors)
	}
}

func TestBalanceSheetEquationMismatch(t *testing.T) {
	bs := models.NormalizedBalanceSheetRecord{
		Period:        "Mar 2024",
		EquityCapital: 100,
		Reserves:      1000,
		TotalDebt:     500,
		TotalAssets:   700,
	}
	f, ok := ValidateBalanceSheetEquation(bs)
	if !ok {
		t.Fatalf("expected equation mismatch to fire")
	}
	if f.Type != "balance_sheet_equation_mismatch" {
		t.Fatalf("type = %q", f.Type)
	}
	// variance = |1600-700|/700, well past the 10% error cutoff
	if f.Severity != models.SeverityError {
		t.Fatalf("severity = %q, want error", f.Severity)
	}

	data := cleanNonFinanceData()
	data.BalanceSheet = []models.NormalizedBalanceSheetRecord{bs}
	got := New().Validate(data, models.SectorNonFinance)
	if got.IsValid {
		t.Fatalf("expected invalid result")
	}
}

func TestBalanceSheetEquationWithinTolerance(t *testing.T) {
	bs := models.NormalizedBalanceSheetRecord{
		Period:        "Mar 2024",
		EquityCapital: 100,
		Reserves:      300,
		TotalDebt:     500,
		TotalAssets:   700,
	}
	// diff 200 is under 60% of assets
	if _, ok := ValidateBalanceSheetEquation(bs); ok {
		t.Fatalf("expected no finding within tolerance")
	}
}

func TestCriticalFindingCostsFiftyPoints(t *testing.T) {
	v := New()
	base := v.Validate(cleanNonFinanceData(), models.SectorNonFinance)

	dirty := cleanNonFinanceData()
	// equity+reserves go negative while the equation stays balanced
	dirty.BalanceSheet[0].EquityCapital = 100
	dirty.BalanceSheet[0].Reserves = -300
	dirty.BalanceSheet[0].TotalDebt = 900
	got := v.Validate(dirty, models.SectorNonFinance)

	if got.IsValid {
		t.Fatalf("expected invalid result")
	}
	if got.CountBySeverity(models.SeverityCritical) != 1 {
		t.Fatalf("expected exactly one critical, got %+v", got.Errors)
	}
	if drop := base.QualityScore - got.QualityScore; drop < 50 {
		t.Fatalf("critical finding dropped score by %v, want >= 50", drop)
	}
}

func TestWarningsDoNotInvalidate(t *testing.T) {
	data := cleanNonFinanceData()
	data.Quarterly[0].NetProfit = -1500 // distress critical plus extreme loss warning
	got := New().Validate(data, models.SectorNonFinance)
	if got.CountBySeverity(models.SeverityWarning) == 0 {
		t.Fatalf("expected extreme loss warning")
	}

	warnOnly := cleanNonFinanceData()
	warnOnly.Quarterly[0].EPS = 600
	res := New().Validate(warnOnly, models.SectorNonFinance)
	if !res.IsValid {
		t.Fatalf("a warning alone must not invalidate: %+v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Type != "extreme_value" {
		t.Fatalf("warnings = %+v", res.Warnings)
	}
}

func TestZeroPrimaryIncomeSuggestion(t *testing.T) {
	data := cleanNonFinanceData()
	data.Quarterly[0].PrimaryIncome = 0
	got := New().Validate(data, models.SectorNonFinance)
	if got.IsValid {
		t.Fatalf("expected invalid")
	}
	found := false
	for _, f := range got.Errors {
		if f.Type == "zero_primary_income" && f.Suggestion != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected zero_primary_income with suggestion, got %+v", got.Errors)
	}
}

func TestUnrealisticNIM(t *testing.T) {
	data := &models.NormalizedFinancialData{
		Quarterly: []models.NormalizedPeriodRecord{
			{Period: "Mar 2024", PrimaryIncome: 1000, NetProfit: 200},
		},
		BalanceSheet: []models.NormalizedBalanceSheetRecord{
			{Period: "Mar 2024", EquityCapital: 400, Reserves: 3600, TotalDebt: 35000, TotalAssets: 40000},
		},
		SectorSpecific: map[string]any{
			"deposit_series":           []float64{30000},
			"loan_series":              []float64{24000},
			"financing_margin_percent": []float64{50},
		},
	}
	got := New().Validate(data, models.SectorFinance)
	if got.IsValid {
		t.Fatalf("expected invalid")
	}
	found := false
	for _, f := range got.Errors {
		if f.Type == "unrealistic_nim_values" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unrealistic_nim_values, got %+v", got.Errors)
	}
}

func TestMissingDepositsCritical(t *testing.T) {
	data := &models.NormalizedFinancialData{
		Quarterly: []models.NormalizedPeriodRecord{
			{Period: "Mar 2024", PrimaryIncome: 1000, NetProfit: 200},
		},
		BalanceSheet: []models.NormalizedBalanceSheetRecord{
			{Period: "Mar 2024", EquityCapital: 400, Reserves: 3600, TotalDebt: 35000, TotalAssets: 40000},
		},
		SectorSpecific: map[string]any{
			"deposit_series": []float64{0},
			"loan_series":    []float64{24000},
		},
	}
	got := New().Validate(data, models.SectorFinance)
	if got.CountBySeverity(models.SeverityCritical) == 0 {
		t.Fatalf("expected missing deposits critical, got %+v", got.Errors)
	}
}

func TestHighLoanToDepositWarning(t *testing.T) {
	data := &models.NormalizedFinancialData{
		Quarterly: []models.NormalizedPeriodRecord{
			{Period: "Mar 2024", PrimaryIncome: 1000, NetProfit: 200},
		},
		BalanceSheet: []models.NormalizedBalanceSheetRecord{
			{Period: "Mar 2024", EquityCapital: 400, Reserves: 3600, TotalDebt: 35000, TotalAssets: 40000},
		},
		SectorSpecific: map[string]any{
			"deposit_series": []float64{30000},
			"loan_series":    []float64{29000},
		},
	}
	got := New().Validate(data, models.SectorFinance)
	if !got.IsValid {
		t.Fatalf("loan/deposit warning must not invalidate: %+v", got.Errors)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Type != "high_loan_to_deposit" {
		t.Fatalf("warnings = %+v", got.Warnings)
	}
}

func TestUnrealisticWorkingCapital(t *testing.T) {
	data := cleanNonFinanceData()
	data.SectorSpecific = map[string]any{
		// debtors of 20000 against 1000 quarterly sales: 1800 debtor days
		"debtor_series":              []float64{20000},
		"inventory_series":           []float64{100},
		"current_liabilities_series": []float64{200},
		"expenses_series":            []float64{800},
	}
	got := New().Validate(data, models.SectorNonFinance)
	if got.IsValid {
		t.Fatalf("expected invalid")
	}
	types := map[string]bool{}
	for _, f := range got.Errors {
		types[f.Type] = true
	}
	if !types["unrealistic_debtor_days"] || !types["unrealistic_cash_conversion_cycle"] {
		t.Fatalf("expected working capital findings, got %+v", got.Errors)
	}
}

func TestInventorySwingWarning(t *testing.T) {
	data := cleanNonFinanceData()
	data.SectorSpecific = map[string]any{
		"inventory_series": []float64{500, 100}, // +400% spike
	}
	got := New().Validate(data, models.SectorNonFinance)
	if !got.IsValid {
		t.Fatalf("inventory swing must only warn: %+v", got.Errors)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Type != "inventory_swing" {
		t.Fatalf("warnings = %+v", got.Warnings)
	}
}
