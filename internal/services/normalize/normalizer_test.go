package normalize

import (
	"errors"
	"testing"

	"FinGrade/internal/domain/models"
)

func nonFinanceData() *models.NonFinanceData {
	return &models.NonFinanceData{
		Quarterly: []models.NonFinanceQuarter{
			{Period: "Mar 2024", Sales: 963, Expenses: 744, OperatingProfit: 219, NetProfit: 140, EPS: 3.1},
			{Period: "Dec 2023", Sales: 910, Expenses: 720, NetProfit: 120, EPS: 2.7},
		},
		BalanceSheet: []models.NonFinanceBalanceSheet{
			{Period: "Mar 2024", EquityCapital: 100, Reserves: 1000, Borrowings: 300,
				OtherLiabilities: 120, CurrentLiabilities: 80, FixedAssets: 600,
				Investments: 100, TotalAssets: 1000},
		},
		Classification: models.SectorClassification{Sector: models.SectorNonFinance},
	}
}

func TestNormalizeNonFinanceMapping(t *testing.T) {
	n := New()
	out, err := n.NormalizeNonFinance(nonFinanceData(), models.SectorNonFinance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Quarterly[0].PrimaryIncome != 963 || out.Quarterly[0].CoreProfit != 219 {
		t.Fatalf("period mapping wrong: %+v", out.Quarterly[0])
	}
	// Missing operating profit falls back to sales - expenses.
	if out.Quarterly[1].CoreProfit != 910-720 {
		t.Fatalf("core profit fallback = %v", out.Quarterly[1].CoreProfit)
	}
	// total_debt = borrowings + other_liabilities + current_liabilities.
	if out.BalanceSheet[0].TotalDebt != 300+120+80 {
		t.Fatalf("total debt = %v", out.BalanceSheet[0].TotalDebt)
	}
	if out.InterestTreatment != models.InterestAsExpense {
		t.Fatalf("interest treatment = %s", out.InterestTreatment)
	}
	// Fallback derivation costs normalization quality.
	if out.NormalizationQuality != 90 {
		t.Fatalf("normalization quality = %v", out.NormalizationQuality)
	}
	if !hasRule(out.Metadata.RulesApplied, RuleCoreProfitFromSalesExpenses) {
		t.Fatalf("audit rules missing fallback rule: %v", out.Metadata.RulesApplied)
	}
	if !hasRule(out.Metadata.RulesApplied, RulePrimaryIncomeFromSales) {
		t.Fatalf("audit rules missing primary income rule: %v", out.Metadata.RulesApplied)
	}
}

func TestNormalizeFinanceMapping(t *testing.T) {
	n := New()
	data := &models.FinanceData{
		Quarterly: []models.FinanceQuarter{
			{Period: "Mar 2024", Revenue: 1200, FinancingProfit: 380, NetProfit: 260, FinancingMarginPercent: 3.4},
		},
		BalanceSheet: []models.FinanceBalanceSheet{
			{Period: "Mar 2024", EquityCapital: 500, Reserves: 4000, Deposits: 50000,
				Borrowings: 8000, OtherAssets: 45000, TotalAssets: 57900},
		},
		Classification: models.SectorClassification{Sector: models.SectorFinance},
	}

	out, err := n.NormalizeFinance(data, models.SectorFinance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Quarterly[0].PrimaryIncome != 1200 || out.Quarterly[0].CoreProfit != 380 {
		t.Fatalf("period mapping wrong: %+v", out.Quarterly[0])
	}
	// total_debt = borrowings + deposits.
	if out.BalanceSheet[0].TotalDebt != 8000+50000 {
		t.Fatalf("total debt = %v", out.BalanceSheet[0].TotalDebt)
	}
	if out.InterestTreatment != models.InterestAsCoreComponent {
		t.Fatalf("interest treatment = %s", out.InterestTreatment)
	}
}

func TestNormalizeErrors(t *testing.T) {
	n := New()

	if _, err := n.NormalizeNonFinance(nil, models.SectorNonFinance); !errors.Is(err, ErrNilInput) {
		t.Fatalf("expected ErrNilInput, got %v", err)
	}

	if _, err := n.NormalizeNonFinance(nonFinanceData(), models.SectorFinance); !errors.Is(err, ErrSectorMismatch) {
		t.Fatalf("expected ErrSectorMismatch, got %v", err)
	}

	neg := nonFinanceData()
	neg.Quarterly[1].Sales = -10
	if _, err := n.NormalizeNonFinance(neg, models.SectorNonFinance); !errors.Is(err, ErrNegativePrimaryIncome) {
		t.Fatalf("expected ErrNegativePrimaryIncome, got %v", err)
	}
}

func hasRule(rules []string, want string) bool {
	for _, r := range rules {
		if r == want {
			return true
		}
	}
	return false
}
