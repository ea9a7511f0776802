package validate

import (
	"fmt"

	"FinGrade/internal/domain/models"
)

// Finance rule thresholds.
const (
	nimFloor = 0.0
	nimCeil  = 20.0

	loanToDepositLimit = 0.90
)

// validateFinance runs the deposit-taking rule group against the series
// the normalizer preserves in the sector-specific bag.
func validateFinance(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	validateDeposits(data, result)
	validateNetInterestMargin(data, result)
	validateLoanToDeposit(data, result)
}

func validateDeposits(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	deposits := floatSeries(data, "deposit_series")
	if len(data.BalanceSheet) == 0 {
		return
	}
	for i, bs := range data.BalanceSheet {
		if i >= len(deposits) || deposits[i] == 0 {
			result.Add(models.ValidationFinding{
				Type:     "missing_deposits",
				Severity: models.SeverityCritical,
				Message:  fmt.Sprintf("period %s: deposits are zero or missing for a deposit-taking company", bs.Period),
				Field:    "deposits",
			})
		}
	}
}

func validateNetInterestMargin(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	margins := floatSeries(data, "financing_margin_percent")
	for i, m := range margins {
		if m == 0 {
			continue
		}
		if m < nimFloor || m > nimCeil {
			period := ""
			if i < len(data.Quarterly) {
				period = data.Quarterly[i].Period
			}
			result.Add(models.ValidationFinding{
				Type:     "unrealistic_nim_values",
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("period %s: net interest margin %.1f%% is outside [%.0f, %.0f]", period, m, nimFloor, nimCeil),
				Field:    "financing_margin_percent",
				Value:    m,
			})
		}
	}
}

func validateLoanToDeposit(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	loans := floatSeries(data, "loan_series")
	deposits := floatSeries(data, "deposit_series")
	n := len(loans)
	if len(deposits) < n {
		n = len(deposits)
	}
	for i := 0; i < n; i++ {
		if deposits[i] == 0 {
			continue
		}
		ratio := loans[i] / deposits[i]
		if ratio > loanToDepositLimit {
			result.Add(models.ValidationFinding{
				Type:     "high_loan_to_deposit",
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("loan book is %.0f%% of deposits", ratio*100),
				Field:    "loan_to_deposit",
				Value:    ratio,
			})
		}
	}
}
