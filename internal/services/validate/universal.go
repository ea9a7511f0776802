package validate

import (
	"fmt"
	"math"

	"FinGrade/internal/domain/models"
	"FinGrade/pkg/util"
)

// Universal rule thresholds.
const (
	distressNetProfit    = -100.0
	extremeLossNetProfit = -1000.0
	extremePrimaryIncome = 1_000_000.0
	extremeEPS           = 500.0

	// Balance sheet identity: findings fire when the difference between
	// reported assets and equity+reserves+debt exceeds this share of
	// assets; variance above errorVariance upgrades to error severity.
	equationTolerance = 0.6
	errorVariance     = 0.10
)

// validateUniversal runs the sector-agnostic rule group.
func validateUniversal(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	if data == nil {
		result.Add(models.ValidationFinding{
			Type:     "missing_normalized_data",
			Severity: models.SeverityCritical,
			Message:  "normalized data is missing",
		})
		return
	}

	if len(data.Quarterly) == 0 {
		result.Add(models.ValidationFinding{
			Type:     "missing_quarterly_data",
			Severity: models.SeverityError,
			Message:  "no quarterly periods present",
		})
	}

	if len(data.Quarterly) > 1 {
		labels := make([]string, 0, len(data.Quarterly))
		for _, q := range data.Quarterly {
			labels = append(labels, q.Period)
		}
		if !util.MostRecentFirst(labels) {
			result.Add(models.ValidationFinding{
				Type:     "unordered_periods",
				Severity: models.SeverityWarning,
				Message:  "quarterly periods are not ordered most recent first",
				Field:    "period",
			})
		}
	}

	for _, q := range data.Quarterly {
		validatePeriod(q, result)
	}
	for _, bs := range data.BalanceSheet {
		validateBalanceSheet(bs, result)
	}
}

func validatePeriod(q models.NormalizedPeriodRecord, result *models.ValidationResult) {
	for field, v := range map[string]float64{
		"primary_income":    q.PrimaryIncome,
		"core_profit":       q.CoreProfit,
		"net_profit":        q.NetProfit,
		"profit_before_tax": q.ProfitBeforeTax,
		"eps":               q.EPS,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.Add(models.ValidationFinding{
				Type:     "invalid_numeric_value",
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("period %s: %s is not a number", q.Period, field),
				Field:    field,
			})
		}
	}

	switch {
	case q.PrimaryIncome < 0:
		result.Add(models.ValidationFinding{
			Type:     "negative_primary_income",
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("period %s: primary income is negative", q.Period),
			Field:    "primary_income",
			Value:    q.PrimaryIncome,
		})
	case q.PrimaryIncome == 0:
		result.Add(models.ValidationFinding{
			Type:       "zero_primary_income",
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("period %s: primary income is zero", q.Period),
			Field:      "primary_income",
			Suggestion: "check if revenue is missing from the source data",
		})
	}

	if q.NetProfit < distressNetProfit {
		result.Add(models.ValidationFinding{
			Type:     "business_distress",
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("period %s: net profit %.2f signals distress", q.Period, q.NetProfit),
			Field:    "net_profit",
			Value:    q.NetProfit,
		})
	}
	if q.NetProfit < extremeLossNetProfit {
		result.Add(models.ValidationFinding{
			Type:     "extreme_loss",
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("period %s: net profit %.2f is an extreme loss", q.Period, q.NetProfit),
			Field:    "net_profit",
			Value:    q.NetProfit,
		})
	}

	if q.PrimaryIncome > extremePrimaryIncome {
		result.Add(models.ValidationFinding{
			Type:     "extreme_value",
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("period %s: primary income %.0f is implausibly large", q.Period, q.PrimaryIncome),
			Field:    "primary_income",
			Value:    q.PrimaryIncome,
		})
	}
	if math.Abs(q.EPS) > extremeEPS {
		result.Add(models.ValidationFinding{
			Type:     "extreme_value",
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("period %s: EPS %.2f is implausibly large", q.Period, q.EPS),
			Field:    "eps",
			Value:    q.EPS,
		})
	}
}

func validateBalanceSheet(bs models.NormalizedBalanceSheetRecord, result *models.ValidationResult) {
	if bs.TotalAssets == 0 {
		result.Add(models.ValidationFinding{
			Type:     "zero_total_assets",
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("period %s: total assets is zero", bs.Period),
			Field:    "total_assets",
		})
	}
	if bs.EquityCapital+bs.Reserves < 0 {
		result.Add(models.ValidationFinding{
			Type:     "negative_equity",
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("period %s: total equity is negative", bs.Period),
			Field:    "equity_capital",
			Value:    bs.EquityCapital + bs.Reserves,
		})
	}

	if f, ok := ValidateBalanceSheetEquation(bs); ok {
		result.Add(f)
	}
}

// ValidateBalanceSheetEquation checks assets against
// equity_capital + reserves + total_debt. The finding fires when the
// difference exceeds the tolerance share of assets; variance above 10%
// carries error severity, anything under it a warning.
func ValidateBalanceSheetEquation(bs models.NormalizedBalanceSheetRecord) (models.ValidationFinding, bool) {
	if bs.TotalAssets == 0 {
		return models.ValidationFinding{}, false
	}

	sum := bs.EquityCapital + bs.Reserves + bs.TotalDebt
	diff := math.Abs(sum - bs.TotalAssets)
	if diff <= equationTolerance*math.Abs(bs.TotalAssets) {
		return models.ValidationFinding{}, false
	}

	variance := diff / math.Abs(bs.TotalAssets)
	severity := models.SeverityWarning
	if variance > errorVariance {
		severity = models.SeverityError
	}
	return models.ValidationFinding{
		Type:     "balance_sheet_equation_mismatch",
		Severity: severity,
		Message: fmt.Sprintf("period %s: equity+reserves+debt (%.2f) deviates from assets (%.2f) by %.1f%%",
			bs.Period, sum, bs.TotalAssets, variance*100),
		Field: "total_assets",
		Value: variance,
	}, true
}
