package validate

import (
	"fmt"

	"FinGrade/internal/domain/models"
	"FinGrade/internal/services/ratios"
)

// Non-finance rule thresholds.
const (
	cccFloorDays      = -100.0
	cccCeilingDays    = 1000.0
	debtorDaysCeiling = 365.0

	revenueSwingLimit = 1000.0 // percent, either direction

	inventoryDropLimit  = -80.0  // percent between consecutive sheets
	inventorySpikeLimit = 300.0  // percent between consecutive sheets
)

// validateNonFinance runs the operating-company rule group. Working
// capital inputs come from the sector-specific extras the normalizer
// preserves.
func validateNonFinance(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	validateWorkingCapital(data, result)
	validateRevenueSwings(data, result)
	validateInventorySwings(data, result)
}

func validateWorkingCapital(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	if len(data.Quarterly) == 0 {
		return
	}

	debtors := floatSeries(data, "debtor_series")
	inventory := floatSeries(data, "inventory_series")
	payables := floatSeries(data, "current_liabilities_series")
	expenses := floatSeries(data, "expenses_series")
	if len(debtors) == 0 && len(inventory) == 0 {
		return
	}

	sales := data.Quarterly[0].PrimaryIncome
	cost := sales
	if len(expenses) > 0 && expenses[0] != 0 {
		cost = expenses[0]
	}

	debtorDays := ratios.DayMetric(first(debtors), sales)
	inventoryDays := ratios.DayMetric(first(inventory), cost)
	payableDays := ratios.DayMetric(first(payables), cost)
	ccc := ratios.CashConversionCycle(debtorDays, inventoryDays, payableDays)

	if ccc < cccFloorDays || ccc > cccCeilingDays {
		result.Add(models.ValidationFinding{
			Type:     "unrealistic_cash_conversion_cycle",
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("cash conversion cycle %.0f days is outside [%.0f, %.0f]", ccc, cccFloorDays, cccCeilingDays),
			Field:    "cash_conversion_cycle",
			Value:    ccc,
		})
	}
	if debtorDays > debtorDaysCeiling {
		result.Add(models.ValidationFinding{
			Type:     "unrealistic_debtor_days",
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("debtor days %.0f exceeds a full year", debtorDays),
			Field:    "debtor_days",
			Value:    debtorDays,
		})
	}
}

func validateRevenueSwings(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	for i := 0; i+1 < len(data.Quarterly); i++ {
		curr, prev := data.Quarterly[i].PrimaryIncome, data.Quarterly[i+1].PrimaryIncome
		if prev == 0 {
			continue
		}
		swing := (curr - prev) / prev * 100
		if swing > revenueSwingLimit || swing < -revenueSwingLimit {
			result.Add(models.ValidationFinding{
				Type:     "extreme_revenue_swing",
				Severity: models.SeverityWarning,
				Message: fmt.Sprintf("primary income swung %.0f%% between %s and %s",
					swing, data.Quarterly[i+1].Period, data.Quarterly[i].Period),
				Field: "primary_income",
				Value: swing,
			})
		}
	}
}

func validateInventorySwings(data *models.NormalizedFinancialData, result *models.ValidationResult) {
	inventory := floatSeries(data, "inventory_series")
	for i := 0; i+1 < len(inventory); i++ {
		curr, prev := inventory[i], inventory[i+1]
		if prev == 0 {
			continue
		}
		change := (curr - prev) / prev * 100
		if change < inventoryDropLimit || change > inventorySpikeLimit {
			result.Add(models.ValidationFinding{
				Type:     "inventory_swing",
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("inventory changed %.0f%% between consecutive balance sheets", change),
				Field:    "inventory",
				Value:    change,
			})
		}
	}
}

func first(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}
