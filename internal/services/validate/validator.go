// Package validate runs plausibility rules against normalized financial
// data and turns the findings into an aggregate quality score.
package validate

import (
	"FinGrade/internal/domain/models"
)

// Quality score blend. The penalty term dominates: a single critical
// finding knocks 50 points off the final score before flooring.
const (
	weightCompleteness = 0.2
	weightConsistency  = 0.2
	weightPenalty      = 0.6

	penaltyCritical = 50.0
	penaltyError    = 30.0
	penaltyWarning  = 8.0

	// Consistency scoring over consecutive quarterly primary income.
	consistencyBase   = 70.0
	swingRewardBelow  = 50.0  // percent
	swingPenaltyAbove = 200.0 // percent
	swingReward       = 5.0
	swingPenalty      = 15.0

	sectionScore = 25.0 // per present section, 4 sections
)

// Validator merges the universal rule group with the sector-specific one.
type Validator struct{}

func New() *Validator { return &Validator{} }

// Validate runs every applicable rule group and computes the quality
// score. Warnings alone never invalidate the result.
func (v *Validator) Validate(data *models.NormalizedFinancialData, sector models.Sector) models.ValidationResult {
	result := models.ValidationResult{IsValid: true}

	validateUniversal(data, &result)

	if data != nil {
		switch sector {
		case models.SectorNonFinance:
			validateNonFinance(data, &result)
		case models.SectorFinance:
			validateFinance(data, &result)
		}
	}

	result.QualityScore = qualityScore(data, &result)
	return result
}

// qualityScore blends section completeness, inter-period consistency, and
// the finding penalties. The penalty term starts from its full weighted
// contribution and findings are deducted at face value, so one critical
// always costs the full 50 points.
func qualityScore(data *models.NormalizedFinancialData, r *models.ValidationResult) float64 {
	completeness := completenessScore(data)
	consistency := consistencyScore(data)

	deductions := penaltyCritical*float64(r.CountBySeverity(models.SeverityCritical)) +
		penaltyError*float64(r.CountBySeverity(models.SeverityError)) +
		penaltyWarning*float64(r.CountBySeverity(models.SeverityWarning))

	score := weightCompleteness*completeness +
		weightConsistency*consistency +
		weightPenalty*100 -
		deductions
	if score < 0 {
		return 0
	}
	return score
}

func completenessScore(data *models.NormalizedFinancialData) float64 {
	if data == nil {
		return 0
	}
	score := 0.0
	if len(data.Quarterly) > 0 {
		score += sectionScore
	}
	if len(data.Annual) > 0 {
		score += sectionScore
	}
	if len(data.BalanceSheet) > 0 {
		score += sectionScore
	}
	if len(data.CashFlow) > 0 {
		score += sectionScore
	}
	return score
}

// consistencyScore rewards stable consecutive quarters and penalizes wild
// swings in primary income.
func consistencyScore(data *models.NormalizedFinancialData) float64 {
	if data == nil || len(data.Quarterly) < 2 {
		return consistencyBase
	}

	score := consistencyBase
	for i := 0; i+1 < len(data.Quarterly); i++ {
		curr, prev := data.Quarterly[i].PrimaryIncome, data.Quarterly[i+1].PrimaryIncome
		if prev == 0 {
			continue
		}
		swing := abs((curr-prev)/prev) * 100
		switch {
		case swing > swingPenaltyAbove:
			score -= swingPenalty
		case swing < swingRewardBelow:
			score += swingReward
		}
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// floatSeries reads a []float64 out of the sector-specific bag.
func floatSeries(data *models.NormalizedFinancialData, key string) []float64 {
	if data.SectorSpecific == nil {
		return nil
	}
	if s, ok := data.SectorSpecific[key].([]float64); ok {
		return s
	}
	return nil
}
