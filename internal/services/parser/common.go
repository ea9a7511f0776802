package parser

import (
	"errors"
	"fmt"
	"math"

	"FinGrade/internal/domain/models"
)

// Structural parse errors are fatal for the company's pipeline run and are
// never retried.
var (
	ErrMissingQuarterlyData = errors.New("missing_quarterly_data: quarterly_data is absent or not a sequence")
	ErrMissingBalanceSheet  = errors.New("missing_balance_sheet: balance_sheet is absent or not a sequence")
)

// Completeness targets and weights. Coverage of each section is capped at
// 100 before weighting.
const (
	targetQuarters = 13
	targetYears    = 12

	weightQuarterly    = 0.40
	weightAnnual       = 0.30
	weightBalanceSheet = 0.20
	weightRatios       = 0.05
	weightCashFlow     = 0.05

	// Incomplete quarterly coverage applies an extra multiplicative
	// penalty proportional to the shortfall.
	quarterShortfallPenalty = 0.3
)

// Quality penalties per missing data section, subtracted from 100.
const (
	penaltyMissingAnnual   = 30
	penaltyMissingCashFlow = 20
	penaltyMissingRatios   = 10
)

// checkPrimaryField fails when a period's primary numeric field is present
// but not a finite number.
func checkPrimaryField(seq models.RecordSeq, section string, keys ...string) error {
	for i, rec := range seq {
		v, ok := rec.Number(keys...)
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid_primary_field: %s[%d].%s is not finite", section, i, keys[0])
		}
	}
	return nil
}

// totalAssetsFallback reproduces the provider convention for balance
// sheets that do not carry total_assets directly: fixed assets + work in
// progress + investments + other assets, plus current assets when they are
// reported separately. Several downstream ratios depend on this formula.
func totalAssetsFallback(bs models.RawRecord) float64 {
	if v, ok := bs.Number("total_assets"); ok && v != 0 {
		return v
	}
	total := bs.NumberOr(0, "fixed_assets") +
		bs.NumberOr(0, "cwip", "work_in_progress") +
		bs.NumberOr(0, "investments") +
		bs.NumberOr(0, "other_assets")
	if bs.Has("current_assets") {
		total += bs.NumberOr(0, "current_assets")
	}
	return total
}

// coverage scores one section's period count against its target, 0-100.
func coverage(count, target int) float64 {
	if target <= 0 {
		return 0
	}
	c := float64(count) / float64(target) * 100
	if c > 100 {
		return 100
	}
	return c
}

// completenessScore blends section coverage using the shared weights and,
// when withQuarterPenalty is set, discounts for quarterly shortfall.
func completenessScore(quarters, years, balance, ratios, cashFlow int, withQuarterPenalty bool) float64 {
	score := weightQuarterly*coverage(quarters, targetQuarters) +
		weightAnnual*coverage(years, targetYears) +
		weightBalanceSheet*coverage(balance, targetYears) +
		weightRatios*coverage(ratios, targetYears) +
		weightCashFlow*coverage(cashFlow, targetYears)

	if withQuarterPenalty && quarters < targetQuarters {
		shortfall := 1 - float64(quarters)/float64(targetQuarters)
		score *= 1 - quarterShortfallPenalty*shortfall
	}
	if score < 0 {
		return 0
	}
	return score
}

// qualityScore starts at 100 and is penalized per missing section.
func qualityScore(hasAnnual, hasCashFlow, hasRatios bool) float64 {
	score := 100.0
	if !hasAnnual {
		score -= penaltyMissingAnnual
	}
	if !hasCashFlow {
		score -= penaltyMissingCashFlow
	}
	if !hasRatios {
		score -= penaltyMissingRatios
	}
	if score < 0 {
		return 0
	}
	return score
}

func parseCashFlow(seq models.RecordSeq) []models.CashFlowRecord {
	out := make([]models.CashFlowRecord, 0, len(seq))
	for _, rec := range seq {
		cf := models.CashFlowRecord{
			Period:    rec.String("period"),
			Operating: rec.NumberOr(0, "operating", "cash_from_operating"),
			Investing: rec.NumberOr(0, "investing", "cash_from_investing"),
			Financing: rec.NumberOr(0, "financing", "cash_from_financing"),
		}
		cf.Net = rec.NumberOr(cf.Operating+cf.Investing+cf.Financing, "net", "net_cash_flow")
		out = append(out, cf)
	}
	return out
}

func ratioSeries(ratios map[string][]float64, keys ...string) []float64 {
	for _, k := range keys {
		if s, ok := ratios[k]; ok && len(s) > 0 {
			return s
		}
	}
	return nil
}
