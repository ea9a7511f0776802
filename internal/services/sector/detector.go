package sector

import (
	"errors"
	"strings"

	"FinGrade/internal/domain/models"
)

// ErrInsufficientData means the payload had neither quarterly nor annual
// data. This is a hard failure, not a low-confidence guess.
var ErrInsufficientData = errors.New("insufficient_data: no quarterly or annual data")

// Detection weights and thresholds. These numbers are the behavioral
// contract of the classifier; change them only together with the tests
// that pin them.
const (
	// Decision score weights.
	weightDeposits        = 2
	weightFinancingProfit = 2
	weightBankStructure   = 2
	weightKeywords        = 1
	decisionThreshold     = 3

	// Confidence model.
	confidenceBase            = 0.5
	confidenceStatementSignal = 0.2 // deposits / financing profit (or sales / operating profit)
	confidenceStructureSignal = 0.1
	confidenceKeywordSignal   = 0.1
	conflictPenalty           = 0.7
	missingBalanceSheetFactor = 0.75
	unknownConfidence         = 0.3

	// Field analysis thresholds.
	bankDebtToLiabilities    = 0.8
	bankRevenueToAssetsLow   = 0.05
	bankRevenueToAssetsHigh  = 0.15
	bankCurrentAssetRatio    = 0.6
	operatingAssetTurnover   = 0.5

	// Balance sheet structure thresholds.
	structureDebtToLiabilities = 0.7
	structureAdvancesRatio     = 0.6
	structureCurrentAssetMax   = 0.7
	structureDebtToAssetsMax   = 0.5

	// Keyword scoring: score = min(1, matches/threshold).
	keywordMatchThreshold = 2
)

var (
	bankingKeywords = []string{
		"bank", "banking", "finance", "financial", "nbfc",
		"insurance", "lending", "credit", "capital",
	}
	fmcgKeywords = []string{
		"fmcg", "consumer", "foods", "beverages", "personal care", "household",
	}
	manufacturingKeywords = []string{
		"manufacturing", "industries", "steel", "cement", "auto",
		"pharma", "chemicals", "engineering", "textiles", "motors",
	}
	// Insurance-specific statement fields count as a banking-adjacent signal.
	insuranceFieldNames = []string{"premium_income", "premium", "claims_paid"}
)

// Detector classifies a raw company payload into finance/non-finance.
// Three independent analyses (statement fields, balance sheet structure,
// keywords) are combined by weighted scoring because the provider's own
// sector text is unreliable.
type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

// signals is everything the decision step looks at.
type signals struct {
	hasDeposits        bool
	hasFinancingProfit bool
	hasSales           bool
	hasOperatingProfit bool
	hasBankStructure   bool
	hasManufStructure  bool
	hasBalanceSheet    bool
	bankingKeywords    float64
	nonFinanceKeywords float64
	indicators         []string
}

// Detect classifies the payload. A payload with neither quarterly nor
// annual data fails with ErrInsufficientData and zero confidence.
func (d *Detector) Detect(payload *models.RawCompanyPayload) (models.SectorClassification, error) {
	if payload == nil || (len(payload.QuarterlyData) == 0 && len(payload.AnnualData) == 0) {
		return models.SectorClassification{
			Sector:     models.SectorUnknown,
			Confidence: 0,
			Warnings:   []string{"insufficient_data"},
		}, ErrInsufficientData
	}

	sig := signals{hasBalanceSheet: len(payload.BalanceSheet) > 0}
	d.analyzeFields(payload, &sig)
	d.analyzeStructure(payload, &sig)
	d.analyzeKeywords(payload, &sig)

	return d.decide(&sig), nil
}

// analyzeFields infers sector likeness from statement field names and the
// shape of the latest period's numbers.
func (d *Detector) analyzeFields(p *models.RawCompanyPayload, sig *signals) {
	periods := append(append(models.RecordSeq{}, p.QuarterlyData...), p.AnnualData...)
	for _, rec := range periods {
		if rec.Has("financing_profit") {
			sig.hasFinancingProfit = true
		}
		if rec.Has("sales") {
			sig.hasSales = true
		}
		if rec.Has("operating_profit") {
			sig.hasOperatingProfit = true
		}
		if rec.Has(insuranceFieldNames...) {
			sig.bankingKeywords++
			sig.indicators = append(sig.indicators, "insurance_fields_present")
		}
	}
	for _, rec := range p.BalanceSheet {
		if rec.Has("deposits") {
			sig.hasDeposits = true
		}
	}

	if sig.hasDeposits {
		sig.indicators = append(sig.indicators, "deposits_present")
	}
	if sig.hasFinancingProfit {
		sig.indicators = append(sig.indicators, "financing_profit_present")
	}
	if sig.hasSales {
		sig.indicators = append(sig.indicators, "sales_present")
	}

	bs := latest(p.BalanceSheet)
	period := latest(p.QuarterlyData)
	if period == nil {
		period = latest(p.AnnualData)
	}
	if bs == nil || period == nil {
		return
	}

	assets := totalAssets(bs)
	liabilities := totalLiabilities(bs)
	debt := bs.NumberOr(0, "borrowings") + bs.NumberOr(0, "deposits")
	current := bs.NumberOr(0, "current_assets", "other_assets")
	revenue, _ := period.Number("revenue", "sales")

	if liabilities > 0 && debt/liabilities > bankDebtToLiabilities {
		sig.indicators = append(sig.indicators, "high_debt_to_liabilities")
	}
	if assets > 0 {
		turn := revenue / assets
		if turn >= bankRevenueToAssetsLow && turn <= bankRevenueToAssetsHigh {
			sig.indicators = append(sig.indicators, "banking_revenue_to_assets")
		}
		if turn > operatingAssetTurnover {
			sig.indicators = append(sig.indicators, "operating_asset_turnover")
		}
		if current/assets > bankCurrentAssetRatio {
			sig.indicators = append(sig.indicators, "loan_book_as_current_assets")
		}
	}
}

// analyzeStructure flags banking or manufacturing balance sheet shapes.
func (d *Detector) analyzeStructure(p *models.RawCompanyPayload, sig *signals) {
	bs := latest(p.BalanceSheet)
	if bs == nil {
		return
	}

	assets := totalAssets(bs)
	liabilities := totalLiabilities(bs)
	debt := bs.NumberOr(0, "borrowings") + bs.NumberOr(0, "deposits")
	advances := bs.NumberOr(0, "other_assets")
	current := bs.NumberOr(0, "current_assets")

	if liabilities > 0 && debt/liabilities > structureDebtToLiabilities {
		sig.hasBankStructure = true
	}
	if assets > 0 && advances/assets > structureAdvancesRatio {
		sig.hasBankStructure = true
	}
	if sig.hasBankStructure {
		sig.indicators = append(sig.indicators, "banking_balance_sheet_structure")
	}

	hasWorkingCapital := bs.Has("inventory") && bs.Has("debtors")
	if assets > 0 && current/assets < structureCurrentAssetMax &&
		debt/assets < structureDebtToAssetsMax && hasWorkingCapital {
		sig.hasManufStructure = true
		sig.indicators = append(sig.indicators, "manufacturing_balance_sheet_structure")
	}
}

// analyzeKeywords scans company name and sector text against the keyword
// sets. score = min(1, matches / threshold).
func (d *Detector) analyzeKeywords(p *models.RawCompanyPayload, sig *signals) {
	text := strings.ToLower(p.CompanyInfo.Name + " " + p.CompanyInfo.Sector)

	count := func(words []string) float64 {
		n := 0.0
		for _, w := range words {
			if strings.Contains(text, w) {
				n++
			}
		}
		return n
	}

	sig.bankingKeywords += count(bankingKeywords)
	sig.nonFinanceKeywords = count(fmcgKeywords) + count(manufacturingKeywords)

	if sig.bankingKeywords > 0 {
		sig.indicators = append(sig.indicators, "banking_keywords")
	}
	if sig.nonFinanceKeywords > 0 {
		sig.indicators = append(sig.indicators, "non_finance_keywords")
	}
}

// keywordScore caps a raw match count into [0,1].
func keywordScore(matches float64) float64 {
	s := matches / keywordMatchThreshold
	if s > 1 {
		return 1
	}
	return s
}

func (d *Detector) decide(sig *signals) models.SectorClassification {
	b2i := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	financeScore := weightDeposits*b2i(sig.hasDeposits) +
		weightFinancingProfit*b2i(sig.hasFinancingProfit) +
		weightBankStructure*b2i(sig.hasBankStructure) +
		weightKeywords*b2i(sig.bankingKeywords > 0)
	nonFinanceScore := weightDeposits*b2i(sig.hasSales) +
		weightFinancingProfit*b2i(sig.hasOperatingProfit) +
		weightBankStructure*b2i(sig.hasManufStructure) +
		weightKeywords*b2i(sig.nonFinanceKeywords > 0)

	out := models.SectorClassification{Indicators: sig.indicators}

	switch {
	case financeScore > nonFinanceScore && financeScore >= decisionThreshold:
		out.Sector = models.SectorFinance
		if sig.hasDeposits || keywordScore(sig.bankingKeywords) > 0 {
			out.SubSector = models.SubSectorBanking
		} else {
			out.SubSector = models.SubSectorNBFC
		}
	case nonFinanceScore > financeScore && nonFinanceScore >= decisionThreshold:
		out.Sector = models.SectorNonFinance
		out.SubSector = models.SubSectorManufacturing
		if sig.nonFinanceKeywords > 0 && keywordScore(sig.nonFinanceKeywords) >= 0.5 {
			out.SubSector = models.SubSectorFMCG
		}
	case sig.hasFinancingProfit && !sig.hasDeposits:
		// Financing profit without a deposit base reads as a non-bank lender.
		out.Sector = models.SectorFinance
		out.SubSector = models.SubSectorNBFC
	case financeScore > 0:
		out.Sector = models.SectorFinance
		out.SubSector = models.SubSectorNBFC
	default:
		out.Sector = models.SectorUnknown
		out.Confidence = unknownConfidence
		return out
	}

	out.Confidence = d.confidence(sig, &out)
	return out
}

// confidence starts at the base and is incremented per corroborating
// signal, then discounted for conflicting signals and missing balance
// sheet data.
func (d *Detector) confidence(sig *signals, out *models.SectorClassification) float64 {
	c := confidenceBase
	if out.Sector == models.SectorFinance {
		if sig.hasDeposits {
			c += confidenceStatementSignal
		}
		if sig.hasFinancingProfit {
			c += confidenceStatementSignal
		}
		if sig.hasBankStructure {
			c += confidenceStructureSignal
		}
		if sig.bankingKeywords > 0 {
			c += confidenceKeywordSignal
		}
	} else {
		if sig.hasSales {
			c += confidenceStatementSignal
		}
		if sig.hasOperatingProfit {
			c += confidenceStatementSignal
		}
		if sig.hasManufStructure {
			c += confidenceStructureSignal
		}
		if sig.nonFinanceKeywords > 0 {
			c += confidenceKeywordSignal
		}
	}

	if sig.hasSales && sig.hasDeposits {
		c *= conflictPenalty
		out.Warnings = append(out.Warnings, "conflicting_sector_signals")
	}
	if !sig.hasBalanceSheet {
		c *= missingBalanceSheetFactor
		out.Warnings = append(out.Warnings, "missing_balance_sheet")
	}

	if c > 1 {
		c = 1
	}
	return c
}

func latest(seq models.RecordSeq) models.RawRecord {
	if len(seq) == 0 {
		return nil
	}
	return seq[0]
}

func totalAssets(bs models.RawRecord) float64 {
	if v, ok := bs.Number("total_assets"); ok && v > 0 {
		return v
	}
	return bs.NumberOr(0, "fixed_assets") + bs.NumberOr(0, "cwip", "work_in_progress") +
		bs.NumberOr(0, "investments") + bs.NumberOr(0, "other_assets") +
		bs.NumberOr(0, "current_assets")
}

func totalLiabilities(bs models.RawRecord) float64 {
	return bs.NumberOr(0, "equity_capital") + bs.NumberOr(0, "reserves") +
		bs.NumberOr(0, "deposits") + bs.NumberOr(0, "borrowings") +
		bs.NumberOr(0, "other_liabilities") + bs.NumberOr(0, "current_liabilities")
}
