package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FinGrade/internal/domain/models"
	"FinGrade/internal/services/normalize"
	"FinGrade/internal/services/parser"
	"FinGrade/internal/services/ratios"
	"FinGrade/internal/services/sector"
	"FinGrade/internal/services/validate"
	"FinGrade/pkg/logger"
)

// ErrUnknownSector means neither the caller nor the detector could commit
// to a sector, so no parser can claim the payload.
var ErrUnknownSector = errors.New("sector could not be determined")

// Pipeline runs the full per-company analysis chain: sector detection,
// sector parsing, normalization, ratio calculation and validation.
type Pipeline struct {
	detector    *sector.Detector
	nonFinance  *parser.NonFinanceParser
	finance     *parser.FinanceParser
	normalizer  *normalize.Normalizer
	validator   *validate.Validator
	assumptions ratios.Assumptions
	log         *logger.Logger
}

func NewPipeline(assumptions ratios.Assumptions, log *logger.Logger) *Pipeline {
	return &Pipeline{
		detector:    sector.NewDetector(),
		nonFinance:  parser.NewNonFinanceParser(),
		finance:     parser.NewFinanceParser(),
		normalizer:  normalize.New(),
		validator:   validate.New(),
		assumptions: assumptions,
		log:         log,
	}
}

// Detect classifies a payload without running the rest of the chain.
func (p *Pipeline) Detect(payload *models.RawCompanyPayload) (models.SectorClassification, error) {
	return p.detector.Detect(payload)
}

// Analyze runs the chain for one company. It always returns a populated
// result: on failure Success is false, Error carries the cause, and the
// ratio set is zeroed.
func (p *Pipeline) Analyze(ctx context.Context, company models.BatchCompany) *models.CompanyResult {
	start := time.Now()
	result := &models.CompanyResult{
		CompanyID:   company.CompanyID,
		CompanyName: company.Payload.CompanyInfo.Name,
		Sector:      company.Sector,
	}

	if err := ctx.Err(); err != nil {
		return p.fail(result, start, err)
	}

	classification, err := p.resolveSector(company)
	if err != nil {
		return p.fail(result, start, err)
	}
	result.Sector = classification.Sector
	result.SubSector = classification.SubSector

	switch classification.Sector {
	case models.SectorNonFinance:
		err = p.analyzeNonFinance(&company.Payload, classification, result)
	case models.SectorFinance:
		err = p.analyzeFinance(&company.Payload, classification, result)
	default:
		err = ErrUnknownSector
	}
	if err != nil {
		return p.fail(result, start, err)
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// resolveSector prefers the caller's declared sector; the detector only
// decides when the caller declined to. Detection still runs for a declared
// sector so the sub-sector label is available downstream.
func (p *Pipeline) resolveSector(company models.BatchCompany) (models.SectorClassification, error) {
	detected, err := p.detector.Detect(&company.Payload)

	if company.Sector == models.SectorFinance || company.Sector == models.SectorNonFinance {
		c := models.SectorClassification{Sector: company.Sector, SubSector: models.SubSectorGeneral, Confidence: 1}
		if err == nil && detected.Sector == company.Sector {
			c.SubSector = detected.SubSector
			c.Indicators = detected.Indicators
		}
		return c, nil
	}

	if err != nil {
		return models.SectorClassification{}, fmt.Errorf("detect sector: %w", err)
	}
	if detected.Sector == models.SectorUnknown {
		return models.SectorClassification{}, ErrUnknownSector
	}
	return detected, nil
}

func (p *Pipeline) analyzeNonFinance(payload *models.RawCompanyPayload, c models.SectorClassification, result *models.CompanyResult) error {
	parsed, err := p.nonFinance.Parse(payload, c)
	if err != nil {
		return fmt.Errorf("parse non_finance: %w", err)
	}
	normalized, err := p.normalizer.NormalizeNonFinance(parsed, models.SectorNonFinance)
	if err != nil {
		return fmt.Errorf("normalize non_finance: %w", err)
	}

	nf := ratios.CalculateNonFinanceRatios(parsed)
	result.Normalized = normalized
	result.Ratios = models.RatioSet{
		Universal:  ratios.CalculateUniversalRatios(normalized, payload.CompanyInfo, payload.MarketData),
		NonFinance: &nf,
	}
	result.Validation = p.validator.Validate(normalized, models.SectorNonFinance)
	return nil
}

func (p *Pipeline) analyzeFinance(payload *models.RawCompanyPayload, c models.SectorClassification, result *models.CompanyResult) error {
	parsed, err := p.finance.Parse(payload, c)
	if err != nil {
		return fmt.Errorf("parse finance: %w", err)
	}
	normalized, err := p.normalizer.NormalizeFinance(parsed, models.SectorFinance)
	if err != nil {
		return fmt.Errorf("normalize finance: %w", err)
	}

	fin := ratios.CalculateFinanceRatios(parsed, p.assumptions)
	result.Normalized = normalized
	result.Ratios = models.RatioSet{
		Universal: ratios.CalculateUniversalRatios(normalized, payload.CompanyInfo, payload.MarketData),
		Finance:   &fin,
	}
	result.Validation = p.validator.Validate(normalized, models.SectorFinance)
	return nil
}

func (p *Pipeline) fail(result *models.CompanyResult, start time.Time, err error) *models.CompanyResult {
	result.Success = false
	result.Error = err.Error()
	result.Duration = time.Since(start)
	if p.log != nil {
		p.log.Warn("company analysis failed",
			logger.String("company_id", result.CompanyID),
			logger.Error(err))
	}
	return result
}
