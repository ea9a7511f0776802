package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"FinGrade/internal/domain/models"
	domrepo "FinGrade/internal/domain/repository"
	applogger "FinGrade/pkg/logger"
)

// ClickHouseStorage implements Storage for ClickHouse. Tables use
// ReplacingMergeTree so repeated inserts for the same key collapse to the
// latest row; "upsert" is therefore a plain insert.
type ClickHouseStorage struct {
	db *sql.DB
	l  *applogger.Logger
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB) domrepo.Storage {
	return &ClickHouseStorage{db: db}
}

// SetLogger injects a structured logger.
func (s *ClickHouseStorage) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseStorage) SaveCompany(ctx context.Context, r *models.CompanyResult) error {
	if r == nil {
		return fmt.Errorf("result is nil")
	}
	row, err := resultRow(r)
	if err != nil {
		return err
	}

	q := `INSERT INTO fingrade.company_results
        (analyzed_at, company_id, company_name, sector, sub_sector, success, error,
         latest_period, quality_score, completeness_score, ratios_json, validation_json,
         cache_hit, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, row...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse save_company error",
				applogger.String("company_id", r.CompanyID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}

func (s *ClickHouseStorage) SaveBatch(ctx context.Context, results []*models.CompanyResult) error {
	if len(results) == 0 {
		return nil
	}
	// Multi-row VALUES to reduce round-trips, chunked.
	const chunkSize = 500
	for start := 0; start < len(results); start += chunkSize {
		end := start + chunkSize
		if end > len(results) {
			end = len(results)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*14)
		for _, r := range results[start:end] {
			if r == nil || r.CompanyID == "" {
				continue
			}
			row, err := resultRow(r)
			if err != nil {
				return err
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, row...)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(`INSERT INTO fingrade.company_results
            (analyzed_at, company_id, company_name, sector, sub_sector, success, error,
             latest_period, quality_score, completeness_score, ratios_json, validation_json,
             cache_hit, duration_ms)
            VALUES %s`, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseStorage) SaveAnnualMetrics(ctx context.Context, companyID string, annual []models.NormalizedPeriodRecord) error {
	if len(annual) == 0 {
		return nil
	}
	values := make([]string, 0, len(annual))
	args := make([]interface{}, 0, len(annual)*8)
	for _, p := range annual {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			companyID,
			p.Period,
			p.PrimaryIncome,
			p.CoreProfit,
			p.ProfitBeforeTax,
			p.NetProfit,
			p.EPS,
			time.Now().UTC(),
		)
	}
	q := fmt.Sprintf(`INSERT INTO fingrade.annual_metrics
        (company_id, period, primary_income, core_profit, profit_before_tax, net_profit, eps, updated_at)
        VALUES %s`, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save annual metrics: %w", err)
	}
	return nil
}

func (s *ClickHouseStorage) UpsertRatioSnapshot(ctx context.Context, companyID, period, periodType string, ratios models.RatioSet) error {
	b, err := json.Marshal(ratios)
	if err != nil {
		return fmt.Errorf("marshal ratios: %w", err)
	}
	q := `INSERT INTO fingrade.ratio_snapshots
        (company_id, period, period_type, ratios_json, updated_at)
        VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, companyID, period, periodType, string(b), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert ratio snapshot: %w", err)
	}
	return nil
}

func (s *ClickHouseStorage) GetCompanyOverview(ctx context.Context, companyID string) (*models.CompanyOverview, error) {
	start := time.Now()
	const q = `
        SELECT analyzed_at, company_id, company_name, sector, sub_sector,
               latest_period, quality_score, ratios_json
        FROM fingrade.company_results
        WHERE company_id = ? AND success = 1
        ORDER BY analyzed_at DESC
        LIMIT 1
    `
	var (
		o          models.CompanyOverview
		sector     string
		ratiosJSON string
	)
	err := s.db.QueryRowContext(ctx, q, companyID).Scan(
		&o.AnalyzedAt, &o.CompanyID, &o.Name, &sector, &o.SubSector,
		&o.LatestPeriod, &o.QualityScore, &ratiosJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_overview query error",
				applogger.String("company_id", companyID),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get overview: %w", err)
	}

	o.Sector = models.Sector(sector)
	var set models.RatioSet
	if err := json.Unmarshal([]byte(ratiosJSON), &set); err == nil {
		o.Universal = set.Universal
	}
	if s.l != nil {
		s.l.Info("clickhouse get_overview ok",
			applogger.String("company_id", companyID),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return &o, nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

func resultRow(r *models.CompanyResult) ([]interface{}, error) {
	ratiosJSON, err := json.Marshal(r.Ratios)
	if err != nil {
		return nil, fmt.Errorf("marshal ratios: %w", err)
	}
	validationJSON, err := json.Marshal(r.Validation)
	if err != nil {
		return nil, fmt.Errorf("marshal validation: %w", err)
	}
	latestPeriod := ""
	completeness := 0.0
	if r.Normalized != nil {
		if q, ok := r.Normalized.LatestQuarter(); ok {
			latestPeriod = q.Period
		}
		completeness = r.Normalized.CompletenessScore
	}
	return []interface{}{
		time.Now().UTC(),
		r.CompanyID,
		r.CompanyName,
		string(r.Sector),
		r.SubSector,
		boolToUInt8(r.Success),
		r.Error,
		latestPeriod,
		r.Validation.QualityScore,
		completeness,
		string(ratiosJSON),
		string(validationJSON),
		boolToUInt8(r.CacheHit),
		r.Duration.Milliseconds(),
	}, nil
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
