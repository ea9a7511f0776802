package repository

import (
	"context"
	"time"

	"FinGrade/internal/domain/models"
)

type Publisher interface {
	Publish(ctx context.Context, r *models.CompanyResult) error
	PublishBatch(ctx context.Context, results []*models.CompanyResult) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	SaveCompany(ctx context.Context, r *models.CompanyResult) error
	SaveBatch(ctx context.Context, results []*models.CompanyResult) error
	SaveAnnualMetrics(ctx context.Context, companyID string, annual []models.NormalizedPeriodRecord) error
	UpsertRatioSnapshot(ctx context.Context, companyID, period, periodType string, ratios models.RatioSet) error
	GetCompanyOverview(ctx context.Context, companyID string) (*models.CompanyOverview, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordCompanyProcessed(sector string, success bool)
	RecordCacheLookup(hit bool)
	RecordQualityScore(sector string, score float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// ResultCache holds completed per-company results keyed by company id plus
// a fingerprint of the latest reporting period.
type ResultCache interface {
	Get(key string) (*models.CompanyResult, bool)
	Set(key string, r *models.CompanyResult, ttl time.Duration)
	Len() int
	Purge()
}
