package models

import "time"

// ErrorHandling selects the batch failure policy.
const (
	ErrorHandlingStrict   = "strict"
	ErrorHandlingContinue = "continue"
)

// BatchCompany is one sector-tagged company entry in a batch request.
type BatchCompany struct {
	CompanyID string            `json:"company_id" validate:"required"`
	Sector    Sector            `json:"sector" validate:"required,oneof=finance non_finance"`
	Payload   RawCompanyPayload `json:"payload"`
}

// BatchOptions control batch execution.
type BatchOptions struct {
	Parallel      bool   `json:"parallel" default:"false"`
	Cache         bool   `json:"cache" default:"true"`
	ErrorHandling string `json:"error_handling" default:"continue" validate:"omitempty,oneof=strict continue"`
	ChunkSize     int    `json:"chunk_size" default:"50"`
	WorkerCount   int    `json:"worker_count"`
	MemoryLimitMB int    `json:"memory_limit_mb"`
}

// CompanyResult is the full per-company pipeline output. Under the
// continue policy a failed company still gets an entry, with zeroed
// ratios and the error message attached.
type CompanyResult struct {
	CompanyID   string                   `json:"company_id"`
	CompanyName string                   `json:"company_name,omitempty"`
	Sector      Sector                   `json:"sector"`
	SubSector   string                   `json:"sub_sector,omitempty"`
	Success     bool                     `json:"success"`
	Error       string                   `json:"error,omitempty"`
	Normalized  *NormalizedFinancialData `json:"normalized,omitempty"`
	Ratios      RatioSet                 `json:"ratios"`
	Validation  ValidationResult         `json:"validation"`
	CacheHit    bool                     `json:"cache_hit"`
	Duration    time.Duration            `json:"duration_ns"`
}

// BatchMetrics is the performance accounting for one batch run.
type BatchMetrics struct {
	TotalTime       time.Duration `json:"total_time_ns"`
	AverageTime     time.Duration `json:"average_time_ns"`
	Throughput      float64       `json:"throughput_per_second"`
	CacheHitRate    float64       `json:"cache_hit_rate"`
	ErrorRate       float64       `json:"error_rate"`
	SuccessRate     float64       `json:"success_rate"`
	FinanceCount    int           `json:"finance_count"`
	NonFinanceCount int           `json:"non_finance_count"`
	UnknownCount    int           `json:"unknown_count"`
}

// BatchResult is the outcome of a batch run. Under the strict policy a
// single failing company aborts the whole batch: Success is false, Results
// is empty and Metrics is zeroed.
type BatchResult struct {
	Success bool            `json:"success"`
	Results []CompanyResult `json:"results"`
	Metrics BatchMetrics    `json:"metrics"`
	Errors  []string        `json:"errors,omitempty"`
}
