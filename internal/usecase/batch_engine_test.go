package usecase

import (
	"context"
	"reflect"
	"testing"
	"time"

	"FinGrade/internal/domain/models"
	"FinGrade/internal/services/ratios"
)

type fakeMetrics struct{}

func (fakeMetrics) RecordCompanyProcessed(string, bool)  {}
func (fakeMetrics) RecordCacheLookup(bool)               {}
func (fakeMetrics) RecordQualityScore(string, float64)   {}
func (fakeMetrics) RecordError(string)                   {}
func (fakeMetrics) RecordLatency(string, float64)        {}

type fakeCache struct {
	m map[string]*models.CompanyResult
}

func newFakeCache() *fakeCache { return &fakeCache{m: make(map[string]*models.CompanyResult)} }

func (c *fakeCache) Get(key string) (*models.CompanyResult, bool) {
	r, ok := c.m[key]
	return r, ok
}
func (c *fakeCache) Set(key string, r *models.CompanyResult, _ time.Duration) { c.m[key] = r }
func (c *fakeCache) Len() int                                                 { return len(c.m) }
func (c *fakeCache) Purge()                                                   { c.m = make(map[string]*models.CompanyResult) }

func goodCompany(id string) models.BatchCompany {
	return models.BatchCompany{
		CompanyID: id,
		Sector:    models.SectorNonFinance,
		Payload: models.RawCompanyPayload{
			CompanyID: id,
			QuarterlyData: models.RecordSeq{
				{"period": "Mar 2024", "sales": 1000.0, "expenses": 800.0, "operating_profit": 200.0,
					"profit_before_tax": 160.0, "net_profit": 120.0, "eps": 2.4},
				{"period": "Dec 2023", "sales": 980.0, "expenses": 790.0, "operating_profit": 190.0,
					"profit_before_tax": 150.0, "net_profit": 110.0, "eps": 2.2},
			},
			BalanceSheet: models.RecordSeq{
				{"period": "Mar 2024", "equity_capital": 100.0, "reserves": 300.0, "borrowings": 200.0,
					"current_liabilities": 100.0, "fixed_assets": 500.0, "investments": 100.0, "other_assets": 100.0},
			},
		},
	}
}

func badCompany(id string) models.BatchCompany {
	return models.BatchCompany{
		CompanyID: id,
		Sector:    models.SectorNonFinance,
		Payload: models.RawCompanyPayload{
			CompanyID: id,
			QuarterlyData: models.RecordSeq{
				{"period": "Mar 2024", "sales": 1000.0},
			},
			// no balance sheet: structural parse failure
		},
	}
}

func newTestEngine(cache *fakeCache) *BatchEngine {
	pipeline := NewPipeline(ratios.DefaultAssumptions(), nil)
	return NewBatchEngine(pipeline, cache, fakeMetrics{}, nil, nil, "none", time.Hour, nil)
}

func TestPipelineAnalyzeSuccess(t *testing.T) {
	pipeline := NewPipeline(ratios.DefaultAssumptions(), nil)
	got := pipeline.Analyze(context.Background(), goodCompany("acme"))
	if !got.Success {
		t.Fatalf("expected success, got error %q", got.Error)
	}
	if got.Sector != models.SectorNonFinance {
		t.Fatalf("sector = %s", got.Sector)
	}
	if got.Normalized == nil || got.Ratios.NonFinance == nil {
		t.Fatalf("expected normalized data and sector ratios")
	}
	if got.Ratios.Universal.NetProfitMargin != 12 {
		t.Fatalf("NPM = %v, want 12", got.Ratios.Universal.NetProfitMargin)
	}
}

func TestPipelineAnalyzeFailure(t *testing.T) {
	pipeline := NewPipeline(ratios.DefaultAssumptions(), nil)
	got := pipeline.Analyze(context.Background(), badCompany("broken"))
	if got.Success {
		t.Fatalf("expected failure")
	}
	if got.Error == "" {
		t.Fatalf("expected error message")
	}
	if got.Ratios.NonFinance != nil || got.Normalized != nil {
		t.Fatalf("failed company must carry zeroed output")
	}
}

func TestPipelineAnalyzeIdempotent(t *testing.T) {
	pipeline := NewPipeline(ratios.DefaultAssumptions(), nil)
	first := pipeline.Analyze(context.Background(), goodCompany("acme"))
	second := pipeline.Analyze(context.Background(), goodCompany("acme"))

	if !first.Success || !second.Success {
		t.Fatalf("success = %v, %v", first.Success, second.Success)
	}
	if !reflect.DeepEqual(first.Ratios, second.Ratios) {
		t.Fatalf("ratio sets differ between runs:\n%+v\n%+v", first.Ratios, second.Ratios)
	}
	if !reflect.DeepEqual(first.Validation.Errors, second.Validation.Errors) {
		t.Fatalf("validation findings differ between runs:\n%+v\n%+v",
			first.Validation.Errors, second.Validation.Errors)
	}
	if first.Validation.QualityScore != second.Validation.QualityScore {
		t.Fatalf("quality score differs: %v vs %v",
			first.Validation.QualityScore, second.Validation.QualityScore)
	}
}

func TestBatchContinuePolicy(t *testing.T) {
	engine := newTestEngine(nil)
	got := engine.Execute(context.Background(), []models.BatchCompany{
		goodCompany("a"), badCompany("b"), goodCompany("c"),
	}, models.BatchOptions{ErrorHandling: models.ErrorHandlingContinue})

	if !got.Success {
		t.Fatalf("continue policy must not fail the batch")
	}
	if len(got.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(got.Results))
	}
	if got.Results[1].Success || got.Results[1].Error == "" {
		t.Fatalf("failed company must keep its slot with the error attached")
	}
	if len(got.Errors) != 1 {
		t.Fatalf("errors = %v", got.Errors)
	}
	if got.Metrics.ErrorRate != 1.0/3 || got.Metrics.SuccessRate != 1-1.0/3 {
		t.Fatalf("error rate = %v, success rate = %v", got.Metrics.ErrorRate, got.Metrics.SuccessRate)
	}
	if got.Metrics.NonFinanceCount != 3 {
		t.Fatalf("non-finance count = %d", got.Metrics.NonFinanceCount)
	}
}

func TestBatchStrictPolicyAborts(t *testing.T) {
	engine := newTestEngine(nil)
	got := engine.Execute(context.Background(), []models.BatchCompany{
		goodCompany("a"), badCompany("b"), goodCompany("c"),
	}, models.BatchOptions{ErrorHandling: models.ErrorHandlingStrict})

	if got.Success {
		t.Fatalf("strict policy must fail the batch")
	}
	if len(got.Results) != 0 {
		t.Fatalf("strict failure must return no results, got %d", len(got.Results))
	}
	if got.Metrics != (models.BatchMetrics{}) {
		t.Fatalf("strict failure must zero the metrics: %+v", got.Metrics)
	}
	if len(got.Errors) == 0 {
		t.Fatalf("expected at least one error")
	}
}

func TestBatchCacheHit(t *testing.T) {
	cache := newFakeCache()
	engine := newTestEngine(cache)
	opts := models.BatchOptions{Cache: true, ErrorHandling: models.ErrorHandlingContinue}

	first := engine.Execute(context.Background(), []models.BatchCompany{goodCompany("a")}, opts)
	if first.Results[0].CacheHit {
		t.Fatalf("first run must miss")
	}
	if cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", cache.Len())
	}

	second := engine.Execute(context.Background(), []models.BatchCompany{goodCompany("a")}, opts)
	if !second.Results[0].CacheHit {
		t.Fatalf("second run must hit the cache")
	}
	if second.Metrics.CacheHitRate != 1 {
		t.Fatalf("cache hit rate = %v, want 1", second.Metrics.CacheHitRate)
	}
}

func TestBatchCacheInvalidatedByNewQuarter(t *testing.T) {
	a := goodCompany("a")
	b := goodCompany("a")
	b.Payload.QuarterlyData[0]["sales"] = 2000.0
	if cacheKey(&a) == cacheKey(&b) {
		t.Fatalf("new quarterly figures must change the cache key")
	}
	c := goodCompany("a")
	if cacheKey(&a) != cacheKey(&c) {
		t.Fatalf("identical payloads must share a cache key")
	}
}

func TestBatchParallelExecution(t *testing.T) {
	engine := newTestEngine(nil)
	companies := []models.BatchCompany{
		goodCompany("a"), goodCompany("b"), goodCompany("c"), goodCompany("d"),
	}
	got := engine.Execute(context.Background(), companies, models.BatchOptions{
		Parallel:      true,
		WorkerCount:   2,
		ErrorHandling: models.ErrorHandlingContinue,
	})
	if !got.Success || len(got.Results) != 4 {
		t.Fatalf("success = %v, results = %d", got.Success, len(got.Results))
	}
	for i, r := range got.Results {
		if r.CompanyID != companies[i].CompanyID {
			t.Fatalf("result order must follow input order: %d = %s", i, r.CompanyID)
		}
		if !r.Success {
			t.Fatalf("company %s failed: %s", r.CompanyID, r.Error)
		}
	}
}

func TestOptimalWorkerCount(t *testing.T) {
	cases := []struct{ companies, want int }{
		{1, 1}, {50, 1}, {51, 2}, {150, 3}, {200, 4}, {500, 4},
	}
	for _, tc := range cases {
		if got := optimalWorkerCount(tc.companies); got != tc.want {
			t.Fatalf("optimalWorkerCount(%d) = %d, want %d", tc.companies, got, tc.want)
		}
	}
}

func TestBatchEmptyInput(t *testing.T) {
	engine := newTestEngine(nil)
	got := engine.Execute(context.Background(), nil, models.BatchOptions{})
	if !got.Success || len(got.Results) != 0 {
		t.Fatalf("empty batch must succeed with no results")
	}
}
