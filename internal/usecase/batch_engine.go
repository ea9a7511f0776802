package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"FinGrade/internal/domain/models"
	drepo "FinGrade/internal/domain/repository"
	"FinGrade/pkg/logger"
)

// Worker sizing: one worker per full chunk of companies, capped.
const (
	defaultChunkSize = 50
	maxWorkers       = 4
)

// BatchEngine runs the analysis pipeline over many companies with
// caching, chunked parallel execution and performance accounting.
// Completed results are routed to the configured backend.
type BatchEngine struct {
	pipeline *Pipeline
	cache    drepo.ResultCache
	metrics  drepo.Metrics
	pub      drepo.Publisher
	store    drepo.Storage
	backend  string
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewBatchEngine(
	pipeline *Pipeline,
	cache drepo.ResultCache,
	metrics drepo.Metrics,
	pub drepo.Publisher,
	store drepo.Storage,
	backend string,
	cacheTTL time.Duration,
	log *logger.Logger,
) *BatchEngine {
	return &BatchEngine{
		pipeline: pipeline,
		cache:    cache,
		metrics:  metrics,
		pub:      pub,
		store:    store,
		backend:  backend,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Execute runs the batch under the requested options. Under the strict
// policy the first failing company aborts the run: Success is false,
// Results is empty and Metrics is zeroed. Under continue, failed
// companies keep their slot with zeroed ratios and the error attached.
func (e *BatchEngine) Execute(ctx context.Context, companies []models.BatchCompany, opts models.BatchOptions) *models.BatchResult {
	start := time.Now()
	out := &models.BatchResult{Success: true}
	if len(companies) == 0 {
		return out
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	workers := opts.WorkerCount
	if workers <= 0 {
		workers = optimalWorkerCount(len(companies))
	}

	results := make([]*models.CompanyResult, len(companies))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for lo := 0; lo < len(companies); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(companies) {
			hi = len(companies)
		}
		if opts.Parallel && workers > 1 {
			e.runChunkParallel(runCtx, companies, results, lo, hi, workers, opts, cancel)
		} else {
			e.runChunkSequential(runCtx, companies, results, lo, hi, opts, cancel)
		}
		if runCtx.Err() != nil && ctx.Err() == nil {
			// strict abort
			break
		}
	}

	strict := opts.ErrorHandling == models.ErrorHandlingStrict
	for _, r := range results {
		if r == nil {
			continue
		}
		if !r.Success {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", r.CompanyID, r.Error))
			if strict {
				out.Success = false
			}
		}
	}
	if strict && !out.Success {
		out.Results = nil
		out.Metrics = models.BatchMetrics{}
		return out
	}

	for _, r := range results {
		if r != nil {
			out.Results = append(out.Results, *r)
		}
	}
	out.Metrics = e.computeMetrics(out.Results, time.Since(start))
	return out
}

func (e *BatchEngine) runChunkSequential(ctx context.Context, companies []models.BatchCompany, results []*models.CompanyResult, lo, hi int, opts models.BatchOptions, abort context.CancelFunc) {
	for i := lo; i < hi; i++ {
		if ctx.Err() != nil {
			return
		}
		results[i] = e.processOne(ctx, companies[i], opts)
		if !results[i].Success && opts.ErrorHandling == models.ErrorHandlingStrict {
			abort()
			return
		}
	}
}

func (e *BatchEngine) runChunkParallel(ctx context.Context, companies []models.BatchCompany, results []*models.CompanyResult, lo, hi, workers int, opts models.BatchOptions, abort context.CancelFunc) {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = e.processOne(ctx, companies[i], opts)
				if !results[i].Success && opts.ErrorHandling == models.ErrorHandlingStrict {
					abort()
				}
			}
		}()
	}

	for i := lo; i < hi; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (e *BatchEngine) processOne(ctx context.Context, company models.BatchCompany, opts models.BatchOptions) *models.CompanyResult {
	key := cacheKey(&company)

	if opts.Cache && e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			e.metrics.RecordCacheLookup(true)
			hit := *cached
			hit.CacheHit = true
			return &hit
		}
		e.metrics.RecordCacheLookup(false)
	}

	result := e.pipeline.Analyze(ctx, company)
	e.metrics.RecordCompanyProcessed(string(result.Sector), result.Success)
	e.metrics.RecordLatency("analyze", result.Duration.Seconds())

	if result.Success {
		e.metrics.RecordQualityScore(string(result.Sector), result.Validation.QualityScore)
		if opts.Cache && e.cache != nil {
			e.cache.Set(key, result, e.cacheTTL)
		}
		e.persist(ctx, result)
	} else {
		e.metrics.RecordError("analyze")
	}
	return result
}

// persist routes a completed result to the configured backend. Routing
// failures are recorded but do not fail the company.
func (e *BatchEngine) persist(ctx context.Context, r *models.CompanyResult) {
	var err error
	switch e.backend {
	case "kafka":
		if e.pub == nil {
			return
		}
		err = e.pub.Publish(ctx, r)
	case "clickhouse":
		if e.store == nil {
			return
		}
		err = e.store.SaveCompany(ctx, r)
	default:
		return
	}
	if err != nil {
		e.metrics.RecordError("persist")
		if e.log != nil {
			e.log.Error("persist result",
				logger.String("backend", e.backend),
				logger.String("company_id", r.CompanyID),
				logger.Error(err))
		}
	}
}

func (e *BatchEngine) computeMetrics(results []models.CompanyResult, total time.Duration) models.BatchMetrics {
	m := models.BatchMetrics{TotalTime: total}
	if len(results) == 0 {
		return m
	}

	var hits, failures int
	for _, r := range results {
		if r.CacheHit {
			hits++
		}
		if !r.Success {
			failures++
		}
		switch r.Sector {
		case models.SectorFinance:
			m.FinanceCount++
		case models.SectorNonFinance:
			m.NonFinanceCount++
		default:
			m.UnknownCount++
		}
	}

	n := float64(len(results))
	m.AverageTime = total / time.Duration(len(results))
	if secs := total.Seconds(); secs > 0 {
		m.Throughput = n / secs
	}
	m.CacheHitRate = float64(hits) / n
	m.ErrorRate = float64(failures) / n
	m.SuccessRate = 1 - m.ErrorRate
	return m
}

// optimalWorkerCount sizes the pool at one worker per full chunk of
// companies, capped at maxWorkers.
func optimalWorkerCount(companies int) int {
	workers := (companies + defaultChunkSize - 1) / defaultChunkSize
	if workers < 1 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

// cacheKey fingerprints a company by its id plus an FNV hash of the
// latest quarterly record, so a new reporting period invalidates the
// cached result naturally.
func cacheKey(c *models.BatchCompany) string {
	h := fnv.New64a()
	if len(c.Payload.QuarterlyData) > 0 {
		if b, err := json.Marshal(c.Payload.QuarterlyData[0]); err == nil {
			h.Write(b)
		}
	}
	return c.CompanyID + ":" + strconv.FormatUint(h.Sum64(), 16)
}
