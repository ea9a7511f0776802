package api

import (
	"time"

	models "FinGrade/internal/domain/models"
	domrepo "FinGrade/internal/domain/repository"
	"FinGrade/internal/service/metrics"
	"FinGrade/internal/service/ratelimit"
	"FinGrade/internal/usecase"
	xhttp "FinGrade/pkg/http"
	xlogger "FinGrade/pkg/logger"
	"FinGrade/pkg/queue"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler implements Echo-based HTTP handlers following Clean Architecture.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.Pipeline
	engine   *usecase.BatchEngine
	store    domrepo.Storage
	jobs     queue.QueueService
	rl       *ratelimit.Limiter
}

func NewAnalysisHandler(logger *xlogger.Logger, pipeline *usecase.Pipeline, engine *usecase.BatchEngine, store domrepo.Storage, jobs queue.QueueService) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{
		logger:   logger,
		pipeline: pipeline,
		engine:   engine,
		store:    store,
		jobs:     jobs,
		rl:       ratelimit.New(),
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/analyze", h.Analyze)
	g.POST("/detect", h.Detect)
	g.POST("/batch", h.Batch)
	g.POST("/batch/async", h.BatchAsync)
	g.GET("/companies/:id/overview", h.Overview)
	e.GET("/health", h.Health)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues("analyze").Observe(time.Since(start).Seconds()) }()

	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result := h.pipeline.Analyze(c.Request().Context(), models.BatchCompany{
		CompanyID: req.CompanyID,
		Sector:    req.Sector,
		Payload:   req.Payload,
	})
	if !result.Success {
		metrics.AnalysisErrors.WithLabelValues("analyze").Inc()
	}

	if req.Persist && result.Success && h.store != nil {
		h.persist(c, result)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalysisHandler) Detect(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues("detect").Observe(time.Since(start).Seconds()) }()

	req := &models.DetectRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	classification, err := h.pipeline.Detect(&req.Payload)
	if err != nil {
		metrics.AnalysisErrors.WithLabelValues("detect").Inc()
		h.logger.Error("detect usecase error", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, classification)
}

func (h *AnalysisHandler) Batch(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues("batch").Observe(time.Since(start).Seconds()) }()

	if !h.rl.Allow(c.RealIP()+":batch", 2, 0.5) {
		return xhttp.DataResponse(c, 429, "rate limited")
	}

	req := &models.BatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	policy := req.Options.ErrorHandling
	if policy == "" {
		policy = models.ErrorHandlingContinue
	}
	metrics.BatchCompanies.WithLabelValues(policy).Observe(float64(len(req.Companies)))

	result := h.engine.Execute(c.Request().Context(), req.Companies, req.Options)
	if !result.Success {
		metrics.AnalysisErrors.WithLabelValues("batch").Inc()
	}
	return xhttp.SuccessResponse(c, result)
}

// BatchAsync enqueues a batch for background processing. Results are
// persisted by the configured backend and read back via the overview
// endpoint.
func (h *AnalysisHandler) BatchAsync(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues("batch_async").Observe(time.Since(start).Seconds()) }()

	if h.jobs == nil {
		return xhttp.DataResponse(c, 503, "job queue not configured")
	}
	if !h.rl.Allow(c.RealIP()+":batch", 2, 0.5) {
		return xhttp.DataResponse(c, 429, "rate limited")
	}

	req := &models.BatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.jobs.PublishMessage(c.Request().Context(), usecase.BatchAnalyzeType, req); err != nil {
		metrics.AnalysisErrors.WithLabelValues("batch_async").Inc()
		h.logger.Error("batch enqueue error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.DataResponse(c, 202, map[string]interface{}{
		"status":    "queued",
		"companies": len(req.Companies),
	})
}

func (h *AnalysisHandler) Overview(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.AnalysisLatency.WithLabelValues("overview").Observe(time.Since(start).Seconds()) }()

	req := &models.OverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.NotFoundResponse(c, "storage not configured")
	}

	overview, err := h.store.GetCompanyOverview(c.Request().Context(), req.CompanyID)
	if err != nil {
		metrics.AnalysisErrors.WithLabelValues("overview").Inc()
		h.logger.Error("overview query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if overview == nil {
		return xhttp.NotFoundResponse(c, "company not found")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, overview)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
		}
	}
	return xhttp.SuccessResponse(c, status)
}

// persist writes the result, its annual metrics and the latest ratio
// snapshot. Write failures are logged, not surfaced to the caller.
func (h *AnalysisHandler) persist(c echo.Context, result *models.CompanyResult) {
	ctx := c.Request().Context()
	if err := h.store.SaveCompany(ctx, result); err != nil {
		h.logger.Error("persist company", xlogger.String("company_id", result.CompanyID), xlogger.Error(err))
		return
	}
	if result.Normalized != nil {
		if err := h.store.SaveAnnualMetrics(ctx, result.CompanyID, result.Normalized.Annual); err != nil {
			h.logger.Error("persist annual metrics", xlogger.String("company_id", result.CompanyID), xlogger.Error(err))
		}
		if q, ok := result.Normalized.LatestQuarter(); ok {
			if err := h.store.UpsertRatioSnapshot(ctx, result.CompanyID, q.Period, string(domrepo.PeriodQuarterly), result.Ratios); err != nil {
				h.logger.Error("persist ratio snapshot", xlogger.String("company_id", result.CompanyID), xlogger.Error(err))
			}
		}
	}
}
