package usecase

import (
	"context"
	"fmt"

	"FinGrade/internal/domain/models"
	applogger "FinGrade/pkg/logger"
	"FinGrade/pkg/queue"
)

// BatchAnalyzeType is the queue message type for asynchronous batch runs.
const BatchAnalyzeType = "batch.analyze"

// BatchAnalyzeJob runs queued batch requests through the engine. Results
// are persisted by the engine's configured backend; callers read them back
// through the overview endpoint.
type BatchAnalyzeJob struct {
	engine *BatchEngine
	log    *applogger.Logger
}

func NewBatchAnalyzeJob(engine *BatchEngine, log *applogger.Logger) *BatchAnalyzeJob {
	return &BatchAnalyzeJob{engine: engine, log: log}
}

func (j *BatchAnalyzeJob) Name() string { return "batch_analyze" }

func (j *BatchAnalyzeJob) Type() string { return BatchAnalyzeType }

func (j *BatchAnalyzeJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[models.BatchRequest](payload)
	if err != nil {
		return fmt.Errorf("batch job payload: %w", err)
	}
	if len(req.Companies) == 0 {
		return nil
	}

	result := j.engine.Execute(ctx, req.Companies, req.Options)
	if j.log != nil {
		j.log.Info("queued batch finished",
			applogger.Int("companies", len(req.Companies)),
			applogger.Int("errors", len(result.Errors)),
			applogger.Bool("success", result.Success),
		)
	}
	if !result.Success {
		return fmt.Errorf("queued batch failed: %d errors", len(result.Errors))
	}
	return nil
}

var _ queue.Job = (*BatchAnalyzeJob)(nil)
