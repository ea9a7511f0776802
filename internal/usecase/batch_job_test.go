package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"FinGrade/internal/domain/models"
)

func TestBatchAnalyzeJobHandlesRawPayload(t *testing.T) {
	job := NewBatchAnalyzeJob(newTestEngine(nil), nil)
	if job.Type() != BatchAnalyzeType {
		t.Fatalf("type = %s", job.Type())
	}

	req := models.BatchRequest{
		Companies: []models.BatchCompany{goodCompany("a"), goodCompany("b")},
		Options:   models.BatchOptions{ErrorHandling: models.ErrorHandlingContinue},
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := job.Handle(context.Background(), json.RawMessage(b)); err != nil {
		t.Fatalf("handle: %v", err)
	}
}

func TestBatchAnalyzeJobEmptyBatch(t *testing.T) {
	job := NewBatchAnalyzeJob(newTestEngine(nil), nil)
	b, _ := json.Marshal(models.BatchRequest{})
	if err := job.Handle(context.Background(), json.RawMessage(b)); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}

func TestBatchAnalyzeJobRejectsBadPayload(t *testing.T) {
	job := NewBatchAnalyzeJob(newTestEngine(nil), nil)
	if err := job.Handle(context.Background(), 42); err == nil {
		t.Fatalf("expected payload type error")
	}
}

func TestBatchAnalyzeJobStrictFailure(t *testing.T) {
	job := NewBatchAnalyzeJob(newTestEngine(nil), nil)
	req := models.BatchRequest{
		Companies: []models.BatchCompany{badCompany("x")},
		Options:   models.BatchOptions{ErrorHandling: models.ErrorHandlingStrict},
	}
	b, _ := json.Marshal(req)
	if err := job.Handle(context.Background(), json.RawMessage(b)); err == nil {
		t.Fatalf("strict batch failure must surface as a job error")
	}
}
