package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FinGrade/internal/domain/models"
	drepo "FinGrade/internal/domain/repository"
	pkgkafka "FinGrade/pkg/kafka"
)

// ResultSaver persists a single analysis result. Satisfied by Storage and
// by the buffering middleware wrapped around it.
type ResultSaver interface {
	SaveCompany(ctx context.Context, r *models.CompanyResult) error
}

// KafkaPayloadHandler consumes raw company payloads from Kafka, runs the
// analysis pipeline and writes the results to storage.
type KafkaPayloadHandler struct {
	topic    string
	pipeline *Pipeline
	saver    ResultSaver
	metrics  drepo.Metrics
}

func NewKafkaPayloadHandler(topic string, pipeline *Pipeline, saver ResultSaver, metrics drepo.Metrics) *KafkaPayloadHandler {
	return &KafkaPayloadHandler{topic: topic, pipeline: pipeline, saver: saver, metrics: metrics}
}

func (h *KafkaPayloadHandler) Topic() string { return h.topic }

// incoming message schema: {company_id, sector, payload}
func (h *KafkaPayloadHandler) Handle(ctx context.Context, b []byte) error {
	var m models.BatchCompany
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.CompanyID == "" {
		m.CompanyID = m.Payload.CompanyID
	}

	result := h.pipeline.Analyze(ctx, m)
	h.metrics.RecordCompanyProcessed(string(result.Sector), result.Success)
	if !result.Success {
		h.metrics.RecordError("consumer_analyze")
		return fmt.Errorf("analyze %s: %s", m.CompanyID, result.Error)
	}

	if h.saver == nil {
		return nil
	}
	start := time.Now()
	err := h.saver.SaveCompany(ctx, result)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaPayloadHandler)(nil)
