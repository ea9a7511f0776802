package repository

import (
	"context"

	"FinGrade/internal/domain/models"
	domrepo "FinGrade/internal/domain/repository"
	pkgkafka "FinGrade/pkg/kafka"
)

// KafkaResultPublisher implements Publisher for Kafka. Messages are keyed
// by company id so one company's results stay ordered on a partition.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates a Kafka publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) Publish(ctx context.Context, r *models.CompanyResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.CompanyID), r)
}

func (p *KafkaResultPublisher) PublishBatch(ctx context.Context, results []*models.CompanyResult) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(results))
	for i, r := range results {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(r.CompanyID),
			Value: r,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
