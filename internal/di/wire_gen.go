// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"FinGrade/pkg/config"
	"FinGrade/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	assumptions := ProvideAssumptions(cfg)
	pipeline := ProvidePipeline(assumptions, logger)
	resultCache, err := ProvideResultCache(cfg)
	if err != nil {
		return nil, err
	}
	metrics := ProvideMetrics()
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	publisher := ProvidePublisher(producer, cfg)
	client, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, err
	}
	storage := ProvideStorage(client, logger)
	batchEngine := ProvideBatchEngine(pipeline, resultCache, metrics, publisher, storage, cfg, logger)
	redisQueue := ProvideJobQueue(cfg, logger, batchEngine)
	handler := ProvideAnalysisHandler(logger, pipeline, batchEngine, storage, redisQueue)
	consumer, err := ProvideKafkaConsumer(cfg)
	if err != nil {
		return nil, err
	}
	kafkaPayloadHandler := ProvideKafkaPayloadHandler(pipeline, storage, metrics, cfg)
	app := ProvideApp(cfg, handler, consumer, producer, kafkaPayloadHandler, client, publisher, redisQueue, logger)
	return app, nil
}
