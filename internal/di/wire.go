//go:build wireinject
// +build wireinject

package di

import (
	"FinGrade/pkg/config"
	"FinGrade/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Logging and metrics
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideStorage,
		ProvidePublisher,
		ProvideResultCache,

		// Use cases
		ProvideAssumptions,
		ProvidePipeline,
		ProvideBatchEngine,
		ProvideKafkaPayloadHandler,
		ProvideJobQueue,

		// HTTP
		ProvideAnalysisHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
