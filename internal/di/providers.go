package di

import (
	"context"
	"fmt"
	"time"

	"FinGrade/internal/domain/repository"
	"FinGrade/internal/handler/api"
	"FinGrade/internal/middleware"
	internalrepo "FinGrade/internal/repository"
	icache "FinGrade/internal/service/cache"
	"FinGrade/internal/services/ratios"
	"FinGrade/internal/usecase"
	pkgch "FinGrade/pkg/clickhouse"
	"FinGrade/pkg/config"
	xhttp "FinGrade/pkg/http"
	pkgkafka "FinGrade/pkg/kafka"
	applogger "FinGrade/pkg/logger"
	"FinGrade/pkg/metrics"
	pkgqueue "FinGrade/pkg/queue"
	"FinGrade/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client with schema.
// Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS fingrade",
		`CREATE TABLE IF NOT EXISTS fingrade.company_results (
            analyzed_at DateTime, company_id String, company_name String,
            sector String, sub_sector String, success UInt8, error String,
            latest_period String, quality_score Float64, completeness_score Float64,
            ratios_json String, validation_json String, cache_hit UInt8, duration_ms Int64
        ) ENGINE=MergeTree ORDER BY (company_id, analyzed_at)`,
		`CREATE TABLE IF NOT EXISTS fingrade.annual_metrics (
            company_id String, period String, primary_income Float64, core_profit Float64,
            profit_before_tax Float64, net_profit Float64, eps Float64, updated_at DateTime
        ) ENGINE=ReplacingMergeTree(updated_at) ORDER BY (company_id, period)`,
		`CREATE TABLE IF NOT EXISTS fingrade.ratio_snapshots (
            company_id String, period String, period_type String,
            ratios_json String, updated_at DateTime
        ) ENGINE=ReplacingMergeTree(updated_at) ORDER BY (company_id, period, period_type)`,
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideResultCache selects the cache backend from config.
func ProvideResultCache(cfg *config.Config) (repository.ResultCache, error) {
	rc := icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	}
	switch cfg.Cache.Backend {
	case "redis":
		return icache.NewRedisResultCache(rc)
	case "layered":
		return icache.NewLayeredResultCache(rc, cfg.Cache.MaxEntries)
	default:
		return icache.NewResultCache(cfg.Cache.MaxEntries), nil
	}
}

// ProvideAssumptions maps configured estimation shares onto the ratio
// calculator's assumptions.
func ProvideAssumptions(cfg *config.Config) ratios.Assumptions {
	return ratios.Assumptions{
		NetInterestShare: cfg.Assumptions.NetInterestShare,
		NonInterestShare: cfg.Assumptions.NonInterestShare,
		TaxRate:          cfg.Assumptions.TaxRate,
	}
}

// ProvideStorage creates ClickHouse storage, nil when no client.
func ProvideStorage(chClient *pkgch.Client, l *applogger.Logger) repository.Storage {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewClickHouseStorage(chClient.DB())
	if s, ok := store.(*internalrepo.ClickHouseStorage); ok {
		s.SetLogger(l)
	}
	return store
}

// ProvidePublisher creates a Kafka publisher, nil when no producer.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.ResultsTopic)
}

// ProvidePipeline creates the per-company analysis pipeline.
func ProvidePipeline(assumptions ratios.Assumptions, l *applogger.Logger) *usecase.Pipeline {
	return usecase.NewPipeline(assumptions, l)
}

// ProvideBatchEngine creates the batch execution engine.
func ProvideBatchEngine(
	pipeline *usecase.Pipeline,
	cache repository.ResultCache,
	m repository.Metrics,
	pub repository.Publisher,
	store repository.Storage,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.BatchEngine {
	return usecase.NewBatchEngine(pipeline, cache, m, pub, store, cfg.Backend.Type, cfg.Cache.TTL, l)
}

// ProvideKafkaConsumer creates a Kafka consumer, nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaPayloadHandler registers the handler for raw payloads.
// Storage writes from the consumer path go through a persist buffer so a
// storage outage does not lose consumed messages.
func ProvideKafkaPayloadHandler(
	pipeline *usecase.Pipeline,
	store repository.Storage,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.KafkaPayloadHandler {
	var saver usecase.ResultSaver
	if store != nil {
		buf := middleware.NewPersistBuffer(store, m)
		buf.Start(context.Background())
		saver = buf
	}
	return usecase.NewKafkaPayloadHandler(cfg.Kafka.PayloadsTopic, pipeline, saver, m)
}

// ProvideJobQueue creates the Redis-backed job queue for asynchronous
// batch submissions, nil when disabled.
func ProvideJobQueue(cfg *config.Config, l *applogger.Logger, engine *usecase.BatchEngine) *pkgqueue.RedisQueue {
	if !cfg.Queue.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Queue.Redis.Addr,
		Password: cfg.Queue.Redis.Password,
		DB:       cfg.Queue.Redis.DB,
	})
	q := pkgqueue.NewRedisQueue(l, &pkgqueue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, client, pkgqueue.ModeProducerConsumer, pkgqueue.WithKeyPrefix(cfg.Queue.KeyPrefix))
	q.RegisterJob(usecase.NewBatchAnalyzeJob(engine, l))
	return q
}

// ProvideAnalysisHandler creates the Echo HTTP handler.
func ProvideAnalysisHandler(
	l *applogger.Logger,
	pipeline *usecase.Pipeline,
	engine *usecase.BatchEngine,
	store repository.Storage,
	q *pkgqueue.RedisQueue,
) xhttp.Handler {
	var jobs pkgqueue.QueueService
	if q != nil {
		jobs = q
	}
	return api.NewAnalysisHandler(l, pipeline, engine, store, jobs)
}

// logSink adapts the Kafka producer to the log collector's publisher.
type logSink struct {
	p *pkgkafka.Producer
}

func (s logSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	producer *pkgkafka.Producer,
	kh *usecase.KafkaPayloadHandler,
	chClient *pkgch.Client,
	pub repository.Publisher,
	q *pkgqueue.RedisQueue,
	l *applogger.Logger,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          "fingrade.logs",
			Publisher:      logSink{p: producer},
		})
	}
	app := server.New(cfg, consumer, kh, chClient, l)
	app.SetHTTPHandler(handler)
	app.Publisher = pub
	app.JobQueue = q
	return app
}
