package main

import (
	"context"
	"fmt"
	"os"

	"servicehub/internal/directory"
	"servicehub/internal/events"
	"servicehub/internal/gateway"
	"servicehub/internal/session"
	"servicehub/pkg/app"
	"servicehub/pkg/client"
	"servicehub/pkg/config"
	"servicehub/pkg/kafka"
	kafka_config "servicehub/pkg/kafka/config"
	kafkamiddleware "servicehub/pkg/kafka/middleware"
	"servicehub/pkg/middleware"
	"servicehub/pkg/sealer"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting ServiceHub gateway")

	if err := run(cfg); err != nil {
		cfg.Log.Error("Gateway stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so every deferred close runs.
func run(cfg *config.Config) error {
	ctx := context.Background()

	cookies, err := cookieOptions(cfg)
	if err != nil {
		return err
	}

	var pinger gateway.Pinger
	var snapshots directory.SnapshotStore = directory.NewMemorySnapshotStore()
	if cfg.SnapshotStore == config.SnapshotStoreMongo {
		mongoClient, err := client.NewMongoClient(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer func() {
			if err := mongoClient.Close(context.Background()); err != nil {
				cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
			}
		}()
		snapshots = directory.SaveOnChange(directory.NewMongoSnapshotStore(mongoClient.Client, cfg.MongoDatabaseName))
		pinger = mongoClient
		cfg.Log.Info("Provider snapshots stored in MongoDB", "database", cfg.MongoDatabaseName)
	}

	publisher, closePublisher, err := initPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	idempotencyStore := middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)
	loginLimiter := middleware.NewKeyedRateLimiter(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		middleware.ClientAddress,
		cfg.Log,
	)

	handler := gateway.NewHandler(
		client.NewHttpClient(cfg.APIBaseURL, cfg.APITimeout),
		snapshots,
		cfg.Log,
		gateway.WithCookieOptions(cookies),
		gateway.WithRateLimiter(loginLimiter),
		gateway.WithIdempotencyStore(idempotencyStore),
		gateway.WithPublisher(publisher),
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(gateway.NewHealthHandler(pinger, cfg.Log), handler, idempotencyStore, loginLimiter)
	return serverApp.Run()
}

func cookieOptions(cfg *config.Config) (session.CookieOptions, error) {
	opts := session.CookieOptions{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}
	if cfg.CookieSecret == "" {
		cfg.Log.Warn("COOKIE_SECRET not set, session cookie carries the bare token")
		return opts, nil
	}
	s, err := sealer.FromBase64(cfg.CookieSecret)
	if err != nil {
		return opts, fmt.Errorf("invalid cookie secret: %w", err)
	}
	opts.Sealer = s
	return opts, nil
}

// initPublisher returns the activity publisher and its cleanup. Without
// configured brokers events are dropped.
func initPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid Kafka configuration: %w", err)
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Activity events disabled, no Kafka brokers configured")
		return events.Noop{}, func() {}, nil
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.ActivityTopic, cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}, nil
}
