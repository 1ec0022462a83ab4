package config

import "time"

const (
	DefaultAPIBaseURL = "http://localhost:9098"
	DefaultAPITimeout = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultCookieSecure = false
	DefaultSessionTTL   = 7 * 24 * time.Hour

	SnapshotStoreMemory      = "memory"
	SnapshotStoreMongo       = "mongo"
	DefaultSnapshotStore     = SnapshotStoreMemory
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "servicehub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStateDirName = ".servicehub"
)
