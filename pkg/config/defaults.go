package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tablebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "5000"

	DefaultAllowedOrigins = "http://localhost:3001,http://127.0.0.1:3001"

	DefaultSlotSchema = SlotSchemaDateTime

	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
