// Package store defines the insert-only record store the wizard submits to,
// an in-memory implementation and decorators. Driver subpackages provide
// PostgreSQL, SQLite, S3, NATS JetStream, Redis stream and REST backends.
package store
