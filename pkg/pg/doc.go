// Package pg wires the bot to PostgreSQL: pool construction with startup
// retries, goose schema migrations over the pgx stdlib bridge, a readiness
// healthcheck closure, and helpers for classifying driver errors
// (not-found, duplicate key).
//
// Configuration comes from the Config struct, populated from environment
// variables via the config package.
package pg
