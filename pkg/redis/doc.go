// Package redis provides the Redis connection helpers used by the order
// cache: Connect with startup retries and a healthcheck closure for the
// readiness probe. It wraps the go-redis client; configuration is described
// by the Config struct and populated from environment variables.
package redis
