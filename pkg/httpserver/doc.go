// Package httpserver runs the bot's operational HTTP endpoint: a small
// net/http server with graceful shutdown plus a handler for liveness and
// readiness probes backed by dependency healthchecks.
package httpserver
