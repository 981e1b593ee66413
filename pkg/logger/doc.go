// Package logger builds configured slog.Logger instances for the bot.
//
// It provides a factory with functional options (format, level, static
// attributes, environment presets), a handler decorator that injects
// request-scoped attributes from context, and attribute helpers for the
// identifiers that show up throughout the codebase (chat id, order number,
// event type, notification record id).
//
// Usage:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Environment, "logibot"),
//	)
//	logger.SetAsDefault(log)
package logger
