// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each component declares its own Config struct with `env` tags and calls
// Load (or MustLoad at startup). Parsed configs are cached per type, so
// loading the same struct from several places is cheap and consistent.
package config
