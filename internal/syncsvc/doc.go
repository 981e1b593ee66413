// Package syncsvc keeps the local order store in sync with the upstream
// logistics API: a bearer-token client fetches full order snapshots and an
// importer upserts them row by row. Designed to run periodically under the
// scheduler loop.
package syncsvc
