// Package report renders PDF reports for orders and aggregate statistics,
// and archives every rendered report to blob storage under date-partitioned
// keys.
package report
