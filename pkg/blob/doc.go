// Package blob stores opaque byte blobs behind a small Storage interface
// with local-filesystem and S3 backends. The report subsystem uses it to
// archive rendered PDFs under date-partitioned keys.
package blob
