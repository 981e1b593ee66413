package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/margianalogistics/logibot/internal/order"
	"github.com/margianalogistics/logibot/pkg/blob"
	"github.com/margianalogistics/logibot/pkg/logger"
)

const pdfContentType = "application/pdf"

// Archiver renders reports and keeps a copy in blob storage before they are
// handed to the chat transport. Keys are date-partitioned so operators can
// browse the archive by day.
type Archiver struct {
	store blob.Storage
	log   *slog.Logger
}

// ArchiverOption configures an Archiver.
type ArchiverOption func(*Archiver)

// WithArchiverLogger sets the logger for the Archiver.
func WithArchiverLogger(log *slog.Logger) ArchiverOption {
	return func(a *Archiver) {
		if log != nil {
			a.log = log
		}
	}
}

// NewArchiver creates an archiver over the given blob storage.
func NewArchiver(store blob.Storage, opts ...ArchiverOption) *Archiver {
	a := &Archiver{store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OrderReport renders the order report and archives it. Returns the PDF
// bytes and the suggested filename. Archive failures are logged but do not
// fail the render: the caller still gets a report to send.
func (a *Archiver) OrderReport(ctx context.Context, o order.Order, generatedAt time.Time) ([]byte, string, error) {
	data, err := RenderOrderReport(o, generatedAt)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("order_%s_%s.pdf", o.Number, generatedAt.Format("20060102"))
	a.archive(ctx, archiveKey("orders", filename, generatedAt), data)

	return data, filename, nil
}

// SummaryReport renders the statistics summary and archives it.
func (a *Archiver) SummaryReport(ctx context.Context, stats order.Statistics, generatedAt time.Time) ([]byte, string, error) {
	data, err := RenderSummaryReport(stats, generatedAt)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("summary_%s.pdf", generatedAt.Format("20060102_150405"))
	a.archive(ctx, archiveKey("summaries", filename, generatedAt), data)

	return data, filename, nil
}

func (a *Archiver) archive(ctx context.Context, key string, data []byte) {
	if err := a.store.Put(ctx, key, data, pdfContentType); err != nil {
		a.log.ErrorContext(ctx, "failed to archive report",
			slog.String("key", key),
			logger.Error(err))
		return
	}
	a.log.DebugContext(ctx, "report archived", slog.String("key", key))
}

func archiveKey(kind, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s", kind, at.Format("2006/01/02"), filename)
}
