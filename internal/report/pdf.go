package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/margianalogistics/logibot/internal/order"
)

const (
	titleFontSize  = 16
	headerFontSize = 11
	bodyFontSize   = 10
)

// RenderOrderReport renders a one-page PDF describing a single order:
// header fields, lifecycle timeline, and notes.
func RenderOrderReport(o order.Order, generatedAt time.Time) ([]byte, error) {
	pdf := newPage(fmt.Sprintf("Order Report: %s", o.Number), generatedAt)

	writeField(pdf, "Client", o.ClientName)
	writeField(pdf, "Route", o.Route)
	writeField(pdf, "Status", o.Status)
	writeField(pdf, "Goods", o.GoodsType)
	writeField(pdf, "Containers", fmt.Sprintf("%d", o.ContainerCount))

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", headerFontSize)
	pdf.CellFormat(0, 7, "Timeline", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", bodyFontSize)

	for _, ev := range o.Events() {
		pdf.CellFormat(70, 6, ev.Type.Label(), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, ev.Date.Format("02.01.2006"), "", 1, "L", false, 0, "")
	}

	if o.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", headerFontSize)
		pdf.CellFormat(0, 7, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", bodyFontSize)
		pdf.MultiCell(0, 5, o.Notes, "", "L", false)
	}

	return finish(pdf)
}

// RenderSummaryReport renders the aggregate statistics overview.
func RenderSummaryReport(stats order.Statistics, generatedAt time.Time) ([]byte, error) {
	pdf := newPage("Logistics Summary", generatedAt)

	writeField(pdf, "Period", fmt.Sprintf("last %d days", stats.PeriodDays))
	writeField(pdf, "Total orders", fmt.Sprintf("%d", stats.TotalOrders))
	writeField(pdf, "Active orders", fmt.Sprintf("%d", stats.ActiveOrders))
	writeField(pdf, "Completed orders", fmt.Sprintf("%d", stats.CompletedOrders))
	writeField(pdf, "Total containers", fmt.Sprintf("%d", stats.TotalContainers))
	if stats.TotalWeight > 0 {
		writeField(pdf, "Total weight", fmt.Sprintf("%.2f t", stats.TotalWeight))
	}
	if stats.TotalVolume > 0 {
		writeField(pdf, "Total volume", fmt.Sprintf("%.2f m3", stats.TotalVolume))
	}

	return finish(pdf)
}

func newPage(title string, generatedAt time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", titleFontSize)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Generated "+generatedAt.Format("02.01.2006 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	return pdf
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", bodyFontSize)
	pdf.CellFormat(45, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", bodyFontSize)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func finish(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
