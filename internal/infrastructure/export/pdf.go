// Package export writes formatted ledger tables to PDF.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

const (
	pageMargin = 10.0
	rowHeight  = 7.0
)

// PDFExporter implements ports.TableExporter on A4 landscape pages.
type PDFExporter struct {
	clock func() time.Time
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{clock: time.Now}
}

func (e *PDFExporter) Export(w io.Writer, title string, tables ...ports.Table) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(e.clock())
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		// French grouping uses narrow no-break spaces, absent from cp1252
		return tr(strings.ReplaceAll(s, "\u202f", " "))
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, text(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	for _, t := range tables {
		if len(t.Headers) == 0 {
			continue
		}
		colWidth := usable / float64(len(t.Headers))

		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 9, text(t.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colWidth, rowHeight, text(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range t.Rows {
			for i := range t.Headers {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(colWidth, rowHeight, text(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
