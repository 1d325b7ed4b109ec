package ports

import (
	"context"
	"errors"
	"io"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
)

// ErrUnsupportedChartKind is returned by renderers for chart kinds they cannot draw.
var ErrUnsupportedChartKind = errors.New("unsupported chart kind")

// ChartRenderer draws chart data into an image.
type ChartRenderer interface {
	Render(w io.Writer, title string, kind string, data domain.ChartData) error
}

// Table is a rendered, already formatted table ready for export.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// TableExporter writes tables into a document.
type TableExporter interface {
	Export(w io.Writer, title string, tables ...Table) error
}

// Alerter reports user-facing failures through a blocking primitive
// (a dialog, a terminal message).
type Alerter interface {
	Alert(ctx context.Context, message string)
}
