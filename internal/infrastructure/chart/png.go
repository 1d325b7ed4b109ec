// Package chart renders ledger chart data to PNG with gonum/plot.
package chart

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/gestion-frais/expense-ledger/internal/core/domain"
	"github.com/gestion-frais/expense-ledger/internal/core/ports"
)

const (
	KindBar  = "bar"
	KindLine = "line"
)

var ErrUnknownKind = ports.ErrUnsupportedChartKind

// PNGRenderer implements ports.ChartRenderer.
type PNGRenderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// ParseKind normalises a requested kind; an empty value means bar.
func ParseKind(s string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case "", KindBar:
		return KindBar, nil
	case KindLine:
		return KindLine, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (r *PNGRenderer) Render(w io.Writer, title, kind string, data domain.ChartData) error {
	kind, err := ParseKind(kind)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Montant"
	p.Y.Min = 0
	p.Legend.Top = true

	if len(data.Labels) > 0 {
		switch kind {
		case KindLine:
			err = addLines(p, data)
		default:
			err = addBars(p, data)
		}
		if err != nil {
			return fmt.Errorf("build %s chart: %w", kind, err)
		}
		p.NominalX(data.Labels...)
	}

	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func addBars(p *plot.Plot, data domain.ChartData) error {
	n := len(data.Datasets)
	if n == 0 {
		return nil
	}
	width := vg.Points(40 / float64(n))
	for i, ds := range data.Datasets {
		bars, err := plotter.NewBarChart(padded(ds.Data, len(data.Labels)), width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		p.Legend.Add(ds.Label, bars)
	}
	return nil
}

func addLines(p *plot.Plot, data domain.ChartData) error {
	args := make([]any, 0, 2*len(data.Datasets))
	for _, ds := range data.Datasets {
		values := padded(ds.Data, len(data.Labels))
		pts := make(plotter.XYs, len(values))
		for i, v := range values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		args = append(args, ds.Label, pts)
	}
	return plotutil.AddLinePoints(p, args...)
}

// padded aligns a dataset with the label axis.
func padded(data []float64, n int) plotter.Values {
	out := make(plotter.Values, n)
	copy(out, data)
	return out
}
