package presenter

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/impact-sim/internal/domain"
)

// Chart labels.
const (
	ChartTitle  = "Global Cooling Recovery After Impact"
	ChartXLabel = "Years After Impact"
	ChartYLabel = "Temperature Drop (°C)"
	ChartLegend = "Temperature Drop Recovery"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var lineColor = color.RGBA{B: 255, A: 255}

// RenderChart draws the recovery series as a PNG line chart.
func RenderChart(w io.Writer, series domain.RecoverySeries) error {
	p, err := newRecoveryPlot(series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// SaveChart renders the recovery chart to a PNG file at path.
func SaveChart(path string, series domain.RecoverySeries) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close chart file: %w", cerr)
		}
	}()
	return RenderChart(f, series)
}

func newRecoveryPlot(series domain.RecoverySeries) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.New("recovery series is empty")
	}

	pts := make(plotter.XYs, len(series))
	for i, pt := range series {
		pts[i].X = float64(pt.Year)
		pts[i].Y = pt.TemperatureDrop
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("build recovery line: %w", err)
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = ChartTitle
	p.X.Label.Text = ChartXLabel
	p.Y.Label.Text = ChartYLabel
	p.Add(plotter.NewGrid(), line)
	p.Legend.Add(ChartLegend, line)
	p.Legend.Top = true
	return p, nil
}
