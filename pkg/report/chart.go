package report

import (
	"errors"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"diabprep/pkg/dataprep"
)

// ErrNothingToPlot is returned when a chart would have no bars.
var ErrNothingToPlot = errors.New("nothing to plot")

const (
	MissingnessChartFile = "missingness.png"
	OutliersChartFile    = "outliers.png"
)

func barChart(title, ylabel string, names []string, vals plotter.Values, c color.Color) (*plot.Plot, error) {
	if len(vals) == 0 {
		return nil, ErrNothingToPlot
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// MissingnessChart plots the missing percentage of each target column.
func MissingnessChart(s dataprep.Summary) (*plot.Plot, error) {
	names := make([]string, len(s.Records))
	vals := make(plotter.Values, len(s.Records))
	for i, r := range s.Records {
		names[i] = r.Column
		vals[i] = r.MissingPct
	}
	return barChart("Missing values per column", "% missing", names, vals, color.RGBA{R: 255, G: 107, B: 107, A: 255})
}

// OutlierChart plots the flagged outlier count of each treated column.
func OutlierChart(r dataprep.OutlierReport) (*plot.Plot, error) {
	names := make([]string, len(r.Columns))
	vals := make(plotter.Values, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Column
		vals[i] = float64(c.Flagged)
	}
	return barChart("Outliers flagged per column", "rows", names, vals, color.RGBA{R: 78, G: 205, B: 196, A: 255})
}

// SaveCharts writes both charts as PNG files into dir. Charts with no bars are skipped.
func SaveCharts(dir string, s dataprep.Summary, r dataprep.OutlierReport) ([]string, error) {
	var written []string
	build := []struct {
		file    string
		newPlot func() (*plot.Plot, error)
	}{
		{MissingnessChartFile, func() (*plot.Plot, error) { return MissingnessChart(s) }},
		{OutliersChartFile, func() (*plot.Plot, error) { return OutlierChart(r) }},
	}
	for _, b := range build {
		p, err := b.newPlot()
		if errors.Is(err, ErrNothingToPlot) {
			continue
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, b.file)
		if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
