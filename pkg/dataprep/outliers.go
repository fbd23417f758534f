package dataprep

import (
	"log/slog"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"diabprep/pkg/dataset"
	"diabprep/pkg/stats"
)

// OutlierSuffix is appended to a column name to form its indicator column.
const OutlierSuffix = "_outlier"

// OutlierConfig parameterizes the outlier resolver.
type OutlierConfig struct {
	SkewThreshold   float64  `mapstructure:"skew_threshold" validate:"gte=0"`
	ZScoreThreshold float64  `mapstructure:"zscore_threshold" validate:"gt=0"`
	Exclude         []string `mapstructure:"exclude"`
}

// DefaultOutlierConfig returns the stock outlier settings.
func DefaultOutlierConfig() OutlierConfig {
	return OutlierConfig{SkewThreshold: 0.5, ZScoreThreshold: 3}
}

// Validate fails with ErrInvalidThreshold on a non-positive z threshold or negative skew threshold.
func (c OutlierConfig) Validate() error {
	return validateStruct(c, ErrInvalidThreshold)
}

// Method is the outlier detection method chosen for a column.
type Method int

const (
	MethodZScore Method = iota
	MethodIQR
)

func (m Method) String() string {
	if m == MethodIQR {
		return "IQR"
	}
	return "Z-score"
}

// OutlierColumn reports the treatment of one column.
type OutlierColumn struct {
	Column    string
	Indicator string
	Method    Method
	Skew      float64
	Bounds    stats.Bounds
	// Degenerate is set when the column has zero spread under the Z-score
	// method; nothing is flagged or clipped.
	Degenerate bool
	Flagged    int
}

// OutlierReport lists per-column results and the suffix used for indicators.
type OutlierReport struct {
	Suffix  string
	Columns []OutlierColumn
}

// TotalFlagged sums flagged rows across columns.
func (r OutlierReport) TotalFlagged() int {
	n := 0
	for _, c := range r.Columns {
		n += c.Flagged
	}
	return n
}

// IndicatorNames returns the derived indicator column names.
func (r OutlierReport) IndicatorNames() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Indicator
	}
	return out
}

type outlierPlan struct {
	report    OutlierColumn
	clipped   []float64
	indicator []float64
}

// ResolveOutliers clips every eligible numeric column to Z-score bounds
// (approximately symmetric columns) or IQR fences (skewed columns) and
// appends a 0/1 indicator column per treated column. Categorical columns,
// excluded columns and existing indicator columns are left alone.
//
// A column named <x>_outlier counts as an indicator, and is skipped, only
// while <x> is present and its values are all 0 or 1. Any other such column
// is data, and treating <x> then fails with ErrIndicatorConflict.
//
// Z-score bounds are re-derived on every call, so rerunning on clipped
// output can flag heavy tails again. IQR fences are stable under clipping.
//
// The input dataset is never modified.
func ResolveOutliers(ds *dataset.Dataset, cfg OutlierConfig) (*dataset.Dataset, OutlierReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, OutlierReport{}, err
	}
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		if !ds.Has(name) {
			return nil, OutlierReport{}, columnErr(StageOutliers, name, ErrColumnNotFound)
		}
		excluded[name] = struct{}{}
	}

	var cols []*dataset.Column
	for _, c := range ds.NumericColumns() {
		if _, skip := excluded[c.Name]; skip || isIndicator(ds, c) {
			continue
		}
		if ind, ok := ds.Column(c.Name + OutlierSuffix); ok && !isIndicator(ds, ind) {
			return nil, OutlierReport{}, columnErr(StageOutliers, c.Name, ErrIndicatorConflict)
		}
		cols = append(cols, c)
	}

	// columns are independent; plans read the input and write only their own slot
	plans := make([]outlierPlan, len(cols))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cols {
		i, c := i, c
		g.Go(func() error {
			plans[i] = planOutliers(c, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, OutlierReport{}, err
	}

	work := ds.Clone()
	report := OutlierReport{Suffix: OutlierSuffix, Columns: make([]OutlierColumn, 0, len(plans))}
	for _, p := range plans {
		if err := work.SetColumn(dataset.NewNumeric(p.report.Column, p.clipped)); err != nil {
			return nil, OutlierReport{}, columnErr(StageOutliers, p.report.Column, err)
		}
		if err := work.SetColumn(dataset.NewNumeric(p.report.Indicator, p.indicator)); err != nil {
			return nil, OutlierReport{}, columnErr(StageOutliers, p.report.Column, err)
		}
		slog.Debug("outliers resolved",
			slog.String("column", p.report.Column),
			slog.String("method", p.report.Method.String()),
			slog.Float64("skew", p.report.Skew),
			slog.Int("flagged", p.report.Flagged))
		report.Columns = append(report.Columns, p.report)
	}

	slog.Info("outlier resolution finished",
		slog.Int("columns", len(report.Columns)),
		slog.Int("flagged", report.TotalFlagged()))

	return work, report, nil
}

// isIndicator reports whether c looks like an indicator written by
// ResolveOutliers for another column of ds.
func isIndicator(ds *dataset.Dataset, c *dataset.Column) bool {
	base, ok := strings.CutSuffix(c.Name, OutlierSuffix)
	if !ok || base == "" || !ds.Has(base) {
		return false
	}
	for _, v := range c.Nums {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

func planOutliers(c *dataset.Column, cfg OutlierConfig) outlierPlan {
	present := c.Present()
	skew := stats.Skew(present)
	rep := OutlierColumn{
		Column:    c.Name,
		Indicator: c.Name + OutlierSuffix,
		Skew:      skew,
	}

	clipped := make([]float64, len(c.Nums))
	copy(clipped, c.Nums)
	indicator := make([]float64, len(c.Nums))

	var outside func(v float64) bool
	if math.Abs(skew) <= cfg.SkewThreshold {
		rep.Method = MethodZScore
		mean, std := stats.MeanStd(present)
		if std == 0 {
			rep.Degenerate = true
			rep.Bounds = stats.Bounds{Lower: mean, Upper: mean}
			return outlierPlan{report: rep, clipped: clipped, indicator: indicator}
		}
		rep.Bounds = stats.ZScoreBounds(mean, std, cfg.ZScoreThreshold)
		outside = func(v float64) bool { return math.Abs((v-mean)/std) > cfg.ZScoreThreshold }
	} else {
		rep.Method = MethodIQR
		rep.Bounds, _, _ = stats.IQRBounds(present)
		outside = func(v float64) bool { return !rep.Bounds.Contains(v) }
	}

	for i, v := range clipped {
		if math.IsNaN(v) {
			continue
		}
		if outside(v) {
			indicator[i] = 1
			rep.Flagged++
		}
		clipped[i] = rep.Bounds.Clip(v)
	}
	return outlierPlan{report: rep, clipped: clipped, indicator: indicator}
}
