// Package metrics counts what a cleaning run did and can write the counts
// as a Prometheus textfile for the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"diabprep/pkg/dataprep"
)

// Recorder holds the run counters on a private registry.
type Recorder struct {
	Registry *prometheus.Registry

	ColumnsTreated  *prometheus.CounterVec
	MissingPercent  *prometheus.GaugeVec
	OutliersFlagged *prometheus.CounterVec
	Rows            prometheus.Gauge
}

// NewRecorder registers the run metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		ColumnsTreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diabprep",
			Name:      "columns_treated_total",
			Help:      "Target columns handled by the missingness resolver, by method.",
		}, []string{"treatment", "method"}),
		MissingPercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diabprep",
			Name:      "missing_percent",
			Help:      "Missing percentage of each target column before treatment.",
		}, []string{"column"}),
		OutliersFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diabprep",
			Name:      "outliers_flagged_total",
			Help:      "Rows flagged as outliers, by column and method.",
		}, []string{"column", "method"}),
		Rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "diabprep",
			Name:      "rows",
			Help:      "Rows in the cleaned dataset.",
		}),
	}
	r.Registry.MustRegister(r.ColumnsTreated, r.MissingPercent, r.OutliersFlagged, r.Rows)
	return r
}

// ObserveSummary records the missingness resolver's decisions.
func (r *Recorder) ObserveSummary(s dataprep.Summary) {
	for _, rec := range s.Records {
		r.ColumnsTreated.WithLabelValues(rec.Treatment.String(), rec.Method()).Inc()
		r.MissingPercent.WithLabelValues(rec.Column).Set(rec.MissingPct)
	}
}

// ObserveOutliers records flagged counts per column.
func (r *Recorder) ObserveOutliers(rep dataprep.OutlierReport) {
	for _, c := range rep.Columns {
		r.OutliersFlagged.WithLabelValues(c.Column, c.Method.String()).Add(float64(c.Flagged))
	}
}

// WriteTextfile writes the registry in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
