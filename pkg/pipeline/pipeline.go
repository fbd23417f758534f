package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"diabprep/pkg/dataprep"
	"diabprep/pkg/dataset"
)

// Stage consumes a dataset and returns the transformed one. A stage owns
// the dataset it returns; the caller must not reuse the one it passed in.
type Stage interface {
	Name() string
	Apply(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// Pipeline chains multiple stages.
type Pipeline struct {
	steps []Stage
}

func NewPipeline(steps ...Stage) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run applies every stage in order and stops at the first failure.
func (p *Pipeline) Run(ds *dataset.Dataset) (*dataset.Dataset, error) {
	for _, step := range p.steps {
		start := time.Now()
		out, err := step.Apply(ds)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", step.Name(), err)
		}
		slog.Info("stage finished",
			slog.String("stage", step.Name()),
			slog.Int("rows", out.Rows()),
			slog.Int("columns", out.Width()),
			slog.Duration("elapsed", time.Since(start)))
		ds = out
	}
	return ds, nil
}

// MissingnessStage runs the missingness resolver and keeps its summary.
type MissingnessStage struct {
	Targets    []string
	Thresholds dataprep.Thresholds
	Summary    dataprep.Summary
}

func (s *MissingnessStage) Name() string { return dataprep.StageMissingness }

func (s *MissingnessStage) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out, summary, err := dataprep.ResolveMissingness(ds, s.Targets, s.Thresholds)
	if err != nil {
		return nil, err
	}
	s.Summary = summary
	return out, nil
}

// OutlierStage runs the outlier resolver and keeps its report.
type OutlierStage struct {
	Config dataprep.OutlierConfig
	Report dataprep.OutlierReport
}

func (s *OutlierStage) Name() string { return dataprep.StageOutliers }

func (s *OutlierStage) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	// the label may have been dropped upstream
	cfg := s.Config
	cfg.Exclude = nil
	for _, name := range s.Config.Exclude {
		if ds.Has(name) {
			cfg.Exclude = append(cfg.Exclude, name)
		}
	}
	out, report, err := dataprep.ResolveOutliers(ds, cfg)
	if err != nil {
		return nil, err
	}
	s.Report = report
	return out, nil
}
