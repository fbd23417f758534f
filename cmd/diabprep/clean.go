package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"diabprep/pkg/config"
	"diabprep/pkg/data"
	"diabprep/pkg/dataprep"
	"diabprep/pkg/metrics"
	"diabprep/pkg/pipeline"
	"diabprep/pkg/report"
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Resolve missing values and outliers",
		Long: `Run the missingness resolver and then the outlier resolver over the input
dataset, print what was done to each column and optionally write the cleaned
dataset, bar charts and a Prometheus textfile.`,
		Example: `  diabprep clean -i diabetes.csv -o diabetes_clean.csv
  diabprep clean -i diabetes.xlsx --knn-mode multivariate --chart ./charts --metrics run.prom`,
		RunE: runClean,
	}

	th := dataprep.DefaultThresholds()
	oc := dataprep.DefaultOutlierConfig()

	cmd.Flags().StringP("input", "i", "", "input dataset (.csv or .xlsx)")
	cmd.Flags().StringP("output", "o", "", "write the cleaned dataset here (.csv or .xlsx)")
	cmd.Flags().StringSlice("targets", config.DefaultTargets, "columns where zero means missing")
	cmd.Flags().String("label", "", "label column to leave out of outlier treatment (default: every numeric column is treated)")

	cmd.Flags().Float64("lower-simple-pct", th.LowerSimplePct, "missing % above which simple imputation applies")
	cmd.Flags().Float64("upper-simple-pct", th.UpperSimplePct, "missing % up to which simple imputation applies")
	cmd.Flags().Float64("skew-threshold", th.SkewThreshold, "|skew| above which simple imputation uses the median")
	cmd.Flags().Float64("lower-advanced-pct", th.LowerAdvancedPct, "missing % above which KNN imputation applies")
	cmd.Flags().Float64("upper-advanced-pct", th.UpperAdvancedPct, "missing % up to which KNN imputation applies; above it the column is dropped")
	cmd.Flags().Int("neighbor-count", th.NeighborCount, "neighbours used by KNN imputation")
	cmd.Flags().String("knn-mode", string(th.KNNMode), "KNN feature set (univariate, multivariate)")

	cmd.Flags().Float64("outlier-skew-threshold", oc.SkewThreshold, "|skew| above which the IQR method is used instead of Z-score")
	cmd.Flags().Float64("zscore-threshold", oc.ZScoreThreshold, "|z| above which a value is an outlier")
	cmd.Flags().StringSlice("exclude", nil, "numeric columns to leave out of outlier treatment")

	cmd.Flags().String("chart", "", "directory to write missingness and outlier bar charts into")
	cmd.Flags().String("metrics", "", "write run metrics in Prometheus text format to this file")

	return cmd
}

func cleanFlagKeys() flagKeys {
	return flagKeys{
		"input":                         "input",
		"output":                        "output",
		"targets":                       "targets",
		"label":                         "label",
		"thresholds.lower_simple_pct":   "lower-simple-pct",
		"thresholds.upper_simple_pct":   "upper-simple-pct",
		"thresholds.skew_threshold":     "skew-threshold",
		"thresholds.lower_advanced_pct": "lower-advanced-pct",
		"thresholds.upper_advanced_pct": "upper-advanced-pct",
		"thresholds.neighbor_count":     "neighbor-count",
		"thresholds.knn_mode":           "knn-mode",
		"outliers.skew_threshold":       "outlier-skew-threshold",
		"outliers.zscore_threshold":     "zscore-threshold",
		"outliers.exclude":              "exclude",
		"report.chart":                  "chart",
		"report.metrics":                "metrics",
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, cleanFlagKeys())
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	slog.SetDefault(slog.Default().With(slog.String("run_id", runID)))

	ds, err := data.LoadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.Input, err)
	}
	slog.Info("dataset loaded",
		slog.String("path", cfg.Input),
		slog.Int("rows", ds.Rows()),
		slog.Int("columns", ds.Width()))

	missing := &pipeline.MissingnessStage{Targets: cfg.Targets, Thresholds: cfg.Thresholds}
	outliers := &pipeline.OutlierStage{Config: cfg.OutlierConfig()}
	cleaned, err := pipeline.NewPipeline(missing, outliers).Run(ds)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Join(
		report.Title("Missing values by column"),
		report.MissingTable(missing.Summary),
		report.Title("Cleaning summary"),
		report.SummaryTable(missing.Summary),
		report.Title("Outliers detected"),
		report.OutlierTable(outliers.Report),
		report.Title("Statistics after cleaning"),
		report.DescribeTable(cleaned),
	))

	if cfg.Output != "" {
		if err := data.SaveFile(cfg.Output, cleaned); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
		}
		slog.Info("cleaned dataset written", slog.String("path", cfg.Output))
	}

	if cfg.Report.Chart != "" {
		if err := os.MkdirAll(cfg.Report.Chart, 0o755); err != nil {
			return err
		}
		files, err := report.SaveCharts(cfg.Report.Chart, missing.Summary, outliers.Report)
		if err != nil {
			return fmt.Errorf("failed to write charts: %w", err)
		}
		slog.Info("charts written", slog.Any("files", files))
	}

	if cfg.Report.Metrics != "" {
		rec := metrics.NewRecorder()
		rec.ObserveSummary(missing.Summary)
		rec.ObserveOutliers(outliers.Report)
		rec.Rows.Set(float64(cleaned.Rows()))
		if err := rec.WriteTextfile(cfg.Report.Metrics); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		slog.Info("metrics written", slog.String("path", cfg.Report.Metrics))
	}

	return nil
}
