package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diabprep/pkg/config"
	"diabprep/pkg/data"
	"diabprep/pkg/dataprep"
	"diabprep/pkg/dataset"
	"diabprep/pkg/report"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show schema, missing values and statistics without changing anything",
		RunE:  runInspect,
	}
	cmd.Flags().StringP("input", "i", "", "input dataset (.csv or .xlsx)")
	cmd.Flags().StringSlice("targets", config.DefaultTargets, "columns where zero means missing")
	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, flagKeys{"input": "input", "targets": "targets"})
	if err != nil {
		return err
	}

	ds, err := data.LoadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.Input, err)
	}

	zeros, err := zeroOrMissing(ds, cfg.Targets)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Join(
		report.Title(fmt.Sprintf("%d rows, %d columns", ds.Rows(), ds.Width())),
		report.SchemaTable(ds),
		report.Title("Missing values by column"),
		report.CountTable("Missing", ds.MissingCounts()),
		report.Title("Missing or zero in target columns"),
		report.CountTable("Missing or zero", zeros),
		report.Title("Statistics"),
		report.DescribeTable(ds),
	))
	return nil
}

func zeroOrMissing(ds *dataset.Dataset, targets []string) ([]dataset.NamedCount, error) {
	out := make([]dataset.NamedCount, 0, len(targets))
	for _, name := range targets {
		col, ok := ds.Column(name)
		if !ok {
			return nil, &dataprep.ColumnError{Column: name, Stage: "inspect", Err: dataprep.ErrColumnNotFound}
		}
		n := col.MissingCount()
		if col.Kind == dataset.Numeric {
			for _, v := range col.Nums {
				if v == 0 {
					n++
				}
			}
		}
		out = append(out, dataset.NamedCount{Name: name, Count: n})
	}
	return out, nil
}
