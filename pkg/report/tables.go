// Package report renders human-readable summaries of the cleaning stages.
// The layout is for people; only the numbers behind it are stable.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"diabprep/pkg/dataprep"
	"diabprep/pkg/dataset"
	"diabprep/pkg/stats"
)

var (
	// HeaderColor is used for table headers.
	HeaderColor = lipgloss.Color("#FF6B6B")
	// BorderColor is used for table borders.
	BorderColor = lipgloss.Color("#666666")
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HeaderColor).MarginTop(1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(HeaderColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Title renders a section heading.
func Title(s string) string {
	return TitleStyle.Render(s)
}

func render(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// SchemaTable lists columns and their kinds.
func SchemaTable(ds *dataset.Dataset) string {
	s := ds.Schema()
	rows := make([][]string, len(s.FeatureNames))
	for i, name := range s.FeatureNames {
		rows[i] = []string{name, s.Types[i].String()}
	}
	return render([]string{"Column", "Type"}, rows)
}

// MissingTable shows missing counts as received, after zeros became
// missing and after treatment. Dropped columns show "dropped".
func MissingTable(s dataprep.Summary) string {
	after := make(map[string]int, len(s.MissingAfter))
	for _, nc := range s.MissingAfter {
		after[nc.Name] = nc.Count
	}
	zeros := make(map[string]int, len(s.MissingAfterZeros))
	for _, nc := range s.MissingAfterZeros {
		zeros[nc.Name] = nc.Count
	}

	rows := make([][]string, 0, len(s.MissingBefore))
	for _, nc := range s.MissingBefore {
		a := "dropped"
		if n, ok := after[nc.Name]; ok {
			a = strconv.Itoa(n)
		}
		rows = append(rows, []string{nc.Name, strconv.Itoa(nc.Count), strconv.Itoa(zeros[nc.Name]), a})
	}
	return render([]string{"Column", "Missing", "Zeros as missing", "After treatment"}, rows)
}

// CountTable renders plain per-column counts.
func CountTable(header string, counts []dataset.NamedCount) string {
	rows := make([][]string, len(counts))
	for i, nc := range counts {
		rows[i] = []string{nc.Name, strconv.Itoa(nc.Count)}
	}
	return render([]string{"Column", header}, rows)
}

// SummaryTable renders one row per treated column.
func SummaryTable(s dataprep.Summary) string {
	rows := make([][]string, len(s.Records))
	for i, r := range s.Records {
		rows[i] = []string{r.Column, fmt.Sprintf("%.2f", r.MissingPct), r.Treatment.String(), r.Method()}
	}
	return render([]string{"Column", "% Missing", "Strategy", "Imputation"}, rows)
}

// OutlierTable renders the outlier treatment per column.
func OutlierTable(r dataprep.OutlierReport) string {
	rows := make([][]string, len(r.Columns))
	for i, c := range r.Columns {
		method := c.Method.String()
		if c.Degenerate {
			method += " (constant)"
		}
		rows[i] = []string{
			c.Column,
			method,
			num(c.Skew),
			num(c.Bounds.Lower),
			num(c.Bounds.Upper),
			strconv.Itoa(c.Flagged),
		}
	}
	out := render([]string{"Column", "Method", "Skew", "Lower", "Upper", "Flagged"}, rows)
	return out + "\n" + fmt.Sprintf("total flagged: %d (indicator suffix %q)", r.TotalFlagged(), r.Suffix)
}

// DescribeTable renders count, mean, std, min, quartiles and max of every
// numeric column, ignoring missing values.
func DescribeTable(ds *dataset.Dataset) string {
	var rows [][]string
	for _, c := range ds.NumericColumns() {
		d := stats.Describe(c.Present())
		rows = append(rows, []string{
			c.Name,
			strconv.Itoa(d.Count),
			num(d.Mean), num(d.Std), num(d.Min),
			num(d.Q1), num(d.Q2), num(d.Q3), num(d.Max),
		})
	}
	return render([]string{"Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, rows)
}

// Join stacks titled sections.
func Join(sections ...string) string {
	return strings.Join(sections, "\n")
}
