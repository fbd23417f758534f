package dataprep

import (
	"log/slog"
	"math"

	"diabprep/pkg/dataset"
	"diabprep/pkg/stats"
)

// Record is one row of the treatment summary.
type Record struct {
	Column     string
	MissingPct float64 // rounded to 2 decimals
	Treatment  Treatment
	Strategy   Strategy
}

// Method names the imputation method applied.
func (r Record) Method() string { return r.Strategy.Method() }

// Summary describes what the missingness resolver did.
type Summary struct {
	Records []Record
	// Missing counts per column: as received, after zeros became
	// missing, and after treatment.
	MissingBefore     []dataset.NamedCount
	MissingAfterZeros []dataset.NamedCount
	MissingAfter      []dataset.NamedCount
}

// Dropped returns the names of dropped columns.
func (s Summary) Dropped() []string {
	var out []string
	for _, r := range s.Records {
		if r.Treatment == TreatmentDrop {
			out = append(out, r.Column)
		}
	}
	return out
}

// ResolveMissingness treats zeros in the target columns as missing and
// routes each target column to simple imputation, KNN imputation, removal,
// or no treatment according to its missingness percentage.
//
// The input dataset is never modified. On error no dataset is returned.
func ResolveMissingness(ds *dataset.Dataset, targets []string, th Thresholds) (*dataset.Dataset, Summary, error) {
	if err := th.Validate(); err != nil {
		return nil, Summary{}, err
	}
	for _, name := range targets {
		if !ds.Has(name) {
			return nil, Summary{}, columnErr(StageMissingness, name, ErrColumnNotFound)
		}
	}

	work := ds.Clone()
	summary := Summary{MissingBefore: work.MissingCounts()}

	for _, name := range targets {
		col, _ := work.Column(name)
		if col.Kind == dataset.Numeric {
			for i, v := range col.Nums {
				if v == 0 {
					col.Nums[i] = math.NaN()
				}
			}
		}
	}
	summary.MissingAfterZeros = work.MissingCounts()

	rows := work.Rows()
	for _, name := range targets {
		col, ok := work.Column(name)
		if !ok {
			// listed twice and already dropped
			continue
		}
		pct := 0.0
		if rows > 0 {
			pct = float64(col.MissingCount()) * 100 / float64(rows)
		}
		treatment := SelectTreatment(pct, th)

		strategy, err := applyTreatment(work, col, treatment, th)
		if err != nil {
			return nil, Summary{}, columnErr(StageMissingness, name, err)
		}

		slog.Debug("missingness resolved",
			slog.String("column", name),
			slog.Float64("missing_pct", pct),
			slog.String("treatment", treatment.String()),
			slog.String("method", strategy.Method()))

		summary.Records = append(summary.Records, Record{
			Column:     name,
			MissingPct: round2(pct),
			Treatment:  treatment,
			Strategy:   strategy,
		})
	}
	summary.MissingAfter = work.MissingCounts()

	slog.Info("missingness resolution finished",
		slog.Int("columns", len(summary.Records)),
		slog.Int("dropped", len(summary.Dropped())),
		slog.Int("rows", rows))

	return work, summary, nil
}

func applyTreatment(work *dataset.Dataset, col *dataset.Column, treatment Treatment, th Thresholds) (Strategy, error) {
	switch treatment {
	case TreatmentSimple:
		if col.Kind == dataset.Categorical {
			return StrategySimpleMode, ImputeMode(col)
		}
		nums := col.Present()
		if len(nums) == 0 {
			return StrategyNone, ErrEmptyColumn
		}
		strategy := SimpleStrategy(stats.Skew(nums), th)
		if strategy == StrategySimpleMedian {
			return strategy, ImputeMedian(col)
		}
		return strategy, ImputeMean(col)

	case TreatmentAdvanced:
		if col.Kind == dataset.Categorical {
			// neighbours are numeric only
			return StrategySimpleMode, ImputeMode(col)
		}
		features := knnFeatures(work, col, th.KNNMode)
		return StrategyKNN, ImputeKNN(col, features, th.NeighborCount)

	case TreatmentDrop:
		work.Drop(col.Name)
		return StrategyDrop, nil

	default:
		return StrategyNone, nil
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
