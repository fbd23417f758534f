package dataprep

import (
	"fmt"
	"math"

	"diabprep/pkg/dataset"
	"diabprep/pkg/model"
	"diabprep/pkg/stats"
)

// ---------- Simple Imputation Methods ----------

// ImputeMean replaces missing numeric values with the column mean.
func ImputeMean(col *dataset.Column) error {
	nums := col.Present()
	if len(nums) == 0 {
		return ErrEmptyColumn
	}
	fillNumeric(col, stats.Mean(nums))
	return nil
}

// ImputeMedian replaces missing numeric values with the column median.
func ImputeMedian(col *dataset.Column) error {
	nums := col.Present()
	if len(nums) == 0 {
		return ErrEmptyColumn
	}
	fillNumeric(col, stats.Median(nums))
	return nil
}

// ImputeMode replaces missing values with the most frequent one.
// Works for both numeric and categorical columns.
func ImputeMode(col *dataset.Column) error {
	if col.Kind == dataset.Categorical {
		vals := col.PresentCats()
		if len(vals) == 0 {
			return ErrEmptyColumn
		}
		mode := stats.ModeString(vals)
		for i, v := range col.Cats {
			if v == "" {
				col.Cats[i] = mode
			}
		}
		return nil
	}
	nums := col.Present()
	if len(nums) == 0 {
		return ErrEmptyColumn
	}
	fillNumeric(col, stats.Mode(nums))
	return nil
}

func fillNumeric(col *dataset.Column, v float64) {
	for i, x := range col.Nums {
		if math.IsNaN(x) {
			col.Nums[i] = v
		}
	}
}

// ---------- Advanced Imputation Methods ----------

// ImputeKNN fills missing values of col with the mean target of the k nearest
// donor rows, where features[r] is the feature vector of row r. Receivers with
// no usable distance to any donor take the donor mean.
func ImputeKNN(col *dataset.Column, features [][]float64, k int) error {
	if col.Kind != dataset.Numeric {
		return fmt.Errorf("knn imputation needs a numeric column, got %s", col.Kind)
	}
	if len(features) != len(col.Nums) {
		return fmt.Errorf("feature rows %d do not match column length %d", len(features), len(col.Nums))
	}

	var (
		donorX    [][]float64
		donorY    []float64
		receivers []int
	)
	for r, v := range col.Nums {
		if math.IsNaN(v) {
			receivers = append(receivers, r)
			continue
		}
		donorX = append(donorX, features[r])
		donorY = append(donorY, v)
	}
	if len(receivers) == 0 {
		return nil
	}
	if len(donorY) == 0 {
		return ErrEmptyColumn
	}
	if len(donorY) < k {
		return fmt.Errorf("%w: %d non-missing rows, need at least %d neighbours", ErrInsufficientData, len(donorY), k)
	}

	knn := model.NewKNN(k)
	if err := knn.Fit(donorX, donorY); err != nil {
		return err
	}
	queries := make([][]float64, len(receivers))
	for i, r := range receivers {
		queries[i] = features[r]
	}
	preds := knn.Predict(queries)

	fallback := stats.Mean(donorY)
	for i, r := range receivers {
		if math.IsNaN(preds[i]) {
			col.Nums[r] = fallback
			continue
		}
		col.Nums[r] = preds[i]
	}
	return nil
}

// knnFeatures builds the per-row feature vectors for advanced imputation.
func knnFeatures(ds *dataset.Dataset, target *dataset.Column, mode KNNMode) [][]float64 {
	var cols []*dataset.Column
	if mode == KNNMultivariate {
		cols = ds.NumericColumns()
	} else {
		cols = []*dataset.Column{target}
	}
	out := make([][]float64, ds.Rows())
	for r := range out {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.Nums[r]
		}
		out[r] = row
	}
	return out
}
