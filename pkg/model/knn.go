package model

import (
	"errors"
	"math"
	"runtime"
	"sort"
	"sync"
)

// KNN predicts the mean target of the K nearest training rows.
// Feature vectors may contain NaN; distances only use coordinates
// present in both rows (nan-Euclidean distance).
type KNN struct {
	K int
	X [][]float64
	y []float64
}

// NewKNN creates and returns a new KNN model.
func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

// Fit stores the training data and targets.
func (m *KNN) Fit(X [][]float64, y []float64) error {
	if len(X) != len(y) {
		return errors.New("the number of feature vectors must match the number of targets")
	}
	if m.K < 1 {
		return errors.New("k must be at least 1")
	}
	m.X = X
	m.y = y
	return nil
}

// Predict returns one prediction per row of X. Rows that share no
// observed coordinate with any training row predict NaN.
func (m *KNN) Predict(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}

	out := make([]float64, len(X))
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				out[i] = m.predictSingle(X[i])
			}
		}(start, end)
	}

	wg.Wait()
	return out
}

func (m *KNN) predictSingle(xi []float64) float64 {
	type pair struct {
		d float64
		v float64
	}

	// sorted slice of the K nearest so far
	nbrs := make([]pair, 0, m.K+1)

	for j, xj := range m.X {
		d := NanEuclidean(xi, xj)
		if math.IsNaN(d) {
			continue
		}
		neighbor := pair{d: d, v: m.y[j]}

		if len(nbrs) < m.K {
			nbrs = append(nbrs, neighbor)
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if d < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = neighbor
			sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}

	if len(nbrs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, p := range nbrs {
		sum += p.v
	}
	return sum / float64(len(nbrs))
}

// NanEuclidean is the Euclidean distance over coordinates present in both
// vectors, scaled up by total/present coordinates. It is NaN when no
// coordinate is shared.
func NanEuclidean(a, b []float64) float64 {
	sum := 0.0
	present := 0
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d := a[i] - b[i]
		sum += d * d
		present++
	}
	if present == 0 {
		return math.NaN()
	}
	return math.Sqrt(float64(len(a)) / float64(present) * sum)
}
