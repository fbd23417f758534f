package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanMedianMode(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		mean   float64
		median float64
		mode   float64
	}{
		{name: "empty", in: nil},
		{name: "odd", in: []float64{3, 1, 2}, mean: 2, median: 2, mode: 1},
		{name: "even", in: []float64{4, 1, 3, 2}, mean: 2.5, median: 2.5, mode: 1},
		{name: "repeated", in: []float64{1, 2, 2, 3, 3, 5}, mean: 16.0 / 6, median: 2.5, mode: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.mean, Mean(tt.in), 1e-12)
			assert.InDelta(t, tt.median, Median(tt.in), 1e-12)
			assert.Equal(t, tt.mode, Mode(tt.in))
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "a", ModeString([]string{"b", "a", "b", "a"}))
	assert.Equal(t, "b", ModeString([]string{"b", "a", "b"}))
	assert.Equal(t, "", ModeString(nil))
}

func TestVarianceAndStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 4.0, Variance(x), 1e-12)
	assert.InDelta(t, 2.0, Std(x), 1e-12)

	mean, std := MeanStd(x)
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.0, std, 1e-12)
}

func TestPercentile(t *testing.T) {
	x := []float64{100, 5, 4, 3, 2, 1}
	q1, q3 := Quartiles(x)
	assert.InDelta(t, 2.25, q1, 1e-12)
	assert.InDelta(t, 4.75, q3, 1e-12)
	assert.Equal(t, 1.0, Percentile(x, 0))
	assert.Equal(t, 100.0, Percentile(x, 100))
	assert.InDelta(t, 3.5, Percentile(x, 50), 1e-12)
}

func TestSkew(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, 0, Skew([]float64{1, 2, 3, 4, 5}), 1e-12)
	})
	t.Run("right tail", func(t *testing.T) {
		assert.Greater(t, Skew([]float64{1, 2, 3, 4, 5, 100}), 0.5)
	})
	t.Run("left tail", func(t *testing.T) {
		assert.Less(t, Skew([]float64{-100, 1, 2, 3, 4, 5}), -0.5)
	})
	t.Run("constant is zero", func(t *testing.T) {
		s := Skew([]float64{7, 7, 7, 7})
		assert.False(t, math.IsNaN(s))
		assert.Equal(t, 0.0, s)
	})
	t.Run("too few values", func(t *testing.T) {
		assert.Equal(t, 0.0, Skew([]float64{1, 9}))
	})
	t.Run("matches adjusted Fisher-Pearson", func(t *testing.T) {
		// G1 of {1, 2, 10}: g1 = m3/m2^1.5, G1 = g1*sqrt(n(n-1))/(n-2)
		x := []float64{1, 2, 10}
		mean := 13.0 / 3
		var m2, m3 float64
		for _, v := range x {
			d := v - mean
			m2 += d * d / 3
			m3 += d * d * d / 3
		}
		want := m3 / math.Pow(m2, 1.5) * math.Sqrt(6) / 1
		assert.InDelta(t, want, Skew(x), 1e-9)
	})
}

func TestDescribe(t *testing.T) {
	d := Describe([]float64{4, 1, 3, 2})
	assert.Equal(t, 4, d.Count)
	assert.InDelta(t, 2.5, d.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3), d.Std, 1e-12)
	assert.Equal(t, 1.0, d.Min)
	assert.InDelta(t, 1.75, d.Q1, 1e-12)
	assert.InDelta(t, 2.5, d.Q2, 1e-12)
	assert.InDelta(t, 3.25, d.Q3, 1e-12)
	assert.Equal(t, 4.0, d.Max)

	assert.Equal(t, Description{}, Describe(nil))
}
