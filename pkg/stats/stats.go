package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	return floats.Sum(x) / float64(n)
}

// Variance computes the population variance of a slice.
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopVariance(x, nil)
}

// Std computes the population standard deviation of a slice.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// MeanStd returns the mean and population standard deviation in one pass.
func MeanStd(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(x, nil)
}

// Skew returns the adjusted Fisher-Pearson sample skewness.
// Fewer than three values or zero spread have no defined skewness and yield 0.
func Skew(x []float64) float64 {
	if len(x) < 3 {
		return 0
	}
	if _, std := stat.MeanStdDev(x, nil); std == 0 || math.IsNaN(std) {
		return 0
	}
	s := stat.Skew(x, nil)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return floats.Min(x), floats.Max(x)
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1 // bitwise division by 2
	if n&1 == 0 { // even
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Mode returns the most frequent value in the slice; ties go to the smallest value.
func Mode(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	counts := make(map[float64]int)
	maxCount := 0
	for _, v := range x {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}
	mode := math.Inf(1)
	for v, c := range counts {
		if c == maxCount && v < mode {
			mode = v
		}
	}
	return mode
}

// ModeString returns the most frequent string; ties go to the lexically smallest.
func ModeString(x []string) string {
	counts := make(map[string]int)
	maxCount := 0
	for _, v := range x {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}
	var modes []string
	for v, c := range counts {
		if c == maxCount {
			modes = append(modes, v)
		}
	}
	if len(modes) == 0 {
		return ""
	}
	sort.Strings(modes)
	return modes[0]
}

// Percentile returns the p-th percentile value of the slice (0 <= p <= 100),
// interpolating linearly between the closest ranks.
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	min, max := MinMax(x)
	if p <= 0 {
		return min
	}
	if p >= 100 {
		return max
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// Quartiles returns the 25th and 75th percentiles.
func Quartiles(x []float64) (q1, q3 float64) {
	return Percentile(x, 25), Percentile(x, 75)
}

// Description is the count/centre/spread summary of a numeric slice.
type Description struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// Describe summarizes a slice of non-missing values.
func Describe(x []float64) Description {
	d := Description{Count: len(x)}
	if len(x) == 0 {
		return d
	}
	d.Mean = Mean(x)
	if len(x) > 1 {
		_, d.Std = stat.MeanStdDev(x, nil)
	}
	d.Min, d.Max = MinMax(x)
	d.Q1 = Percentile(x, 25)
	d.Q2 = Percentile(x, 50)
	d.Q3 = Percentile(x, 75)
	return d
}
