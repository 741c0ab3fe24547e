package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Statistics accumulates a sample of observations
type Statistics struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add incorporates a new observation
func (s *Statistics) Add(x float64) {
	s.N++
	s.Sum += x
	s.SumSq += x * x
	s.Values = append(s.Values, x)
}

// Mean returns the arithmetic mean of all observations
func (s *Statistics) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance of all observations
func (s *Statistics) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ZScore returns how many standard errors the mean lies from mu. A sample
// with no spread is infinitely far from any mu other than its mean.
func (s *Statistics) ZScore(mu float64) float64 {
	mean, se := s.Mean(), s.StdError()
	if se == 0 {
		switch {
		case mean == mu:
			return 0
		case mean > mu:
			return math.Inf(1)
		default:
			return math.Inf(-1)
		}
	}
	return (mean - mu) / se
}

// Median returns the median value of all observations
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the running sums agree with the stored sample
func (s *Statistics) Validate() error {
	if s.N <= 0 {
		return fmt.Errorf("invalid sample size: %d", s.N)
	}
	if len(s.Values) != s.N {
		return fmt.Errorf("values array length (%d) does not match sample size (%d)",
			len(s.Values), s.N)
	}

	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6*math.Max(1, math.Abs(sum)) {
		return fmt.Errorf("sum mismatch: running=%.6f, recomputed=%.6f", s.Sum, sum)
	}
	return nil
}
