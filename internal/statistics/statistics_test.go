package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.ZScore(0) != 0 {
		t.Errorf("Expected z-score of 0 for empty stats, got %f", stats.ZScore(0))
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(2.5)

	if stats.N != 1 {
		t.Errorf("Expected 1 observation, got %d", stats.N)
	}
	if stats.Mean() != 2.5 {
		t.Errorf("Expected mean of 2.5, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", stats.Median())
	}
	if !math.IsInf(stats.ZScore(0), 1) {
		t.Errorf("Expected +Inf z-score for a spread-free sample, got %f", stats.ZScore(0))
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		stats.Add(v)
	}

	if math.Abs(stats.Mean()-5) > 1e-9 {
		t.Errorf("Expected mean of 5, got %f", stats.Mean())
	}
	if math.Abs(stats.Variance()-32.0/7.0) > 1e-9 {
		t.Errorf("Expected variance of %f, got %f", 32.0/7.0, stats.Variance())
	}
	// Sorted: 2 4 4 4 5 5 7 9
	if stats.Median() != 4.5 {
		t.Errorf("Expected median of 4.5, got %f", stats.Median())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(float64(i))
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(v)
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
	if z := stats.ZScore(mean); z != 0 {
		t.Errorf("Expected z-score of 0 at the mean, got %f", z)
	}
}

func TestStatistics_Validate_SumMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1)
	stats.Add(2)
	stats.Sum = 10

	if err := stats.Validate(); err == nil {
		t.Error("Expected sum mismatch error")
	}
}

func TestStatistics_Validate_LengthMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1)
	stats.Values = append(stats.Values, 2)

	if err := stats.Validate(); err == nil {
		t.Error("Expected length mismatch error")
	}
}

func TestChiSquareBytes(t *testing.T) {
	uniform := make([]byte, 1024)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	if chi := ChiSquareBytes(uniform); chi != 0 {
		t.Errorf("Expected chi-square of 0 for a flat histogram, got %f", chi)
	}

	// 256 zero bytes: one bin holds everything, expected count is 1 per bin.
	zeros := make([]byte, 256)
	if chi := ChiSquareBytes(zeros); chi != 65280 {
		t.Errorf("Expected chi-square of 65280, got %f", chi)
	}

	if chi := ChiSquareBytes(nil); chi != 0 {
		t.Errorf("Expected chi-square of 0 for empty input, got %f", chi)
	}
}

func TestChiSquareZ(t *testing.T) {
	// The mean of a chi-square variable sits close to the centre.
	if z := ChiSquareZ(ByteDegreesOfFreedom, ByteDegreesOfFreedom); math.Abs(z) > 0.1 {
		t.Errorf("Expected z close to 0, got %f", z)
	}
	if z := ChiSquareZ(65280, ByteDegreesOfFreedom); z < 50 {
		t.Errorf("Expected a large z for a degenerate histogram, got %f", z)
	}
}

func TestMonobit(t *testing.T) {
	balanced := []byte{0x0f, 0xf0, 0x33, 0x55}
	if z := Monobit(balanced); z != 0 {
		t.Errorf("Expected z of 0 for balanced bits, got %f", z)
	}

	ones := []byte{0xff}
	// 8 bits, all set: (8 - 4) / sqrt(2)
	if z := Monobit(ones); math.Abs(z-4/math.Sqrt2) > 1e-9 {
		t.Errorf("Expected z of %f, got %f", 4/math.Sqrt2, z)
	}
}

func TestXorPopCount(t *testing.T) {
	a := []uint64{0, 1, 0xdeadbeef, math.MaxUint64}

	same := XorPopCount(a, a)
	if same.Mean() != 0 {
		t.Errorf("Expected no differing bits, got mean %f", same.Mean())
	}

	inverted := make([]uint64, len(a))
	for i, w := range a {
		inverted[i] = ^w
	}
	opposite := XorPopCount(a, inverted)
	if opposite.Mean() != 64 || opposite.N != len(a) {
		t.Errorf("Expected 64 differing bits over %d words, got mean %f over %d", len(a), opposite.Mean(), opposite.N)
	}

	short := XorPopCount(a, a[:2])
	if short.N != 2 {
		t.Errorf("Expected pairs truncated to the shorter slice, got %d", short.N)
	}
}
