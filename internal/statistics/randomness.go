package statistics

import (
	"math"
	"math/bits"
)

// ByteDegreesOfFreedom is the number of degrees of freedom of ChiSquareBytes.
const ByteDegreesOfFreedom = 255

// ChiSquareBytes returns the chi-square statistic of the byte histogram of p
// against the uniform distribution over 256 values.
func ChiSquareBytes(p []byte) float64 {
	if len(p) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range p {
		counts[b]++
	}
	expected := float64(len(p)) / 256
	var chi float64
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	return chi
}

// ChiSquareZ normalises a chi-square statistic with dof degrees of freedom
// using the Wilson-Hilferty approximation.
func ChiSquareZ(chi float64, dof int) float64 {
	k := float64(dof)
	v := 2 / (9 * k)
	return (math.Cbrt(chi/k) - (1 - v)) / math.Sqrt(v)
}

// Monobit returns the z-score of the number of set bits in p.
func Monobit(p []byte) float64 {
	if len(p) == 0 {
		return 0
	}
	ones := 0
	for _, b := range p {
		ones += bits.OnesCount8(b)
	}
	n := float64(8 * len(p))
	return (float64(ones) - n/2) / math.Sqrt(n/4)
}

// XorPopCount records the number of differing bits of each word pair. For
// independent uniform streams the mean is 32 with variance 16.
func XorPopCount(a, b []uint64) *Statistics {
	n := min(len(a), len(b))
	s := &Statistics{Values: make([]float64, 0, n)}
	for i := range n {
		s.Add(float64(bits.OnesCount64(a[i] ^ b[i])))
	}
	return s
}
