package service

import "math"

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance returns the population variance of values, or 0 for an empty
// slice.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

// pearsonCorrelation computes the Pearson correlation coefficient between
// two equal-length series:
//
//	r = (nΣxy − ΣxΣy) / sqrt((nΣx² − (Σx)²)(nΣy² − (Σy)²))
//
// Fewer than 2 paired points, mismatched lengths, or zero variance in
// either series all yield 0 rather than an error, so that partial data
// never blocks a whole analytics snapshot.
func pearsonCorrelation(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	fn := float64(n)
	denom := math.Sqrt((fn*sumXX - sumX*sumX) * (fn*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}
