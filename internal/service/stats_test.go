package service

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if got := mean([]float64{6, 7, 8}); got != 7.0 {
		t.Errorf("expected mean 7.0, got %f", got)
	}
	if got := mean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestVariance(t *testing.T) {
	// Population variance of {2, 4, 6} around mean 4 is 8/3.
	if got := variance([]float64{2, 4, 6}); !almostEqual(got, 8.0/3.0) {
		t.Errorf("expected variance %f, got %f", 8.0/3.0, got)
	}
	if got := variance([]float64{5, 5, 5}); got != 0 {
		t.Errorf("expected 0 variance for constant series, got %f", got)
	}
	if got := variance(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestPearsonCorrelation_PerfectPositive(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	if got := pearsonCorrelation(xs, ys); !almostEqual(got, 1.0) {
		t.Errorf("expected r=1, got %f", got)
	}
}

func TestPearsonCorrelation_PerfectNegative(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{8, 6, 4, 2}
	if got := pearsonCorrelation(xs, ys); !almostEqual(got, -1.0) {
		t.Errorf("expected r=-1, got %f", got)
	}
}

func TestPearsonCorrelation_Symmetry(t *testing.T) {
	xs := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	ys := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	if pearsonCorrelation(xs, ys) != pearsonCorrelation(ys, xs) {
		t.Error("correlation(x, y) should equal correlation(y, x)")
	}
}

func TestPearsonCorrelation_ConstantSeries(t *testing.T) {
	constant := []float64{4, 4, 4, 4}
	varying := []float64{1, 5, 2, 9}
	if got := pearsonCorrelation(constant, varying); got != 0 {
		t.Errorf("expected 0 for zero-variance series, got %f", got)
	}
	if got := pearsonCorrelation(varying, constant); got != 0 {
		t.Errorf("expected 0 for zero-variance series, got %f", got)
	}
}

func TestPearsonCorrelation_TooFewPoints(t *testing.T) {
	if got := pearsonCorrelation([]float64{1}, []float64{2}); got != 0 {
		t.Errorf("expected 0 for a single pair, got %f", got)
	}
	if got := pearsonCorrelation(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty series, got %f", got)
	}
}

func TestPearsonCorrelation_MismatchedLengths(t *testing.T) {
	if got := pearsonCorrelation([]float64{1, 2, 3}, []float64{1, 2}); got != 0 {
		t.Errorf("expected 0 for mismatched lengths, got %f", got)
	}
}
