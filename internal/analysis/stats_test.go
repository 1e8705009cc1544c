package analysis

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %v, want 0", got)
	}
	if got := mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("mean = %v, want 4", got)
	}
}

func TestStdDev(t *testing.T) {
	if got := stdDev([]float64{5}); got != 0 {
		t.Errorf("stdDev of one value = %v, want 0", got)
	}
	// Sample standard deviation of {2,4,4,4,5,5,7,9} is ~2.138.
	got := stdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.138) > 0.001 {
		t.Errorf("stdDev = %v, want ~2.138", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if got := coefficientOfVariation([]float64{0, 0}); got != 0 {
		t.Errorf("cv of zeros = %v, want 0", got)
	}
	if got := coefficientOfVariation([]float64{10, 10, 10}); got != 0 {
		t.Errorf("cv of constants = %v, want 0", got)
	}
}

func TestLinearRegression(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		xs := []float64{0, 1, 2, 3}
		ys := []float64{1, 3, 5, 7} // y = 2x + 1
		slope, intercept := linearRegression(xs, ys)
		if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
			t.Errorf("fit = %v, %v, want 2, 1", slope, intercept)
		}
	})

	t.Run("too few points", func(t *testing.T) {
		slope, intercept := linearRegression([]float64{1}, []float64{2})
		if slope != 0 || intercept != 0 {
			t.Errorf("fit = %v, %v, want 0, 0", slope, intercept)
		}
	})

	t.Run("vertical data has no slope", func(t *testing.T) {
		slope, intercept := linearRegression([]float64{3, 3, 3}, []float64{1, 2, 3})
		if slope != 0 || intercept != 2 {
			t.Errorf("fit = %v, %v, want 0, 2", slope, intercept)
		}
	})
}

func TestRounding(t *testing.T) {
	if got := round2(1.005); got != 1.0 && got != 1.01 {
		t.Errorf("round2(1.005) = %v", got)
	}
	if got := round2(1.888); got != 1.89 {
		t.Errorf("round2(1.888) = %v, want 1.89", got)
	}
	if got := round1(3.44); got != 3.4 {
		t.Errorf("round1(3.44) = %v, want 3.4", got)
	}
	if got := clamp(5, 0, 1); got != 1 {
		t.Errorf("clamp(5,0,1) = %v, want 1", got)
	}
	if got := clamp(-5, 0, 1); got != 0 {
		t.Errorf("clamp(-5,0,1) = %v, want 0", got)
	}
}
