package analysis

import (
	"math"
	"testing"
)

func TestPredictRaceTimeInsufficientData(t *testing.T) {
	phys := defaultTestPhysiology()

	t.Run("too few runs", func(t *testing.T) {
		runs := dailyRuns(5, 10000, 3000, floatPtr(145))
		fitness := CalculateFitnessMetrics(runs, phys)

		got := PredictRaceTime(runs, Distance10K, fitness, phys)
		if got.PredictedSeconds != 0 || got.Confidence != 0 {
			t.Errorf("got %d seconds at confidence %v, want zero sentinel", got.PredictedSeconds, got.Confidence)
		}
		if got.SampleSize != 5 {
			t.Errorf("SampleSize = %d, want 5", got.SampleSize)
		}
	})

	t.Run("no fitness data", func(t *testing.T) {
		// Plenty of runs but none with HR: fitness model stays empty.
		runs := dailyRuns(20, 10000, 3000, nil)
		fitness := CalculateFitnessMetrics(runs, phys)

		got := PredictRaceTime(runs, Distance10K, fitness, phys)
		if got.PredictedSeconds != 0 || got.Confidence != 0 {
			t.Errorf("got %d seconds at confidence %v, want zero sentinel", got.PredictedSeconds, got.Confidence)
		}
	})

	t.Run("zero distance", func(t *testing.T) {
		got := PredictRaceTime(nil, 0, FitnessMetrics{}, phys)
		if got.PredictedSeconds != 0 {
			t.Errorf("PredictedSeconds = %d, want 0", got.PredictedSeconds)
		}
	})
}

func TestPredictRaceTimeFromSteadyHistory(t *testing.T) {
	phys := defaultTestPhysiology()
	runs := dailyRuns(42, 10000, 3000, floatPtr(145))
	fitness := CalculateFitnessMetrics(runs, phys)

	got := PredictRaceTime(runs, Distance10K, fitness, phys)

	// Identical 10k history should predict close to the trained pace,
	// give or take the form factor.
	if math.Abs(float64(got.PredictedSeconds)-3000) > 3000*0.05 {
		t.Errorf("PredictedSeconds = %d, want within 5%% of 3000", got.PredictedSeconds)
	}
	if got.Interval.Optimistic > got.PredictedSeconds || got.PredictedSeconds > got.Interval.Conservative {
		t.Errorf("prediction %d outside interval [%d, %d]",
			got.PredictedSeconds, got.Interval.Optimistic, got.Interval.Conservative)
	}
	if got.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", got.Confidence)
	}
	if got.PredictedPace <= 0 {
		t.Errorf("PredictedPace = %v, want > 0", got.PredictedPace)
	}
}

func TestPredictRaceTimeScalesWithRiegel(t *testing.T) {
	phys := defaultTestPhysiology()
	runs := dailyRuns(42, 10000, 3000, floatPtr(145))
	fitness := CalculateFitnessMetrics(runs, phys)

	tenK := PredictRaceTime(runs, Distance10K, fitness, phys)
	half := PredictRaceTime(runs, DistanceHalfMara, fitness, phys)

	// Pace degrades with distance under the power law.
	if half.PredictedPace <= tenK.PredictedPace {
		t.Errorf("half-marathon pace %v, want slower than 10k pace %v", half.PredictedPace, tenK.PredictedPace)
	}

	// Riegel scaling of the same sample: half time ~ 10k time x (21.0975/10)^1.06.
	wantRatio := math.Pow(DistanceHalfMara/Distance10K, RiegelExponent)
	gotRatio := float64(half.PredictedSeconds) / float64(tenK.PredictedSeconds)
	if math.Abs(gotRatio-wantRatio) > 0.02 {
		t.Errorf("half/10k time ratio = %v, want ~%v", gotRatio, wantRatio)
	}
}

func TestPredictionConfidenceDropsWithExtrapolation(t *testing.T) {
	phys := defaultTestPhysiology()
	runs := dailyRuns(42, 10000, 3000, floatPtr(145))
	fitness := CalculateFitnessMetrics(runs, phys)

	tenK := PredictRaceTime(runs, Distance10K, fitness, phys)
	marathon := PredictRaceTime(runs, DistanceMarathon, fitness, phys)

	if marathon.Confidence >= tenK.Confidence {
		t.Errorf("marathon confidence %v, want below 10k confidence %v", marathon.Confidence, tenK.Confidence)
	}
}

func TestPredictRaceTimeIdempotent(t *testing.T) {
	phys := defaultTestPhysiology()
	runs := dailyRuns(42, 10000, 3000, floatPtr(145))
	fitness := CalculateFitnessMetrics(runs, phys)

	first := PredictRaceTime(runs, Distance10K, fitness, phys)
	second := PredictRaceTime(runs, Distance10K, fitness, phys)
	if first != second {
		t.Errorf("repeated prediction differs: %+v vs %+v", first, second)
	}
}
