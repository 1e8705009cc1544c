package analysis

import (
	"math"
	"sort"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// ConfidenceInterval brackets a prediction between a good-day and a
// rough-day outcome, both in seconds.
type ConfidenceInterval struct {
	Optimistic   int `json:"optimistic"`
	Conservative int `json:"conservative"`
}

// RacePrediction is a projected finishing time for a target distance.
// Confidence 0 with zero times is the insufficient-data sentinel.
type RacePrediction struct {
	DistanceMeters   float64            `json:"distance"`
	PredictedSeconds int                `json:"predictedTime"`
	PredictedPace    float64            `json:"predictedPace"` // sec/km
	Confidence       float64            `json:"confidence"`
	Interval         ConfidenceInterval `json:"confidenceInterval"`
	SampleSize       int                `json:"sampleSize"`
}

// PredictRaceTime projects a race time from the runs nearest the target
// distance, Riegel-scaled to the target, then nudged by current form
// (TSB and CTL ramp). The interval comes from the spread of the scaled
// paces. Requires PredictionMinRuns usable runs and fitness data; below
// that it returns the zero-confidence sentinel.
func PredictRaceTime(runs []store.Run, targetDistanceMeters float64, fitness FitnessMetrics, phys Physiology) RacePrediction {
	prediction := RacePrediction{DistanceMeters: targetDistanceMeters}
	if targetDistanceMeters <= 0 {
		return prediction
	}

	usable := predictionRuns(runs)
	prediction.SampleSize = len(usable)
	if len(usable) < PredictionMinRuns || fitness.DaysOfData == 0 {
		return prediction
	}

	// Nearest runs by log-distance ratio; a 5k and a 20k are equally
	// "far" from a 10k target.
	sort.Slice(usable, func(i, j int) bool {
		return distanceGap(usable[i].Distance, targetDistanceMeters) < distanceGap(usable[j].Distance, targetDistanceMeters)
	})
	sample := usable
	if len(sample) > PredictionSampleSize {
		sample = sample[:PredictionSampleSize]
	}

	// Riegel-scale each sampled performance to the target distance.
	targetKm := targetDistanceMeters / 1000.0
	scaledPaces := make([]float64, 0, len(sample))
	for _, r := range sample {
		scaledTime := float64(r.MovingTime) * math.Pow(targetDistanceMeters/r.Distance, RiegelExponent)
		scaledPaces = append(scaledPaces, scaledTime/targetKm)
	}

	pace := mean(scaledPaces) * formFactor(fitness)
	seconds := int(math.Round(pace * targetKm))

	// Historical variability bounds the interval.
	spread := stdDev(scaledPaces)
	optimistic := int(math.Round((pace - spread) * targetKm))
	conservative := int(math.Round((pace + spread) * targetKm))
	if optimistic < 0 {
		optimistic = 0
	}

	prediction.PredictedSeconds = seconds
	prediction.PredictedPace = round1(pace)
	prediction.Interval = ConfidenceInterval{Optimistic: optimistic, Conservative: conservative}
	prediction.Confidence = round2(predictionConfidence(sample, targetDistanceMeters, fitness))
	return prediction
}

// predictionRuns keeps runs with a meaningful pace over race-relevant
// distances.
func predictionRuns(runs []store.Run) []store.Run {
	var out []store.Run
	for _, r := range runs {
		if r.Distance >= 1000 && r.Distance <= 50000 && r.PaceSecPerKm() > 0 {
			out = append(out, r)
		}
	}
	return out
}

func distanceGap(distance, target float64) float64 {
	return math.Abs(math.Log(distance / target))
}

// formFactor converts current form into a small pace multiplier. Fresh
// (high TSB) predicts slightly faster, a heavy fatigue hole slightly
// slower, and a positive CTL ramp a touch faster.
func formFactor(fitness FitnessMetrics) float64 {
	factor := 1.0
	switch {
	case fitness.TSB > 10:
		factor *= 0.985
	case fitness.TSB < -15:
		factor *= 1.02
	}
	if fitness.RampRate > 0 {
		factor *= 1.0 - clamp(fitness.RampRate, 0, 5)*0.002
	}
	return factor
}

// predictionConfidence blends sample size, how far the target sits from
// the sampled distances, and fitness-model confidence. Extrapolation
// discounts mirror the distance-ratio bands used for PR-based
// predictions.
func predictionConfidence(sample []store.Run, targetDistanceMeters float64, fitness FitnessMetrics) float64 {
	score := clamp(float64(len(sample))/float64(PredictionFullDataRuns), 0, 1)

	// Distance extrapolation ratio against the closest sampled run.
	ratio := math.Exp(distanceGap(sample[0].Distance, targetDistanceMeters))
	switch {
	case ratio > 4:
		score *= 0.7
	case ratio > 2:
		score *= 0.85
	case ratio > 1.5:
		score *= 0.95
	}

	// Low fitness-model confidence drags the prediction down too.
	score *= 0.5 + 0.5*fitness.Confidence

	return score
}
