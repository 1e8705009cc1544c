package analysis

import (
	"math"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// TRIMPScore is a single-session training impulse. Value 0 with
// Confidence 0 means the inputs required to score the run were absent;
// the calculator never substitutes a pace-based guess.
type TRIMPScore struct {
	Value      float64
	Confidence float64
}

// CalculateTRIMP computes the Banister training impulse for one run:
//
//	TRIMP = duration_min x r x 0.64 x e^(1.92 r)
//
// where r is the heart-rate reserve ratio clamped to [0,1].
func CalculateTRIMP(run store.Run, phys Physiology) TRIMPScore {
	if run.MovingTime <= 0 {
		return TRIMPScore{}
	}
	if run.AverageHeartrate == nil || *run.AverageHeartrate <= 0 {
		return TRIMPScore{}
	}

	ratio, ok := phys.ReserveRatio(*run.AverageHeartrate)
	if !ok {
		return TRIMPScore{}
	}

	durationMin := float64(run.MovingTime) / 60.0
	value := durationMin * ratio * TRIMPWeightingFactor * math.Exp(TRIMPExponent*ratio)

	return TRIMPScore{
		Value:      value,
		Confidence: phys.Confidence,
	}
}
