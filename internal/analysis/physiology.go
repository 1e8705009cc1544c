package analysis

import (
	"github.com/surendranb/runsight-core-sub000/internal/config"
)

// Physiology is the resolved heart-rate profile used by every HR-based
// calculation. Missing profile fields are estimated, never silently
// treated as measured: each estimate is flagged and lowers Confidence.
type Physiology struct {
	RestingHR float64
	MaxHR     float64

	RestingHREstimated bool
	MaxHREstimated     bool

	// Confidence in the resolved values, 1.0 when both were supplied.
	Confidence float64
}

// Resting-HR defaults by self-reported fitness level. Fitter athletes
// tend toward lower resting rates.
var restingHRByFitness = map[config.FitnessLevel]float64{
	config.FitnessBeginner:     70,
	config.FitnessIntermediate: 62,
	config.FitnessAdvanced:     55,
	config.FitnessElite:        48,
}

// ResolvePhysiology fills in a usable resting/max HR pair from whatever
// the profile provides. Max HR falls back to the Tanaka estimate
// (208 - 0.7 x age) when age is known, then to a population default.
func ResolvePhysiology(profile config.AthleteProfile) Physiology {
	p := Physiology{Confidence: 1.0}

	switch {
	case profile.MaxHR != nil && *profile.MaxHR >= MinValidHeartrate && *profile.MaxHR <= MaxValidHeartrate:
		p.MaxHR = *profile.MaxHR
	case profile.Age != nil && *profile.Age > 0:
		p.MaxHR = TanakaBase - TanakaAgeFactor*float64(*profile.Age)
		p.MaxHREstimated = true
		p.Confidence *= 0.85
	default:
		p.MaxHR = DefaultMaxHR
		p.MaxHREstimated = true
		p.Confidence *= 0.7
	}

	switch {
	case profile.RestingHR != nil && *profile.RestingHR >= MinValidHeartrate && *profile.RestingHR < p.MaxHR:
		p.RestingHR = *profile.RestingHR
	default:
		if hr, ok := restingHRByFitness[profile.FitnessLevel]; ok {
			p.RestingHR = hr
			p.Confidence *= 0.85
		} else {
			p.RestingHR = DefaultRestingHR
			p.Confidence *= 0.7
		}
		p.RestingHREstimated = true
	}

	return p
}

// Reserve returns the heart-rate reserve (max - resting), or 0 when the
// resolved values are degenerate.
func (p Physiology) Reserve() float64 {
	r := p.MaxHR - p.RestingHR
	if r <= 0 {
		return 0
	}
	return r
}

// ReserveRatio maps a heart rate onto the [0,1] reserve scale.
// Returns (0, false) when the reserve is degenerate.
func (p Physiology) ReserveRatio(hr float64) (float64, bool) {
	reserve := p.Reserve()
	if reserve == 0 {
		return 0, false
	}
	return clamp((hr-p.RestingHR)/reserve, 0, 1), true
}
