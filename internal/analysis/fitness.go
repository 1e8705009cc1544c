package analysis

import (
	"time"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// FitnessPoint is one day of the CTL/ATL/TSB trend.
type FitnessPoint struct {
	Date time.Time
	CTL  float64 // Chronic Training Load (42-day EMA) - "Fitness"
	ATL  float64 // Acute Training Load (7-day EMA) - "Fatigue"
	TSB  float64 // Training Stress Balance (CTL - ATL) - "Form"
}

// FitnessMetrics is the current state of the fitness/fatigue/form model.
// Recomputed from the full run history on every call; there is no
// persisted running state, so identical input always reproduces it.
type FitnessMetrics struct {
	CTL        float64 `json:"ctl"`
	ATL        float64 `json:"atl"`
	TSB        float64 `json:"tsb"`
	RampRate   float64 `json:"rampRate"` // CTL change over the final 7 days
	Confidence float64 `json:"confidence"`
	DaysOfData int     `json:"daysOfData"`
}

// FitnessTrend computes the day-by-day CTL/ATL/TSB series from the
// TRIMP-scored daily loads. Days without a run contribute zero load;
// the EMA decays through them.
func FitnessTrend(runs []store.Run, phys Physiology) []FitnessPoint {
	loads := AggregateDailyLoad(runs, MetricTRIMP, phys)
	if len(loads) == 0 {
		return nil
	}

	// EMA decay constants
	ctlDecay := 2.0 / (float64(CTLTimeConstantDays) + 1.0)
	atlDecay := 2.0 / (float64(ATLTimeConstantDays) + 1.0)

	// loads are most recent first; walk oldest to newest
	startDate := loads[len(loads)-1].Date
	endDate := loads[0].Date

	loadMap := make(map[string]float64, len(loads))
	for _, dl := range loads {
		loadMap[dl.Date.Format("2006-01-02")] = dl.Value
	}

	var trend []FitnessPoint
	var ctl, atl float64

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		trimp := loadMap[d.Format("2006-01-02")] // 0 on rest days

		// Exponential moving average
		ctl = ctl + ctlDecay*(trimp-ctl)
		atl = atl + atlDecay*(trimp-atl)

		trend = append(trend, FitnessPoint{
			Date: d,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
		})
	}

	return trend
}

// CalculateFitnessMetrics returns the most recent point of the fitness
// trend plus its ramp rate. Confidence scales with the span of history
// and with how much of it carried heart-rate data; callers gate
// presentation on their own "enough data" threshold.
func CalculateFitnessMetrics(runs []store.Run, phys Physiology) FitnessMetrics {
	trend := FitnessTrend(runs, phys)
	if len(trend) == 0 {
		return FitnessMetrics{}
	}

	latest := trend[len(trend)-1]

	var ramp float64
	if len(trend) > ATLTimeConstantDays {
		ramp = latest.CTL - trend[len(trend)-1-ATLTimeConstantDays].CTL
	} else {
		ramp = latest.CTL - trend[0].CTL
	}

	days := len(trend)
	confidence := clamp(float64(days)/float64(CTLTimeConstantDays), 0, 1)
	confidence *= hrCoverage(runs)

	return FitnessMetrics{
		CTL:        round1(latest.CTL),
		ATL:        round1(latest.ATL),
		TSB:        round1(latest.CTL - latest.ATL),
		RampRate:   round1(ramp),
		Confidence: round2(confidence),
		DaysOfData: days,
	}
}

// hrCoverage returns the fraction of runs carrying average heart rate.
// TRIMP-based loads are only as trustworthy as the HR data behind them.
func hrCoverage(runs []store.Run) float64 {
	if len(runs) == 0 {
		return 0
	}
	withHR := 0
	for _, r := range runs {
		if r.AverageHeartrate != nil && *r.AverageHeartrate > 0 {
			withHR++
		}
	}
	return float64(withHR) / float64(len(runs))
}

// FormDescription returns a human-readable description of TSB
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
