package analysis

import (
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// ACWRStatus classifies the acute:chronic workload ratio.
type ACWRStatus string

const (
	ACWROptimal    ACWRStatus = "optimal"
	ACWRCaution    ACWRStatus = "caution"
	ACWRHighRisk   ACWRStatus = "high-risk"
	ACWRDetraining ACWRStatus = "detraining"
)

// ACWRResult is the outcome of an acute:chronic workload calculation.
// With fewer than ACWRMinDays distinct load days the result is the
// deterministic insufficient-data sentinel: ratio 0, detraining,
// confidence 0. Never a partial estimate.
type ACWRResult struct {
	ACWR        float64    `json:"acwr"`
	Status      ACWRStatus `json:"status"`
	AcuteLoad   float64    `json:"acuteLoad"`
	ChronicLoad float64    `json:"chronicLoad"`
	Confidence  float64    `json:"confidence"`
	DaysOfData  int        `json:"daysOfData"`
}

// CalculateACWR computes the 7-day vs 28-day workload ratio over the
// given runs for the chosen metric. Windows are calendar-day windows
// anchored at the most recent load day; the acute load is the mean
// daily load over the trailing 7 days, the chronic over 28.
func CalculateACWR(runs []store.Run, metric Metric, phys Physiology) ACWRResult {
	loads := AggregateDailyLoad(runs, metric, phys)
	return calculateACWRFromLoads(loads)
}

func calculateACWRFromLoads(loads []DailyLoad) ACWRResult {
	days := len(loads)
	if days < ACWRMinDays {
		return ACWRResult{Status: ACWRDetraining, DaysOfData: days}
	}

	// loads are sorted most recent first
	latest := loads[0].Date
	acuteCutoff := latest.AddDate(0, 0, -(ACWRAcuteWindowDays - 1))
	chronicCutoff := latest.AddDate(0, 0, -(ACWRChronicWindowDays - 1))

	var acuteSum, chronicSum float64
	for _, dl := range loads {
		if !dl.Date.Before(chronicCutoff) {
			chronicSum += dl.Value
		}
		if !dl.Date.Before(acuteCutoff) {
			acuteSum += dl.Value
		}
	}

	acute := acuteSum / float64(ACWRAcuteWindowDays)
	chronic := chronicSum / float64(ACWRChronicWindowDays)

	var ratio float64
	if chronic > 0 {
		ratio = round2(acute / chronic)
	}

	return ACWRResult{
		ACWR:        ratio,
		Status:      classifyACWR(ratio),
		AcuteLoad:   round2(acute),
		ChronicLoad: round2(chronic),
		Confidence:  clamp(float64(days)/float64(ACWRFullDataDays), 0, 1),
		DaysOfData:  days,
	}
}

// classifyACWR maps a rounded ratio onto its band. Boundaries are
// inclusive on the lower side of each band: 0.80 is optimal, 1.30 is
// optimal, 1.31 is caution, 1.50 is caution, 1.51 is high-risk.
func classifyACWR(ratio float64) ACWRStatus {
	switch {
	case ratio < ACWRDetrainingBelow:
		return ACWRDetraining
	case ratio <= ACWROptimalMax:
		return ACWROptimal
	case ratio <= ACWRCautionMax:
		return ACWRCaution
	default:
		return ACWRHighRisk
	}
}
