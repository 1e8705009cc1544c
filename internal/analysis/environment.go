package analysis

import (
	"math"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// PaceAdjustment normalizes a run's pace for the weather it was run in.
// AdjustedPace is the estimated equivalent pace in neutral conditions,
// floored at PaceAdjustmentFloor x the original - heat never "buys"
// more than that.
type PaceAdjustment struct {
	OriginalPace float64 `json:"originalPace"` // sec/km
	AdjustedPace float64 `json:"adjustedPace"` // sec/km

	// Per-factor penalties in sec/km. Total is the floored sum actually
	// applied, temperature+humidity+wind before flooring.
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Wind        float64 `json:"wind"`
	Total       float64 `json:"total"`

	Confidence float64 `json:"confidence"`
}

// weatherPenalty computes the per-km slowdown attributable to
// conditions. Wind above the cooling threshold offsets heat; the
// combined penalty never goes negative.
func weatherPenalty(w *store.Weather) (temp, humidity, wind, total float64) {
	if w == nil {
		return 0, 0, 0, 0
	}

	if w.TemperatureC != nil {
		t := *w.TemperatureC
		if t > HeatThresholdC {
			temp = (t - HeatThresholdC) * HeatPenaltyPerC
		} else if t < ColdThresholdC {
			temp = (ColdThresholdC - t) * ColdPenaltyPerC
		}
	}

	if w.HumidityPct != nil && *w.HumidityPct > HumidityThresholdPct {
		humidity = (*w.HumidityPct - HumidityThresholdPct) / 10.0 * HumidityPenaltyPer10
	}

	if w.WindSpeedKmh != nil && *w.WindSpeedKmh > WindCoolingThreshold {
		// Cooling only matters when there is heat to offset.
		if temp+humidity > 0 {
			wind = -math.Min((*w.WindSpeedKmh-WindCoolingThreshold)*WindCoolingPerKmh, temp+humidity)
		}
	}

	total = temp + humidity + wind
	if total < 0 {
		total = 0
	}
	return temp, humidity, wind, total
}

// AdjustPaceForWeather estimates the neutral-conditions pace for a run.
// Confidence is 0.8 when both temperature and humidity readings are
// present, 0.5 when only part of the picture is available, and 0 when
// there is no weather data at all (original pace passed through).
func AdjustPaceForWeather(run store.Run, w *store.Weather) PaceAdjustment {
	original := run.PaceSecPerKm()
	adj := PaceAdjustment{
		OriginalPace: round1(original),
		AdjustedPace: round1(original),
	}
	if original <= 0 || !w.HasData() {
		return adj
	}

	temp, humidity, wind, total := weatherPenalty(w)

	adjusted := original - total
	floor := original * PaceAdjustmentFloor
	if adjusted < floor {
		adjusted = floor
	}

	adj.Temperature = round1(temp)
	adj.Humidity = round1(humidity)
	adj.Wind = round1(wind)
	adj.Total = round1(total)
	adj.AdjustedPace = round1(adjusted)

	if w.TemperatureC != nil && w.HumidityPct != nil {
		adj.Confidence = 0.8
	} else {
		adj.Confidence = 0.5
	}
	return adj
}

// ApplyWeatherToTime projects a finishing time into the given
// conditions by adding the per-km weather penalty. Used for race-day
// what-ifs on top of a neutral prediction.
func ApplyWeatherToTime(seconds int, distanceMeters float64, w *store.Weather) int {
	if seconds <= 0 || distanceMeters <= 0 || !w.HasData() {
		return seconds
	}
	_, _, _, total := weatherPenalty(w)
	return seconds + int(math.Round(total*distanceMeters/1000.0))
}

// StrainLevel bands the composite PSI score.
type StrainLevel string

const (
	StrainMinimal  StrainLevel = "minimal"
	StrainLow      StrainLevel = "low"
	StrainModerate StrainLevel = "moderate"
	StrainHigh     StrainLevel = "high"
	StrainExtreme  StrainLevel = "extreme"
)

// PSIResult is the physiological strain index for one run: two
// independently scored 0-5 components summed into a 0-10 composite.
// Score 0 with Confidence 0 is the explicit no-data sentinel.
type PSIResult struct {
	Score               float64     `json:"psiScore"`
	StrainLevel         StrainLevel `json:"strainLevel"`
	HeartRateStrain     float64     `json:"heartRateStrain"`
	EnvironmentalStrain float64     `json:"environmentalStrain"`
	Confidence          float64     `json:"confidence"`
}

// CalculatePSI scores heat/cardiac strain for a run. Each component is
// independently 0-5; the composite is their exact sum.
func CalculatePSI(run store.Run, w *store.Weather, phys Physiology) PSIResult {
	hasHR := run.AverageHeartrate != nil && *run.AverageHeartrate > 0
	hasWeather := w.HasData()

	if !hasHR && !hasWeather {
		return PSIResult{StrainLevel: StrainMinimal}
	}

	var hrStrain float64
	if hasHR {
		hrStrain = heartRateStrain(run, phys)
	}

	var envStrain float64
	if hasWeather {
		envStrain = environmentalStrain(w)
	}

	score := hrStrain + envStrain

	confidence := 0.5
	if hasHR && hasWeather {
		confidence = 0.9
	}
	if hasHR {
		confidence *= phys.Confidence
	}

	return PSIResult{
		Score:               round1(score),
		StrainLevel:         classifyStrain(score),
		HeartRateStrain:     round1(hrStrain),
		EnvironmentalStrain: round1(envStrain),
		Confidence:          round2(confidence),
	}
}

// heartRateStrain maps %HR-reserve use onto a banded 0-5 scale, with a
// bonus for long efforts held above 60% reserve.
func heartRateStrain(run store.Run, phys Physiology) float64 {
	ratio, ok := phys.ReserveRatio(*run.AverageHeartrate)
	if !ok {
		return 0
	}

	var strain float64
	switch {
	case ratio < PSIReserveBand1:
		strain = 0.5
	case ratio < PSIReserveBand2:
		strain = 1.5
	case ratio < PSIReserveBand3:
		strain = 2.5
	case ratio < PSIReserveBand4:
		strain = 3.5
	case ratio < PSIReserveBand5:
		strain = 4.5
	default:
		strain = 5.0
	}

	durationMin := float64(run.MovingTime) / 60.0
	if durationMin > PSIDurationBonusMinutes && ratio > PSIDurationBonusReserve {
		strain += PSIDurationBonus
	}

	return clamp(strain, 0, 5)
}

// environmentalStrain scores heat stress from a heat-index-like
// combination of temperature, humidity, and wind cooling.
func environmentalStrain(w *store.Weather) float64 {
	var effective float64
	if w.TemperatureC != nil {
		effective = *w.TemperatureC
	}
	if w.HumidityPct != nil && *w.HumidityPct > 40 {
		effective += (*w.HumidityPct - 40) / 10.0
	}
	if w.WindSpeedKmh != nil && *w.WindSpeedKmh > WindCoolingThreshold {
		effective -= (*w.WindSpeedKmh - WindCoolingThreshold) * 0.2
	}

	switch {
	case effective < 15:
		return 0
	case effective < 20:
		return 1
	case effective < 25:
		return 2
	case effective < 30:
		return 3
	case effective < 35:
		return 4
	default:
		return 5
	}
}

func classifyStrain(score float64) StrainLevel {
	switch {
	case score <= PSIMinimalMax:
		return StrainMinimal
	case score <= PSILowMax:
		return StrainLow
	case score <= PSIModerateMax:
		return StrainModerate
	case score <= PSIHighMax:
		return StrainHigh
	default:
		return StrainExtreme
	}
}
