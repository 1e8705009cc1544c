package analysis

import (
	"time"

	"github.com/surendranb/runsight-core-sub000/internal/config"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// Shared fixtures for the analysis tests. All synthetic runs hang off a
// fixed base date so every test is fully deterministic.

var testBaseDate = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func emptyProfile() config.AthleteProfile { return config.AthleteProfile{} }

// defaultTestPhysiology resolves a fully-specified profile: resting 50,
// max 185, confidence 1.0.
func defaultTestPhysiology() Physiology {
	return ResolvePhysiology(config.AthleteProfile{
		RestingHR: floatPtr(50),
		MaxHR:     floatPtr(185),
	})
}

// makeRun builds a run daysAgo days before the base date.
func makeRun(daysAgo int, distanceMeters float64, movingTimeSec int, avgHR *float64) store.Run {
	date := testBaseDate.AddDate(0, 0, -daysAgo)
	return store.Run{
		ID:               date.Format("2006-01-02") + "-run",
		Name:             "test run",
		StartDate:        date,
		StartDateLocal:   date,
		Distance:         distanceMeters,
		MovingTime:       movingTimeSec,
		ElapsedTime:      movingTimeSec,
		AverageHeartrate: avgHR,
	}
}

// makeRunWithWeather attaches weather readings to a run.
func makeRunWithWeather(daysAgo int, distanceMeters float64, movingTimeSec int, avgHR *float64, tempC, humidityPct, windKmh *float64) store.Run {
	r := makeRun(daysAgo, distanceMeters, movingTimeSec, avgHR)
	if tempC != nil || humidityPct != nil || windKmh != nil {
		r.Weather = &store.Weather{
			TemperatureC: tempC,
			HumidityPct:  humidityPct,
			WindSpeedKmh: windKmh,
		}
	}
	return r
}

// dailyRuns builds one identical run per day for n consecutive days
// ending at the base date (daysAgo 0..n-1).
func dailyRuns(n int, distanceMeters float64, movingTimeSec int, avgHR *float64) []store.Run {
	runs := make([]store.Run, 0, n)
	for i := 0; i < n; i++ {
		runs = append(runs, makeRun(i, distanceMeters, movingTimeSec, avgHR))
	}
	return runs
}

// spikePattern builds 35 consecutive daily runs: the most recent
// acuteDays days at acuteMeters, the rest at baselineMeters.
func spikePattern(totalDays, acuteDays int, acuteMeters, baselineMeters float64) []store.Run {
	runs := make([]store.Run, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		dist := baselineMeters
		if i < acuteDays {
			dist = acuteMeters
		}
		runs = append(runs, makeRun(i, dist, int(dist/3.0), nil))
	}
	return runs
}

// acuteDistanceForRatio returns the acute-day distance that produces an
// exact ACWR of ratio against a 35-day history whose older 28 days run
// baselineMeters per day. Derived from
//
//	ratio = acute / ((7*acute + 21*baseline) / 28)
func acuteDistanceForRatio(ratio, baselineMeters float64) float64 {
	k := 3 * ratio / (4 - ratio)
	return k * baselineMeters
}
