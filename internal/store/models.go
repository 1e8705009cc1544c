package store

import "time"

// Weather captures the conditions a run was recorded in.
// All fields are optional - imports without weather leave them nil.
type Weather struct {
	TemperatureC   *float64 `db:"temperature_c"`
	HumidityPct    *float64 `db:"humidity_pct"`
	WindSpeedKmh   *float64 `db:"wind_speed_kmh"`
	ConditionLabel *string  `db:"condition_label"`
}

// HasData reports whether any weather reading is present.
func (w *Weather) HasData() bool {
	if w == nil {
		return false
	}
	return w.TemperatureC != nil || w.HumidityPct != nil || w.WindSpeedKmh != nil
}

// Run represents a single imported run.
// Runs are read-only once imported; analysis never mutates them.
type Run struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	StartDate          time.Time `db:"start_date"`       // UTC
	StartDateLocal     time.Time `db:"start_date_local"` // wall clock where the run happened
	Distance           float64   `db:"distance"`         // meters
	MovingTime         int       `db:"moving_time"`      // seconds
	ElapsedTime        int       `db:"elapsed_time"`     // seconds
	TotalElevationGain *float64  `db:"total_elevation_gain"`
	AverageHeartrate   *float64  `db:"average_heartrate"` // nullable
	MaxHeartrate       *float64  `db:"max_heartrate"`     // nullable
	Weather            *Weather  `db:"-"`
}

// PaceSecPerKm returns the average moving pace in seconds per kilometer,
// or 0 when distance or time is non-positive.
func (r *Run) PaceSecPerKm() float64 {
	if r.Distance <= 0 || r.MovingTime <= 0 {
		return 0
	}
	return float64(r.MovingTime) / (r.Distance / 1000.0)
}

// LocalDay returns the run's local calendar date as YYYY-MM-DD.
// Day grouping always uses the local date, not the UTC timestamp.
func (r *Run) LocalDay() string {
	return r.StartDateLocal.Format("2006-01-02")
}
