package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const runColumns = `id, name, start_date, start_date_local,
	distance, moving_time, elapsed_time, total_elevation_gain,
	average_heartrate, max_heartrate,
	temperature_c, humidity_pct, wind_speed_kmh, condition_label`

// UpsertRun inserts or updates a run
func (s *Store) UpsertRun(r *Run) error {
	var tempC, humidity, wind *float64
	var condition *string
	if r.Weather != nil {
		tempC = r.Weather.TemperatureC
		humidity = r.Weather.HumidityPct
		wind = r.Weather.WindSpeedKmh
		condition = r.Weather.ConditionLabel
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (
			id, name, start_date, start_date_local,
			distance, moving_time, elapsed_time, total_elevation_gain,
			average_heartrate, max_heartrate,
			temperature_c, humidity_pct, wind_speed_kmh, condition_label, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			start_date_local = excluded.start_date_local,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			total_elevation_gain = excluded.total_elevation_gain,
			average_heartrate = excluded.average_heartrate,
			max_heartrate = excluded.max_heartrate,
			temperature_c = excluded.temperature_c,
			humidity_pct = excluded.humidity_pct,
			wind_speed_kmh = excluded.wind_speed_kmh,
			condition_label = excluded.condition_label,
			updated_at = CURRENT_TIMESTAMP
	`,
		r.ID, r.Name,
		r.StartDate.Format(time.RFC3339), r.StartDateLocal.Format(time.RFC3339),
		r.Distance, r.MovingTime, r.ElapsedTime, r.TotalElevationGain,
		r.AverageHeartrate, r.MaxHeartrate,
		tempC, humidity, wind, condition,
	)
	return err
}

// GetRun retrieves a run by ID
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	r, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return r, err
}

// ListRuns returns runs ordered by start date descending
func (s *Store) ListRuns(limit, offset int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM runs
		ORDER BY start_date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsSince returns all runs starting on or after the cutoff,
// ordered by start date descending.
func (s *Store) RunsSince(cutoff time.Time) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT `+runColumns+`
		FROM runs
		WHERE start_date >= ?
		ORDER BY start_date DESC
	`, cutoff.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// AllRuns returns the full run history ordered by start date descending.
func (s *Store) AllRuns() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// CountRuns returns the total number of stored runs
func (s *Store) CountRuns() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// GetImportState retrieves an import state value by key.
// Returns empty string if key doesn't exist.
func (s *Store) GetImportState(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM import_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetImportState sets an import state value.
func (s *Store) SetImportState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO import_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// scanRun scans a single run via the given scan function
func scanRun(scan func(dest ...any) error) (*Run, error) {
	var r Run
	var startDate, startDateLocal string
	var tempC, humidity, wind *float64
	var condition *string

	err := scan(
		&r.ID, &r.Name, &startDate, &startDateLocal,
		&r.Distance, &r.MovingTime, &r.ElapsedTime, &r.TotalElevationGain,
		&r.AverageHeartrate, &r.MaxHeartrate,
		&tempC, &humidity, &wind, &condition,
	)
	if err != nil {
		return nil, err
	}

	var parseErr error
	r.StartDate, parseErr = time.Parse(time.RFC3339, startDate)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", startDate, parseErr)
	}
	r.StartDateLocal, parseErr = time.Parse(time.RFC3339, startDateLocal)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date_local %q: %w", startDateLocal, parseErr)
	}

	if tempC != nil || humidity != nil || wind != nil || condition != nil {
		r.Weather = &Weather{
			TemperatureC:   tempC,
			HumidityPct:    humidity,
			WindSpeedKmh:   wind,
			ConditionLabel: condition,
		}
	}

	return &r, nil
}

// scanRuns scans multiple runs from rows
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
