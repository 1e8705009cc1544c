package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// ErrEmptyImport is returned when the export file contains no runs.
var ErrEmptyImport = errors.New("import file contains no runs")

// runRecord is the wire shape of one run in a JSON export. Field names
// match the export format of the web app this tool ingests from.
type runRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	StartDate         string   `json:"startDate"`      // RFC 3339, UTC
	StartDateLocal    string   `json:"startDateLocal"` // RFC 3339, wall clock
	DistanceMeters    float64  `json:"distanceMeters"`
	MovingTimeSeconds int      `json:"movingTimeSeconds"`
	ElapsedSeconds    int      `json:"elapsedTimeSeconds"`
	ElevationGain     *float64 `json:"totalElevationGain"`
	AverageHeartrate  *float64 `json:"averageHeartrate"`
	MaxHeartrate      *float64 `json:"maxHeartrate"`
	Weather           *weatherRecord `json:"weather"`
}

type weatherRecord struct {
	TemperatureC *float64 `json:"temperatureC"`
	HumidityPct  *float64 `json:"humidityPct"`
	WindSpeedKmh *float64 `json:"windSpeedKmh"`
	Condition    *string  `json:"condition"`
}

type export struct {
	Runs []runRecord `json:"runs"`
}

// Summary reports what an import did.
type Summary struct {
	Imported int
	Skipped  int
	Total    int
}

// Importer loads JSON run exports into the store.
type Importer struct {
	store *store.Store
	log   *logrus.Entry
}

// New creates an importer writing to the given store.
func New(st *store.Store) *Importer {
	return &Importer{
		store: st,
		log:   logrus.WithField("component", "importer"),
	}
}

// ImportFile reads a JSON export at path and upserts its runs.
func (im *Importer) ImportFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	summary, err := im.Import(f)
	if err != nil {
		return summary, err
	}

	im.log.WithFields(logrus.Fields{
		"file":     path,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
	}).Info("import complete")
	return summary, nil
}

// Import reads a JSON export and upserts every valid run. Invalid
// records are skipped and counted, not fatal; runs without an id get a
// generated UUID. Re-importing the same file is a no-op thanks to the
// upsert.
func (im *Importer) Import(r io.Reader) (Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, fmt.Errorf("reading import data: %w", err)
	}

	var ex export
	if err := json.Unmarshal(data, &ex); err != nil {
		// Some exports are a bare array rather than a wrapper object.
		if arrErr := json.Unmarshal(data, &ex.Runs); arrErr != nil {
			return Summary{}, fmt.Errorf("parsing import data: %w", err)
		}
	}

	if len(ex.Runs) == 0 {
		return Summary{}, ErrEmptyImport
	}

	summary := Summary{Total: len(ex.Runs)}
	for _, rec := range ex.Runs {
		run, err := rec.toRun()
		if err != nil {
			summary.Skipped++
			im.log.WithError(err).WithField("run_id", rec.ID).Warn("skipping invalid run record")
			continue
		}
		if err := im.store.UpsertRun(run); err != nil {
			return summary, fmt.Errorf("storing run %s: %w", run.ID, err)
		}
		summary.Imported++
	}

	if summary.Imported > 0 {
		if err := im.store.SetImportState("last_import_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
			return summary, fmt.Errorf("recording import state: %w", err)
		}
	}

	return summary, nil
}

// toRun validates and converts a wire record into a stored run.
func (rec runRecord) toRun() (*store.Run, error) {
	if rec.DistanceMeters <= 0 {
		return nil, fmt.Errorf("non-positive distance %v", rec.DistanceMeters)
	}
	if rec.MovingTimeSeconds <= 0 {
		return nil, fmt.Errorf("non-positive moving time %d", rec.MovingTimeSeconds)
	}

	start, err := time.Parse(time.RFC3339, rec.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing startDate: %w", err)
	}

	local := start
	if rec.StartDateLocal != "" {
		local, err = time.Parse(time.RFC3339, rec.StartDateLocal)
		if err != nil {
			return nil, fmt.Errorf("parsing startDateLocal: %w", err)
		}
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	elapsed := rec.ElapsedSeconds
	if elapsed <= 0 {
		elapsed = rec.MovingTimeSeconds
	}

	run := &store.Run{
		ID:                 id,
		Name:               rec.Name,
		StartDate:          start.UTC(),
		StartDateLocal:     local,
		Distance:           rec.DistanceMeters,
		MovingTime:         rec.MovingTimeSeconds,
		ElapsedTime:        elapsed,
		TotalElevationGain: rec.ElevationGain,
		AverageHeartrate:   rec.AverageHeartrate,
		MaxHeartrate:       rec.MaxHeartrate,
	}

	if rec.Weather != nil {
		run.Weather = &store.Weather{
			TemperatureC:   rec.Weather.TemperatureC,
			HumidityPct:    rec.Weather.HumidityPct,
			WindSpeedKmh:   rec.Weather.WindSpeedKmh,
			ConditionLabel: rec.Weather.Condition,
		}
	}

	return run, nil
}
