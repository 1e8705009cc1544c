package store

import (
	"errors"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewTestStore()
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func testRun(id string, start time.Time) *Run {
	hr := 148.0
	maxHR := 172.0
	elev := 55.0
	return &Run{
		ID:                 id,
		Name:               "Morning Run",
		StartDate:          start,
		StartDateLocal:     start.Add(-5 * time.Hour),
		Distance:           8000,
		MovingTime:         2400,
		ElapsedTime:        2460,
		TotalElevationGain: &elev,
		AverageHeartrate:   &hr,
		MaxHeartrate:       &maxHR,
	}
}

func TestUpsertAndGetRun(t *testing.T) {
	s := setupTestStore(t)

	start := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)
	temp := 24.5
	humidity := 70.0
	wind := 8.0
	condition := "partly cloudy"

	run := testRun("run-1", start)
	run.Weather = &Weather{
		TemperatureC:   &temp,
		HumidityPct:    &humidity,
		WindSpeedKmh:   &wind,
		ConditionLabel: &condition,
	}

	if err := s.UpsertRun(run); err != nil {
		t.Fatalf("UpsertRun failed: %v", err)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if got.Name != "Morning Run" {
		t.Errorf("Name = %q, want %q", got.Name, "Morning Run")
	}
	if !got.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, start)
	}
	if !got.StartDateLocal.Equal(start.Add(-5 * time.Hour)) {
		t.Errorf("StartDateLocal = %v, want %v", got.StartDateLocal, start.Add(-5*time.Hour))
	}
	if got.Distance != 8000 {
		t.Errorf("Distance = %v, want 8000", got.Distance)
	}
	if got.MovingTime != 2400 || got.ElapsedTime != 2460 {
		t.Errorf("times = %d/%d, want 2400/2460", got.MovingTime, got.ElapsedTime)
	}
	if got.AverageHeartrate == nil || *got.AverageHeartrate != 148 {
		t.Errorf("AverageHeartrate = %v, want 148", got.AverageHeartrate)
	}
	if got.TotalElevationGain == nil || *got.TotalElevationGain != 55 {
		t.Errorf("TotalElevationGain = %v, want 55", got.TotalElevationGain)
	}
	if !got.Weather.HasData() {
		t.Fatal("expected weather data to round-trip")
	}
	if *got.Weather.TemperatureC != 24.5 {
		t.Errorf("TemperatureC = %v, want 24.5", *got.Weather.TemperatureC)
	}
	if *got.Weather.ConditionLabel != "partly cloudy" {
		t.Errorf("ConditionLabel = %q, want %q", *got.Weather.ConditionLabel, "partly cloudy")
	}
}

func TestGetRunNullableFields(t *testing.T) {
	s := setupTestStore(t)

	run := &Run{
		ID:             "bare",
		Name:           "Watchless Run",
		StartDate:      time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		StartDateLocal: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Distance:       5000,
		MovingTime:     1500,
		ElapsedTime:    1500,
	}
	if err := s.UpsertRun(run); err != nil {
		t.Fatalf("UpsertRun failed: %v", err)
	}

	got, err := s.GetRun("bare")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.AverageHeartrate != nil {
		t.Errorf("AverageHeartrate = %v, want nil", got.AverageHeartrate)
	}
	if got.MaxHeartrate != nil {
		t.Errorf("MaxHeartrate = %v, want nil", got.MaxHeartrate)
	}
	if got.TotalElevationGain != nil {
		t.Errorf("TotalElevationGain = %v, want nil", got.TotalElevationGain)
	}
	if got.Weather.HasData() {
		t.Error("expected no weather data")
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetRun("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun error = %v, want ErrRunNotFound", err)
	}
}

func TestUpsertRunUpdatesExisting(t *testing.T) {
	s := setupTestStore(t)

	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	run := testRun("run-1", start)
	if err := s.UpsertRun(run); err != nil {
		t.Fatalf("initial upsert failed: %v", err)
	}

	run.Name = "Corrected Run"
	run.Distance = 8200
	if err := s.UpsertRun(run); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	count, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountRuns = %d, want 1", count)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Name != "Corrected Run" || got.Distance != 8200 {
		t.Errorf("got %q/%v, want updated name and distance", got.Name, got.Distance)
	}
}

func TestListRunsOrdering(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		if err := s.UpsertRun(testRun(id, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("UpsertRun %s failed: %v", id, err)
		}
	}

	runs, err := s.ListRuns(10, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].ID != "newest" || runs[2].ID != "oldest" {
		t.Errorf("order = %s..%s, want newest first", runs[0].ID, runs[2].ID)
	}

	// Limit and offset
	page, err := s.ListRuns(1, 1)
	if err != nil {
		t.Fatalf("ListRuns with offset failed: %v", err)
	}
	if len(page) != 1 || page[0].ID != "middle" {
		t.Errorf("page = %v, want just the middle run", page)
	}
}

func TestRunsSince(t *testing.T) {
	s := setupTestStore(t)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(string(rune('a'+i)), base.AddDate(0, 0, -i))
		if err := s.UpsertRun(run); err != nil {
			t.Fatalf("UpsertRun failed: %v", err)
		}
	}

	// Cutoff lands exactly on the third-newest run; "on or after" keeps it.
	runs, err := s.RunsSince(base.AddDate(0, 0, -2))
	if err != nil {
		t.Fatalf("RunsSince failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].StartDate.After(runs[i-1].StartDate) {
			t.Error("RunsSince not ordered newest first")
		}
	}
}

func TestAllRuns(t *testing.T) {
	s := setupTestStore(t)

	runs, err := s.AllRuns()
	if err != nil {
		t.Fatalf("AllRuns on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs from empty store, want 0", len(runs))
	}

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if err := s.UpsertRun(testRun(string(rune('a'+i)), base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("UpsertRun failed: %v", err)
		}
	}

	runs, err = s.AllRuns()
	if err != nil {
		t.Fatalf("AllRuns failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(runs))
	}
	if runs[0].ID != "d" {
		t.Errorf("first run = %s, want the newest", runs[0].ID)
	}
}

func TestImportState(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetImportState("last_import")
	if err != nil {
		t.Fatalf("GetImportState on empty key failed: %v", err)
	}
	if got != "" {
		t.Errorf("got %q for missing key, want empty", got)
	}

	if err := s.SetImportState("last_import", "2024-06-01"); err != nil {
		t.Fatalf("SetImportState failed: %v", err)
	}
	if err := s.SetImportState("last_import", "2024-06-02"); err != nil {
		t.Fatalf("SetImportState overwrite failed: %v", err)
	}

	got, err = s.GetImportState("last_import")
	if err != nil {
		t.Fatalf("GetImportState failed: %v", err)
	}
	if got != "2024-06-02" {
		t.Errorf("got %q, want latest value", got)
	}
}

func TestPaceSecPerKm(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		moving   int
		want     float64
	}{
		{"10k in 50 minutes", 10000, 3000, 300},
		{"zero distance", 0, 3000, 0},
		{"zero time", 10000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run{Distance: tt.distance, MovingTime: tt.moving}
			if got := r.PaceSecPerKm(); got != tt.want {
				t.Errorf("PaceSecPerKm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalDay(t *testing.T) {
	r := Run{
		StartDate:      time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC),
		StartDateLocal: time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC),
	}
	if got := r.LocalDay(); got != "2024-06-01" {
		t.Errorf("LocalDay() = %q, want local date, not UTC date", got)
	}
}
