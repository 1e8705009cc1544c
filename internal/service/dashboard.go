package service

import (
	"time"

	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// DashboardData contains everything the dashboard screen renders.
type DashboardData struct {
	// Current state
	Fitness         analysis.FitnessMetrics
	FormDescription string
	ACWR            analysis.ACWRResult
	TRIMPACWR       analysis.ACWRResult

	// This week (trailing 7 days)
	WeekRunCount int
	WeekDistance float64 // meters
	WeekTime     int     // seconds
	WeekTRIMP    float64

	// Recent runs with per-run scores
	RecentRuns []RunWithScores

	// Chart series
	CTLHistory   []float64
	ATLHistory   []float64
	WeeklyMeters []float64 // oldest week first
	WeeklyLabels []string

	TotalRuns int
}

// RunWithScores pairs a run with its single-session analysis.
type RunWithScores struct {
	Run   store.Run
	TRIMP analysis.TRIMPScore
	PSI   analysis.PSIResult
	Pace  analysis.PaceAdjustment
}

// GetDashboardData assembles the dashboard view. Each computation is
// individually shielded: a panic in one leaves the others intact.
func (s *Service) GetDashboardData() (*DashboardData, error) {
	runs, err := s.loadHistory()
	if err != nil {
		return nil, err
	}

	data := &DashboardData{TotalRuns: len(runs)}

	var fitErr error
	func() {
		defer s.capture("fitness", &fitErr)
		data.Fitness = analysis.CalculateFitnessMetrics(runs, s.phys)
		data.FormDescription = analysis.FormDescription(data.Fitness.TSB)
		s.fillTrendCharts(data, runs)
	}()

	var acwrErr error
	func() {
		defer s.capture("acwr", &acwrErr)
		data.ACWR = analysis.CalculateACWR(runs, analysis.MetricDistance, s.phys)
		data.TRIMPACWR = analysis.CalculateACWR(runs, analysis.MetricTRIMP, s.phys)
	}()

	s.fillWeekSummary(data, runs)
	s.fillRecentRuns(data, runs)
	s.fillWeeklyChart(data, runs)

	// A degraded card is still a dashboard; only surface the first
	// failure so the caller can show a notice.
	if fitErr != nil {
		return data, fitErr
	}
	return data, acwrErr
}

func (s *Service) fillTrendCharts(data *DashboardData, runs []store.Run) {
	trend := analysis.FitnessTrend(runs, s.phys)
	if len(trend) > ChartDays {
		trend = trend[len(trend)-ChartDays:]
	}
	for _, p := range trend {
		data.CTLHistory = append(data.CTLHistory, p.CTL)
		data.ATLHistory = append(data.ATLHistory, p.ATL)
	}
}

func (s *Service) fillWeekSummary(data *DashboardData, runs []store.Run) {
	cutoff := s.now().AddDate(0, 0, -7)
	for _, r := range runs {
		if !r.StartDate.After(cutoff) {
			continue
		}
		data.WeekRunCount++
		data.WeekDistance += r.Distance
		data.WeekTime += r.MovingTime
		data.WeekTRIMP += analysis.CalculateTRIMP(r, s.phys).Value
	}
}

func (s *Service) fillRecentRuns(data *DashboardData, runs []store.Run) {
	for i, r := range runs {
		if i >= RecentRunCount {
			break
		}
		data.RecentRuns = append(data.RecentRuns, RunWithScores{
			Run:   r,
			TRIMP: analysis.CalculateTRIMP(r, s.phys),
			PSI:   analysis.CalculatePSI(r, r.Weather, s.phys),
			Pace:  analysis.AdjustPaceForWeather(r, r.Weather),
		})
	}
}

// fillWeeklyChart buckets the trailing weeks of distance ending at the
// current week, oldest first.
func (s *Service) fillWeeklyChart(data *DashboardData, runs []store.Run) {
	end := s.now()
	meters := make([]float64, WeeklyChartWeeks)
	labels := make([]string, WeeklyChartWeeks)

	for i := 0; i < WeeklyChartWeeks; i++ {
		weekStart := end.AddDate(0, 0, -7*(WeeklyChartWeeks-i))
		labels[i] = weekStart.Format("Jan 02")
	}

	for _, r := range runs {
		age := end.Sub(r.StartDate)
		if age < 0 {
			continue
		}
		weeksAgo := int(age / (7 * 24 * time.Hour))
		if weeksAgo >= WeeklyChartWeeks {
			continue
		}
		meters[WeeklyChartWeeks-1-weeksAgo] += r.Distance
	}

	data.WeeklyMeters = meters
	data.WeeklyLabels = labels
}
