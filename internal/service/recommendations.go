package service

import (
	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// GetRecommendations assembles the full engine context and generates
// prioritized training advice from it.
func (s *Service) GetRecommendations(upcoming *store.Weather) ([]analysis.Recommendation, error) {
	runs, err := s.loadHistory()
	if err != nil {
		return nil, err
	}

	var recs []analysis.Recommendation
	var compErr error
	func() {
		defer s.capture("recommendations", &compErr)

		acwr := analysis.CalculateACWR(runs, analysis.MetricDistance, s.phys)
		fitness := analysis.CalculateFitnessMetrics(runs, s.phys)
		injury := analysis.AssessInjuryRisk(runs, s.phys, s.now())
		weekKm, weekTRIMP := s.trailingWeekLoad(runs)

		recs = analysis.GenerateRecommendations(runs, analysis.RecommendationContext{
			ACWR:                  acwr,
			Fitness:               fitness,
			Injury:                &injury,
			WeeklyDistanceKm:      weekKm,
			WeeklyTRIMP:           weekTRIMP,
			UpcomingWeather:       upcoming,
			Experience:            s.profile.FitnessLevel,
			AvailableHoursPerWeek: 0,
		})
	}()

	return recs, compErr
}

func (s *Service) trailingWeekLoad(runs []store.Run) (km, trimp float64) {
	cutoff := s.now().AddDate(0, 0, -7)
	for _, r := range runs {
		if !r.StartDate.After(cutoff) {
			continue
		}
		km += r.Distance / 1000.0
		trimp += analysis.CalculateTRIMP(r, s.phys).Value
	}
	return km, trimp
}
