package service

import (
	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// PredictionsData bundles race projections with the pacing analysis the
// predictions screen shows alongside them.
type PredictionsData struct {
	Predictions []analysis.RacePrediction

	NegativeSplit analysis.NegativeSplitResult
	Fatigue       analysis.FatigueProfile
	Pacing        analysis.PacingReport
}

// standardDistances are the targets every prediction run covers.
var standardDistances = []float64{
	analysis.Distance5K,
	analysis.Distance10K,
	analysis.DistanceHalfMara,
	analysis.DistanceMarathon,
}

// GetPredictions projects race times for the standard distances and
// attaches the pacing profile. Distances that cannot be predicted carry
// their zero-confidence sentinel instead of being dropped.
func (s *Service) GetPredictions() (*PredictionsData, error) {
	runs, err := s.loadHistory()
	if err != nil {
		return nil, err
	}
	return s.predictionsFor(runs)
}

func (s *Service) predictionsFor(runs []store.Run) (*PredictionsData, error) {
	data := &PredictionsData{}

	var compErr error
	func() {
		defer s.capture("race-predictions", &compErr)
		fitness := analysis.CalculateFitnessMetrics(runs, s.phys)
		for _, dist := range standardDistances {
			data.Predictions = append(data.Predictions,
				analysis.PredictRaceTime(runs, dist, fitness, s.phys))
		}
	}()

	var pacingErr error
	func() {
		defer s.capture("pacing-analysis", &pacingErr)
		data.NegativeSplit = analysis.NegativeSplitProbability(runs, s.phys)
		data.Fatigue = analysis.FatigueResistanceProfile(runs, s.phys)
		data.Pacing = analysis.DetectPacingIssues(runs, s.phys)
	}()

	if compErr != nil {
		return data, compErr
	}
	return data, pacingErr
}

// GetRaceStrategy builds a segment-by-segment plan for the target
// distance. targetSeconds of 0 derives the goal from recent history;
// weather, when provided, shifts the projected time.
func (s *Service) GetRaceStrategy(distanceMeters float64, targetSeconds int, raceDay *store.Weather) (analysis.RaceStrategy, error) {
	runs, err := s.loadHistory()
	if err != nil {
		return analysis.RaceStrategy{}, err
	}

	var strategy analysis.RaceStrategy
	var compErr error
	func() {
		defer s.capture("race-strategy", &compErr)
		strategy = analysis.GenerateRaceStrategy(runs, s.phys, distanceMeters, targetSeconds)
		if raceDay.HasData() && strategy.GoalSeconds > 0 {
			strategy.GoalSeconds = analysis.ApplyWeatherToTime(strategy.GoalSeconds, distanceMeters, raceDay)
		}
	}()

	return strategy, compErr
}
