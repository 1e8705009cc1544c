package service

import (
	"github.com/surendranb/runsight-core-sub000/internal/analysis"
)

// GetInjuryRisk runs the multi-factor injury assessment over the stored
// history. A panic inside the assessor degrades to the minimal
// assessment plus a ComputationError rather than failing the caller.
func (s *Service) GetInjuryRisk() (analysis.InjuryRiskAssessment, error) {
	runs, err := s.loadHistory()
	if err != nil {
		return analysis.InjuryRiskAssessment{}, err
	}

	assessment := analysis.InjuryRiskAssessment{
		RiskLevel:          analysis.RiskLow,
		WarningLevel:       "none",
		OverreachingStatus: analysis.OverreachingNormal,
		Confidence:         0,
	}

	var compErr error
	func() {
		defer s.capture("injury-risk", &compErr)
		assessment = analysis.AssessInjuryRisk(runs, s.phys, s.now())
	}()

	return assessment, compErr
}
