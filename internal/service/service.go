package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surendranb/runsight-core-sub000/internal/analysis"
	"github.com/surendranb/runsight-core-sub000/internal/config"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// Service orchestrates the analysis engine over the stored run history.
// Every Get* method loads fresh data and recomputes from scratch; the
// service holds no analytical state between calls.
type Service struct {
	store   *store.Store
	profile config.AthleteProfile
	phys    analysis.Physiology
	log     *logrus.Entry

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a service over the given store and athlete profile.
func NewService(st *store.Store, profile config.AthleteProfile) *Service {
	return &Service{
		store:   st,
		profile: profile,
		phys:    analysis.ResolvePhysiology(profile),
		log:     logrus.WithField("component", "service"),
		now:     time.Now,
	}
}

// Physiology exposes the resolved heart-rate profile, including which
// fields were estimated.
func (s *Service) Physiology() analysis.Physiology {
	return s.phys
}

// ComputationError marks a panic inside an analysis computation that was
// contained at the service boundary. The rest of the result set stays
// usable; only the failed component is degraded.
type ComputationError struct {
	Component string
	Cause     any
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation %q failed: %v", e.Component, e.Cause)
}

// capture converts a panic in one engine computation into a
// ComputationError instead of taking down the whole process. Deferred
// around each independently-degradable computation.
func (s *Service) capture(component string, err *error) {
	if r := recover(); r != nil {
		s.log.WithFields(logrus.Fields{
			"computation": component,
			"panic":       r,
		}).Error("analysis computation panicked; returning degraded result")
		*err = &ComputationError{Component: component, Cause: r}
	}
}

// loadHistory fetches the full run history, most recent first.
func (s *Service) loadHistory() ([]store.Run, error) {
	runs, err := s.store.AllRuns()
	if err != nil {
		return nil, fmt.Errorf("loading run history: %w", err)
	}
	return runs, nil
}
