package analysis

import (
	"fmt"
	"sort"

	"github.com/surendranb/runsight-core-sub000/internal/config"
	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// RecommendationType tags what a recommendation is about.
type RecommendationType string

const (
	RecTrainingLoad  RecommendationType = "training-load"
	RecEnvironmental RecommendationType = "environmental"
	RecRecovery      RecommendationType = "recovery"
	RecProgression   RecommendationType = "progression"
	RecSafety        RecommendationType = "safety"
)

// Priority orders recommendations for display and action.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 3,
	PriorityHigh:     2,
	PriorityMedium:   1,
	PriorityLow:      0,
}

// Range is an inclusive numeric target band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TargetMetrics carries the concrete numbers behind a recommendation so
// callers can act on it programmatically, not just display prose.
type TargetMetrics struct {
	WeeklyDistanceKm *Range   `json:"weeklyDistanceKm,omitempty"`
	WeeklyTRIMP      *Range   `json:"weeklyTrimp,omitempty"`
	EasyPct          *float64 `json:"easyPct,omitempty"`
	HardPct          *float64 `json:"hardPct,omitempty"`
	RestDays         *int     `json:"restDays,omitempty"`
	PaceDeltaSecPerKm *float64 `json:"paceDeltaSecPerKm,omitempty"`
}

// Recommendation is one piece of typed, prioritized training advice.
type Recommendation struct {
	Type      RecommendationType `json:"type"`
	Priority  Priority           `json:"priority"`
	Title     string             `json:"title"`
	Rationale string             `json:"rationale"`
	Target    TargetMetrics      `json:"targetMetrics"`
}

// RecommendationContext bundles everything the engine already knows
// about the athlete's current state.
type RecommendationContext struct {
	ACWR                 ACWRResult
	Fitness              FitnessMetrics
	Injury               *InjuryRiskAssessment
	WeeklyDistanceKm     float64
	WeeklyTRIMP          float64
	UpcomingWeather      *store.Weather
	Experience           config.FitnessLevel
	AvailableHoursPerWeek float64
}

// GenerateRecommendations synthesizes advice from the other engine
// outputs. Progression advice is suppressed entirely when ACWR is
// high-risk or injury risk is high or worse - the safety gate.
func GenerateRecommendations(runs []store.Run, ctx RecommendationContext) []Recommendation {
	var recs []Recommendation

	injuryRisky := ctx.Injury != nil &&
		(ctx.Injury.RiskLevel == RiskHigh || ctx.Injury.RiskLevel == RiskCritical)

	// Training-load advice straight from the ACWR band.
	switch ctx.ACWR.Status {
	case ACWRHighRisk:
		weekly := ctx.ACWR.ChronicLoad * 7 / 1000
		recs = append(recs, Recommendation{
			Type:      RecTrainingLoad,
			Priority:  PriorityCritical,
			Title:     "Cut this week's load",
			Rationale: fmt.Sprintf("Acute load is %.2fx your chronic base; spikes this size precede most overuse injuries", ctx.ACWR.ACWR),
			Target: TargetMetrics{
				WeeklyDistanceKm: &Range{Min: weekly * 0.7, Max: weekly * 0.9},
				RestDays:         intRef(2),
			},
		})
	case ACWRCaution:
		weekly := ctx.ACWR.ChronicLoad * 7 / 1000
		recs = append(recs, Recommendation{
			Type:      RecTrainingLoad,
			Priority:  PriorityHigh,
			Title:     "Hold volume steady",
			Rationale: fmt.Sprintf("Workload ratio of %.2f is edging above the optimal band", ctx.ACWR.ACWR),
			Target: TargetMetrics{
				WeeklyDistanceKm: &Range{Min: weekly * 0.9, Max: weekly * 1.05},
			},
		})
	}

	// Deep fatigue shows up as a big negative form balance.
	if ctx.Fitness.DaysOfData > 0 && ctx.Fitness.TSB < -20 {
		recs = append(recs, Recommendation{
			Type:      RecRecovery,
			Priority:  PriorityHigh,
			Title:     "Absorb the recent training",
			Rationale: fmt.Sprintf("Form balance of %.0f means fatigue is well ahead of fitness", ctx.Fitness.TSB),
			Target: TargetMetrics{
				RestDays: intRef(2),
				EasyPct:  floatRef(90),
			},
		})
	}

	if injuryRisky {
		recs = append(recs, Recommendation{
			Type:      RecSafety,
			Priority:  PriorityCritical,
			Title:     "Injury risk is elevated - back off",
			Rationale: fmt.Sprintf("Overall injury risk score is %.0f (%s)", ctx.Injury.OverallRiskScore, ctx.Injury.RiskLevel),
			Target: TargetMetrics{
				RestDays: intRef(3),
				EasyPct:  floatRef(100),
			},
		})
	}

	// Heat advisory for upcoming conditions.
	if w := ctx.UpcomingWeather; w.HasData() && w.TemperatureC != nil && *w.TemperatureC > 25 {
		_, _, _, penalty := weatherPenalty(w)
		recs = append(recs, Recommendation{
			Type:      RecEnvironmental,
			Priority:  PriorityMedium,
			Title:     "Plan for the heat",
			Rationale: fmt.Sprintf("Conditions around %.0f C add roughly %.0f sec/km of effort", *w.TemperatureC, penalty),
			Target: TargetMetrics{
				PaceDeltaSecPerKm: floatRef(round1(penalty)),
			},
		})
	}

	// Progression only behind the safety gate.
	if !injuryRisky && ctx.ACWR.Status != ACWRHighRisk {
		if rec := progressionRecommendation(ctx); rec != nil {
			recs = append(recs, *rec)
		}
	}

	// Everyone gets the distribution reminder when there's history.
	if len(runs) >= 10 {
		recs = append(recs, Recommendation{
			Type:      RecTrainingLoad,
			Priority:  PriorityLow,
			Title:     "Keep most running easy",
			Rationale: "An 80/20 easy-to-hard split sustains progress at every experience level",
			Target: TargetMetrics{
				EasyPct: floatRef(80),
				HardPct: floatRef(20),
			},
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] > priorityRank[recs[j].Priority]
	})
	return recs
}

// progressionRecommendation sizes the next step up. Beginners progress
// more conservatively than experienced athletes.
func progressionRecommendation(ctx RecommendationContext) *Recommendation {
	if ctx.ACWR.DaysOfData < ACWRMinDays || ctx.WeeklyDistanceKm <= 0 {
		return nil
	}

	growth := 0.08
	switch ctx.Experience {
	case config.FitnessBeginner:
		growth = 0.05
	case config.FitnessAdvanced, config.FitnessElite:
		growth = 0.10
	}

	priority := PriorityMedium
	rationale := "Workload ratio is in the optimal band - room to build"
	if ctx.ACWR.Status == ACWRDetraining {
		priority = PriorityMedium
		rationale = "Load has dropped below your chronic base - rebuild gradually"
	} else if ctx.ACWR.Status != ACWROptimal {
		return nil
	}

	target := ctx.WeeklyDistanceKm * (1 + growth)
	if ctx.AvailableHoursPerWeek > 0 {
		// Cap the target by available time at an easy 6 min/km.
		ceiling := ctx.AvailableHoursPerWeek * 10
		if target > ceiling {
			target = ceiling
		}
	}

	return &Recommendation{
		Type:      RecProgression,
		Priority:  priority,
		Title:     "Build toward the next level",
		Rationale: rationale,
		Target: TargetMetrics{
			WeeklyDistanceKm: &Range{Min: ctx.WeeklyDistanceKm, Max: round1(target)},
		},
	}
}

func intRef(v int) *int           { return &v }
func floatRef(v float64) *float64 { return &v }
