package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// The pacing analyzer works without kilometer splits: second-half
// slowdown is estimated from distance, pace, and heart-rate signals via
// a fixed deterministic formula, and every result derived from it is
// flagged Estimated so callers can tell inferred from measured values.

// qualifyingRuns filters the history down to runs the pacing heuristics
// are calibrated for (5-25 km with a usable pace).
func qualifyingRuns(runs []store.Run) []store.Run {
	var out []store.Run
	for _, r := range runs {
		if r.Distance >= PacingMinDistanceMeters && r.Distance <= PacingMaxDistanceMeters && r.PaceSecPerKm() > 0 {
			out = append(out, r)
		}
	}
	return out
}

// estimateSlowdownPct estimates how much slower the second half of a
// run was than the first, as a percentage. Positive means fading.
// The rule is fixed: longer runs fade more, easy-effort runs (low
// HR-reserve use) fade less, big elevation days fade more.
func estimateSlowdownPct(run store.Run, phys Physiology) float64 {
	distKm := run.Distance / 1000.0

	// Base fade grows with distance beyond 5 km.
	slowdown := 1.0 + (distKm-5.0)*0.25

	if run.AverageHeartrate != nil {
		if ratio, ok := phys.ReserveRatio(*run.AverageHeartrate); ok {
			// Easy efforts tend to even or negative splits; hard
			// efforts fade.
			slowdown += (ratio - 0.70) * 10.0
		}
	}

	if run.TotalElevationGain != nil && *run.TotalElevationGain > 200 {
		slowdown += 1.5
	}

	return round1(slowdown)
}

// NegativeSplitResult is the share of qualifying runs estimated to have
// run the second half faster than the first.
type NegativeSplitResult struct {
	Probability float64 `json:"probability"`
	SampleSize  int     `json:"sampleSize"`
	Confidence  float64 `json:"confidence"`
	Estimated   bool    `json:"estimated"` // splits are inferred, not measured
}

// NegativeSplitProbability returns the fraction of qualifying runs with
// an estimated negative split. With fewer than NegativeSplitMinRuns
// qualifying runs it returns the neutral 0.5 at low confidence.
func NegativeSplitProbability(runs []store.Run, phys Physiology) NegativeSplitResult {
	qualifying := qualifyingRuns(runs)
	if len(qualifying) < NegativeSplitMinRuns {
		return NegativeSplitResult{
			Probability: 0.5,
			SampleSize:  len(qualifying),
			Confidence:  0.2,
			Estimated:   true,
		}
	}

	negative := 0
	for _, r := range qualifying {
		if estimateSlowdownPct(r, phys) < 0 {
			negative++
		}
	}

	return NegativeSplitResult{
		Probability: round2(float64(negative) / float64(len(qualifying))),
		SampleSize:  len(qualifying),
		Confidence:  round2(clamp(float64(len(qualifying))/20.0, 0, 1)),
		Estimated:   true,
	}
}

// FatigueProfile is a composite 0-100 fatigue-resistance score.
// QualityScore depends only on sample size, so adding runs never
// lowers it.
type FatigueProfile struct {
	Score float64 `json:"score"` // 0-100, higher resists fatigue better

	PaceConsistency   float64 `json:"paceConsistency"`   // 0-100
	HRDriftEfficiency float64 `json:"hrDriftEfficiency"` // 0-100
	DistanceResilience float64 `json:"distanceResilience"` // 0-100

	SampleSize   int     `json:"sampleSize"`
	QualityScore float64 `json:"qualityScore"`
	Estimated    bool    `json:"estimated"`
}

// FatigueResistanceProfile blends pace-maintenance consistency, HR
// drift efficiency, and long-vs-short pace resilience. Requires
// FatigueProfileMinRuns qualifying runs; below that it returns a
// neutral 50 at minimal quality.
func FatigueResistanceProfile(runs []store.Run, phys Physiology) FatigueProfile {
	qualifying := qualifyingRuns(runs)
	if len(qualifying) < FatigueProfileMinRuns {
		return FatigueProfile{
			Score:        50,
			SampleSize:   len(qualifying),
			QualityScore: 0.2,
			Estimated:    true,
		}
	}

	consistency := paceConsistencyScore(qualifying)
	drift := hrDriftScore(qualifying, phys)
	resilience := distanceResilienceScore(qualifying)

	score := consistency*0.4 + drift*0.3 + resilience*0.3

	return FatigueProfile{
		Score:              round1(score),
		PaceConsistency:    round1(consistency),
		HRDriftEfficiency:  round1(drift),
		DistanceResilience: round1(resilience),
		SampleSize:         len(qualifying),
		QualityScore:       round2(clamp(float64(len(qualifying))/15.0, 0, 1)),
		Estimated:          true,
	}
}

// paceConsistencyScore rewards a tight distribution of paces.
func paceConsistencyScore(runs []store.Run) float64 {
	paces := make([]float64, 0, len(runs))
	for _, r := range runs {
		paces = append(paces, r.PaceSecPerKm())
	}
	cv := coefficientOfVariation(paces)
	// cv of 0 -> 100, cv of 0.25 or worse -> 0
	return clamp(100*(1-cv/0.25), 0, 100)
}

// hrDriftScore rewards small estimated fades on HR-backed runs.
func hrDriftScore(runs []store.Run, phys Physiology) float64 {
	var fades []float64
	for _, r := range runs {
		if r.AverageHeartrate == nil {
			continue
		}
		fades = append(fades, estimateSlowdownPct(r, phys))
	}
	if len(fades) == 0 {
		return 50 // neutral when no HR data at all
	}
	// 0% fade -> 100, 8% fade -> 0
	return clamp(100*(1-mean(fades)/8.0), 0, 100)
}

// distanceResilienceScore compares pace in the long half of the
// distance range against the short half. Holding pace at distance
// scores high.
func distanceResilienceScore(runs []store.Run) float64 {
	sorted := make([]store.Run, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	mid := len(sorted) / 2
	var shortPaces, longPaces []float64
	for i, r := range sorted {
		if i < mid {
			shortPaces = append(shortPaces, r.PaceSecPerKm())
		} else {
			longPaces = append(longPaces, r.PaceSecPerKm())
		}
	}
	shortAvg := mean(shortPaces)
	longAvg := mean(longPaces)
	if shortAvg == 0 {
		return 50
	}

	// No slowdown at longer distances -> 100; 15% slowdown -> 0
	slowdown := (longAvg - shortAvg) / shortAvg
	return clamp(100*(1-slowdown/0.15), 0, 100)
}

// PacingIssueType names the detectable pacing problems.
type PacingIssueType string

const (
	IssueExcessiveEarlyPace    PacingIssueType = "excessive-early-pace"
	IssuePoorFinishingStrength PacingIssueType = "poor-finishing-strength"
	IssueInconsistentPacing    PacingIssueType = "inconsistent-pacing"
	IssueInadequateWarmup      PacingIssueType = "inadequate-warmup"
)

// PacingIssue is one detected problem with its severity weight (higher
// is worse) and the share of runs exhibiting it.
type PacingIssue struct {
	Type        PacingIssueType `json:"type"`
	Severity    float64         `json:"severity"`
	Frequency   float64         `json:"frequency"`
	Description string          `json:"description"`
}

// PacingReport is the rolled-up pacing assessment with a letter grade.
type PacingReport struct {
	Issues        []PacingIssue `json:"issues"`
	Grade         string        `json:"grade"` // A-F
	TotalSeverity float64       `json:"totalSeverity"`
	SampleSize    int           `json:"sampleSize"`
	Confidence    float64       `json:"confidence"`
	Estimated     bool          `json:"estimated"`
}

// DetectPacingIssues scans the qualifying history for the four known
// issue patterns and grades the overall pacing discipline.
func DetectPacingIssues(runs []store.Run, phys Physiology) PacingReport {
	qualifying := qualifyingRuns(runs)
	report := PacingReport{
		Grade:      "A",
		SampleSize: len(qualifying),
		Estimated:  true,
	}
	if len(qualifying) < NegativeSplitMinRuns {
		report.Confidence = 0.2
		return report
	}
	report.Confidence = round2(clamp(float64(len(qualifying))/20.0, 0, 1))

	var issues []PacingIssue

	// Excessive early pace: estimated fades above 4% mean the first
	// half was too aggressive for the effort.
	if issue := detectFrequencyIssue(qualifying, IssueExcessiveEarlyPace,
		"Frequent large fades suggest going out too hard",
		func(r store.Run) bool { return estimateSlowdownPct(r, phys) > 4.0 },
		0.30); issue != nil {
		issues = append(issues, *issue)
	}

	// Poor finishing strength: the typical fade is high across the board.
	var fades []float64
	for _, r := range qualifying {
		fades = append(fades, estimateSlowdownPct(r, phys))
	}
	if avg := mean(fades); avg > 3.0 {
		issues = append(issues, PacingIssue{
			Type:        IssuePoorFinishingStrength,
			Severity:    round1(clamp((avg-3.0)/1.5, 0.5, 3)),
			Frequency:   1.0,
			Description: fmt.Sprintf("Average estimated fade of %.1f%% across qualifying runs", avg),
		})
	}

	// Inconsistent pacing: wide pace spread within similar distances.
	if cv := bucketedPaceCV(qualifying); cv > 0.12 {
		issues = append(issues, PacingIssue{
			Type:        IssueInconsistentPacing,
			Severity:    round1(clamp((cv-0.12)*25, 0.5, 3)),
			Frequency:   1.0,
			Description: "Pace varies widely between runs of similar distance",
		})
	}

	// Inadequate warmup: short runs taken at near-max effort.
	if issue := detectFrequencyIssue(qualifying, IssueInadequateWarmup,
		"Short runs frequently started at near-maximal effort",
		func(r store.Run) bool {
			if r.Distance >= 8000 || r.AverageHeartrate == nil {
				return false
			}
			ratio, ok := phys.ReserveRatio(*r.AverageHeartrate)
			return ok && ratio > 0.85
		},
		0.25); issue != nil {
		issues = append(issues, *issue)
	}

	for _, issue := range issues {
		report.TotalSeverity += issue.Severity
	}
	report.TotalSeverity = round1(report.TotalSeverity)
	report.Issues = issues
	report.Grade = pacingGrade(len(issues), report.TotalSeverity)
	return report
}

// detectFrequencyIssue builds an issue when the share of matching runs
// reaches the threshold. Severity scales with how far past the
// threshold the share is.
func detectFrequencyIssue(runs []store.Run, kind PacingIssueType, description string, match func(store.Run) bool, threshold float64) *PacingIssue {
	matched := 0
	for _, r := range runs {
		if match(r) {
			matched++
		}
	}
	freq := float64(matched) / float64(len(runs))
	if freq < threshold {
		return nil
	}
	return &PacingIssue{
		Type:        kind,
		Severity:    round1(clamp(freq/threshold, 1, 3)),
		Frequency:   round2(freq),
		Description: description,
	}
}

// bucketedPaceCV averages the pace coefficient of variation inside 5 km
// distance buckets, so honest distance differences don't count as
// inconsistency.
func bucketedPaceCV(runs []store.Run) float64 {
	buckets := make(map[int][]float64)
	for _, r := range runs {
		bucket := int(r.Distance / 5000)
		buckets[bucket] = append(buckets[bucket], r.PaceSecPerKm())
	}

	var cvs []float64
	for _, paces := range buckets {
		if len(paces) >= 2 {
			cvs = append(cvs, coefficientOfVariation(paces))
		}
	}
	return mean(cvs)
}

// pacingGrade maps summed severity to a letter: 0 issues A, then
// <=2 B, <=4 C, <=6 D, >6 F.
func pacingGrade(issueCount int, totalSeverity float64) string {
	if issueCount == 0 {
		return "A"
	}
	switch {
	case totalSeverity <= 2:
		return "B"
	case totalSeverity <= 4:
		return "C"
	case totalSeverity <= 6:
		return "D"
	default:
		return "F"
	}
}

// StrategySegment is one leg of a race pacing plan.
type StrategySegment struct {
	Name      string  `json:"name"`
	StartKm   float64 `json:"startKm"`
	EndKm     float64 `json:"endKm"`
	TargetPace float64 `json:"targetPace"` // sec/km
	Note      string  `json:"note"`
}

// RaceStrategy is a five-segment pacing plan for a target distance.
type RaceStrategy struct {
	DistanceMeters float64           `json:"distanceMeters"`
	GoalSeconds    int               `json:"goalSeconds"`
	Segments       []StrategySegment `json:"segments"`
	Confidence     float64           `json:"confidence"`
	Estimated      bool              `json:"estimated"`
}

// GenerateRaceStrategy produces a five-segment plan (first mile, early,
// middle, final, last mile) personalized by the athlete's fatigue
// resistance and detected pacing issues. targetSeconds of 0 means
// derive the goal from recent history via the Riegel projection.
func GenerateRaceStrategy(runs []store.Run, phys Physiology, targetDistanceMeters float64, targetSeconds int) RaceStrategy {
	strategy := RaceStrategy{
		DistanceMeters: targetDistanceMeters,
		Estimated:      true,
	}
	if targetDistanceMeters <= 0 {
		return strategy
	}

	qualifying := qualifyingRuns(runs)

	goal := targetSeconds
	if goal <= 0 {
		goal = projectedTimeFromHistory(qualifying, targetDistanceMeters)
	}
	if goal <= 0 {
		return strategy
	}
	strategy.GoalSeconds = goal

	distKm := targetDistanceMeters / 1000.0
	goalPace := float64(goal) / distKm

	fatigue := FatigueResistanceProfile(runs, phys)
	issues := DetectPacingIssues(runs, phys)

	// Start conservatism: weak fatigue resistance or a history of going
	// out too hard pushes the opening segments slower.
	startFactor := 1.02
	if fatigue.Score >= 70 {
		startFactor = 1.01
	} else if fatigue.Score < 40 {
		startFactor = 1.04
	}
	for _, issue := range issues.Issues {
		if issue.Type == IssueExcessiveEarlyPace {
			startFactor += 0.01
		}
	}

	// Finish aggressiveness mirrors fatigue resistance.
	finishFactor := 1.0
	if fatigue.Score >= 70 {
		finishFactor = 0.98
	} else if fatigue.Score < 40 {
		finishFactor = 1.02
	}

	const mileKm = 1.609
	firstMileEnd := math.Min(mileKm, distKm*0.1)
	lastMileStart := math.Max(distKm-mileKm, distKm*0.9)

	segments := []StrategySegment{
		{
			Name:      "first mile",
			StartKm:   0,
			EndKm:     round1(firstMileEnd),
			TargetPace: round1(goalPace * (startFactor + 0.01)),
			Note:      "Settle in below goal effort",
		},
		{
			Name:      "early",
			StartKm:   round1(firstMileEnd),
			EndKm:     round1(distKm * 0.35),
			TargetPace: round1(goalPace * startFactor),
			Note:      "Controlled, relaxed rhythm",
		},
		{
			Name:      "middle",
			StartKm:   round1(distKm * 0.35),
			EndKm:     round1(distKm * 0.75),
			TargetPace: round1(goalPace),
			Note:      "Lock onto goal pace",
		},
		{
			Name:      "final",
			StartKm:   round1(distKm * 0.75),
			EndKm:     round1(lastMileStart),
			TargetPace: round1(goalPace * finishFactor),
			Note:      "Press if the legs respond",
		},
		{
			Name:      "last mile",
			StartKm:   round1(lastMileStart),
			EndKm:     round1(distKm),
			TargetPace: round1(goalPace * (finishFactor - 0.01)),
			Note:      "Everything left",
		},
	}

	strategy.Segments = segments
	strategy.Confidence = round2(clamp(float64(len(qualifying))/15.0, 0.2, 1) * fatigue.QualityScore)
	return strategy
}

// projectedTimeFromHistory projects a goal time for the target distance
// from the median qualifying run via the Riegel power law.
func projectedTimeFromHistory(qualifying []store.Run, targetDistanceMeters float64) int {
	if len(qualifying) == 0 {
		return 0
	}

	sorted := make([]store.Run, len(qualifying))
	copy(sorted, qualifying)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PaceSecPerKm() < sorted[j].PaceSecPerKm()
	})
	ref := sorted[len(sorted)/2]

	scaled := float64(ref.MovingTime) * math.Pow(targetDistanceMeters/ref.Distance, RiegelExponent)
	return int(math.Round(scaled))
}
