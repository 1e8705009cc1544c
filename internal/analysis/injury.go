package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// RiskLevel bands the overall 0-100 injury risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// OverreachingStatus tracks accumulated unrecovered training stress in
// ascending severity. Each assessment recomputes it fresh from current
// indicators; there is no cross-call state.
type OverreachingStatus string

const (
	OverreachingNormal        OverreachingStatus = "normal"
	OverreachingFunctional    OverreachingStatus = "functional"
	OverreachingNonFunctional OverreachingStatus = "non-functional"
	Overtraining              OverreachingStatus = "overtraining"
)

// RiskFactor is one scored dimension of injury risk.
type RiskFactor struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"` // 0-100
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
}

// RecommendationSet tiers advice by time horizon.
type RecommendationSet struct {
	Immediate  []string `json:"immediate"`
	ShortTerm  []string `json:"shortTerm"`
	LongTerm   []string `json:"longTerm"`
	Monitoring []string `json:"monitoring"`
}

// RecoveryPhase is one step of a phased return plan.
type RecoveryPhase struct {
	Phase        string `json:"phase"`
	DurationDays int    `json:"durationDays"`
	Guidance     string `json:"guidance"`
}

// InjuryRiskAssessment is the full multi-factor risk picture computed
// from the trailing 90 days of runs.
type InjuryRiskAssessment struct {
	OverallRiskScore   float64            `json:"overallRiskScore"`
	RiskLevel          RiskLevel          `json:"riskLevel"`
	WarningLevel       string             `json:"warningLevel"`
	RiskFactors        []RiskFactor       `json:"riskFactors"`
	OverreachingStatus OverreachingStatus `json:"overreachingStatus"`
	Indicators         []string           `json:"indicators"`
	DaysInCurrentState int                `json:"daysInCurrentState"`
	Recommendations    RecommendationSet  `json:"recommendations"`
	RecoveryPlan       []RecoveryPhase    `json:"recoveryGuidance"`
	Confidence         float64            `json:"confidence"`
	RunsAnalyzed       int                `json:"runsAnalyzed"`
}

// AssessInjuryRisk scores injury risk over the 90 days before now.
// With fewer than InjuryMinRuns recent runs it returns a clearly
// flagged minimal assessment rather than guessing.
func AssessInjuryRisk(runs []store.Run, phys Physiology, now time.Time) InjuryRiskAssessment {
	cutoff := now.AddDate(0, 0, -InjuryWindowDays)
	var recent []store.Run
	for _, r := range runs {
		if !r.StartDate.Before(cutoff) {
			recent = append(recent, r)
		}
	}

	if len(recent) < InjuryMinRuns {
		return minimalAssessment(len(recent))
	}

	acwr := CalculateACWR(recent, MetricDistance, phys)

	factors := []RiskFactor{
		loadSpikeFactor(recent, acwr),
		performanceDeclineFactor(recent),
		heartRateAnomalyFactor(recent),
		paceConsistencyFactor(recent),
		recoveryPatternFactor(recent, phys),
	}

	// Heaviest factor weighted most: sort descending, weight 0.8^rank.
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Score > factors[j].Score
	})
	var weightedSum, weightTotal float64
	for rank, f := range factors {
		w := math.Pow(InjuryFactorDecay, float64(rank))
		weightedSum += f.Score * w
		weightTotal += w
	}
	overall := round1(weightedSum / weightTotal)

	level := classifyRisk(overall)
	status, indicators, points := classifyOverreaching(factors, acwr)

	return InjuryRiskAssessment{
		OverallRiskScore:   overall,
		RiskLevel:          level,
		WarningLevel:       warningLevel(level),
		RiskFactors:        factors,
		OverreachingStatus: status,
		Indicators:         indicators,
		DaysInCurrentState: estimateDaysInState(points),
		Recommendations:    buildRecommendations(level, factors),
		RecoveryPlan:       buildRecoveryPlan(level, status),
		Confidence:         round2(clamp(float64(len(recent))/float64(InjuryFullDataRuns), InjuryMinConfidence, 1)),
		RunsAnalyzed:       len(recent),
	}
}

// minimalAssessment is the deterministic insufficient-data result:
// low risk, confidence 0.3, a single monitoring recommendation.
func minimalAssessment(runCount int) InjuryRiskAssessment {
	return InjuryRiskAssessment{
		RiskLevel:          RiskLow,
		WarningLevel:       "none",
		OverreachingStatus: OverreachingNormal,
		Recommendations: RecommendationSet{
			Monitoring: []string{"Log more runs - at least 10 in the last 90 days are needed for a full risk assessment"},
		},
		Confidence:   InjuryMinConfidence,
		RunsAnalyzed: runCount,
	}
}

// loadSpikeFactor scores sudden workload increases from the ACWR band
// plus a week-over-week distance spike check.
func loadSpikeFactor(recent []store.Run, acwr ACWRResult) RiskFactor {
	var score float64
	desc := "Training load is progressing steadily"

	switch {
	case acwr.Status == ACWRHighRisk:
		score = 80
		desc = fmt.Sprintf("Acute load is %.2fx chronic load - a sharp spike", acwr.ACWR)
	case acwr.Status == ACWRCaution:
		score = 55
		desc = fmt.Sprintf("Acute load is %.2fx chronic load - approaching risky territory", acwr.ACWR)
	case acwr.ACWR > 1.2:
		score = 35
		desc = "Load is rising faster than the chronic base"
	}

	// Weekly spike: last 7 days vs the mean of the prior three weeks.
	lastWeek, priorAvg := weeklyDistanceSpike(recent)
	if priorAvg > 0 && lastWeek > priorAvg*1.5 {
		score += 20
		desc += "; weekly distance jumped more than 50% over the recent average"
	}

	return newFactor("training-load-spike", clamp(score, 0, 100), desc)
}

func weeklyDistanceSpike(runs []store.Run) (lastWeek, priorAvg float64) {
	var latest time.Time
	for _, r := range runs {
		if r.StartDate.After(latest) {
			latest = r.StartDate
		}
	}
	var prior float64
	for _, r := range runs {
		age := latest.Sub(r.StartDate).Hours() / 24
		switch {
		case age < 7:
			lastWeek += r.Distance
		case age < 28:
			prior += r.Distance
		}
	}
	return lastWeek, prior / 3
}

// performanceDeclineFactor regresses pace against time; a slowing trend
// at comparable effort signals accumulating fatigue or injury.
func performanceDeclineFactor(recent []store.Run) RiskFactor {
	xs, ys := paceTrendSeries(recent)
	if len(xs) < 5 {
		return newFactor("performance-decline", 0, "Not enough paced runs to measure a trend")
	}

	slope, _ := linearRegression(xs, ys) // sec/km per day
	perWeek := slope * 7

	if perWeek <= 0 {
		return newFactor("performance-decline", 0, "Pace trend is stable or improving")
	}

	score := clamp(perWeek*10, 0, 100)
	return newFactor("performance-decline",
		score,
		fmt.Sprintf("Pace is slowing by %.1f sec/km per week", perWeek))
}

func paceTrendSeries(runs []store.Run) (xs, ys []float64) {
	sorted := make([]store.Run, 0, len(runs))
	for _, r := range runs {
		if r.PaceSecPerKm() > 0 {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	if len(sorted) == 0 {
		return nil, nil
	}
	base := sorted[0].StartDate
	for _, r := range sorted {
		xs = append(xs, r.StartDate.Sub(base).Hours()/24)
		ys = append(ys, r.PaceSecPerKm())
	}
	return xs, ys
}

// heartRateAnomalyFactor looks for a rising average-HR trend and
// unusual HR variability across runs.
func heartRateAnomalyFactor(recent []store.Run) RiskFactor {
	var xs, ys []float64
	sorted := make([]store.Run, len(recent))
	copy(sorted, recent)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	var base time.Time
	for _, r := range sorted {
		if r.AverageHeartrate == nil || *r.AverageHeartrate <= 0 {
			continue
		}
		if base.IsZero() {
			base = r.StartDate
		}
		xs = append(xs, r.StartDate.Sub(base).Hours()/24)
		ys = append(ys, *r.AverageHeartrate)
	}

	if len(xs) < 5 {
		return newFactor("heart-rate-anomalies", 0, "Not enough heart-rate data to assess")
	}

	slope, _ := linearRegression(xs, ys) // bpm per day
	perWeek := slope * 7

	var score float64
	desc := "Heart-rate response looks stable"
	if perWeek > 0 {
		score += clamp(perWeek*15, 0, 60)
		desc = fmt.Sprintf("Average HR is trending up %.1f bpm per week", perWeek)
	}

	if cv := coefficientOfVariation(ys); cv > 0.08 {
		score += clamp((cv-0.08)*500, 0, 40)
		desc += "; run-to-run HR variability is elevated"
	}

	return newFactor("heart-rate-anomalies", clamp(score, 0, 100), desc)
}

// paceConsistencyFactor penalizes erratic pacing within distance
// buckets - a common marker of runners compensating for a niggle.
func paceConsistencyFactor(recent []store.Run) RiskFactor {
	cv := bucketedPaceCV(recent)
	if cv == 0 {
		return newFactor("pace-inconsistency", 0, "Not enough comparable runs to assess consistency")
	}
	score := clamp((cv-0.05)*800, 0, 100)
	desc := "Pacing is consistent between comparable runs"
	if score > 0 {
		desc = fmt.Sprintf("Pace varies %.0f%% between comparable runs", cv*100)
	}
	return newFactor("pace-inconsistency", score, desc)
}

// recoveryPatternFactor scores inadequate rest: too few off days,
// strings of consecutive hard efforts, and tight spacing.
func recoveryPatternFactor(recent []store.Run, phys Physiology) RiskFactor {
	days := make(map[string]bool)
	hardDays := make(map[string]bool)
	for _, r := range recent {
		day := r.LocalDay()
		days[day] = true
		if isHardEffort(r, phys) {
			hardDays[day] = true
		}
	}

	var score float64
	var reasons []string

	// Training nearly every day of the last four weeks.
	trainedLast28 := 0
	var latest time.Time
	for _, r := range recent {
		if r.StartDate.After(latest) {
			latest = r.StartDate
		}
	}
	for _, r := range recent {
		if latest.Sub(r.StartDate).Hours()/24 < 28 {
			trainedLast28++
		}
	}
	if trainedLast28 > 24 {
		score += 40
		reasons = append(reasons, "almost no rest days in the last four weeks")
	}

	// Consecutive hard-effort days.
	if streak := longestConsecutiveDayStreak(hardDays); streak >= 3 {
		score += 30
		reasons = append(reasons, fmt.Sprintf("%d consecutive hard-effort days", streak))
	}

	// Median gap between runs under a day.
	if gap := medianRunGapDays(recent); gap > 0 && gap < 1.0 {
		score += 30
		reasons = append(reasons, "runs are spaced less than a day apart on average")
	}

	desc := "Recovery spacing looks adequate"
	if len(reasons) > 0 {
		desc = "Recovery deficit: " + joinReasons(reasons)
	}
	return newFactor("recovery-deficit", clamp(score, 0, 100), desc)
}

// isHardEffort flags a run as hard from HR reserve use, or duration
// when no HR is available.
func isHardEffort(r store.Run, phys Physiology) bool {
	if r.AverageHeartrate != nil {
		if ratio, ok := phys.ReserveRatio(*r.AverageHeartrate); ok {
			return ratio > 0.80
		}
	}
	return r.MovingTime > 5400 // 90+ minutes counts as hard without HR
}

func longestConsecutiveDayStreak(days map[string]bool) int {
	if len(days) == 0 {
		return 0
	}
	var dates []time.Time
	for day := range days {
		if d, err := time.Parse("2006-01-02", day); err == nil {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}
	return best
}

func medianRunGapDays(runs []store.Run) float64 {
	if len(runs) < 2 {
		return 0
	}
	sorted := make([]store.Run, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].StartDate.Sub(sorted[i-1].StartDate).Hours()/24)
	}
	sort.Float64s(gaps)
	return gaps[len(gaps)/2]
}

func joinReasons(reasons []string) string {
	out := reasons[0]
	for _, r := range reasons[1:] {
		out += "; " + r
	}
	return out
}

func newFactor(name string, score float64, description string) RiskFactor {
	return RiskFactor{
		Name:        name,
		Score:       round1(score),
		Severity:    factorSeverity(score),
		Description: description,
	}
}

func factorSeverity(score float64) string {
	switch {
	case score >= RiskCriticalMin:
		return "critical"
	case score >= RiskHighMin:
		return "high"
	case score >= RiskModerateMin:
		return "moderate"
	default:
		return "low"
	}
}

func classifyRisk(score float64) RiskLevel {
	switch {
	case score >= RiskCriticalMin:
		return RiskCritical
	case score >= RiskHighMin:
		return RiskHigh
	case score >= RiskModerateMin:
		return RiskModerate
	default:
		return RiskLow
	}
}

func warningLevel(level RiskLevel) string {
	switch level {
	case RiskCritical:
		return "alarm"
	case RiskHigh:
		return "warning"
	case RiskModerate:
		return "watch"
	default:
		return "none"
	}
}

// classifyOverreaching tallies severity points across the factor scores
// and the ACWR state: each factor at critical earns 2 points, at high 1;
// ACWR high-risk adds 2, caution 1.
func classifyOverreaching(factors []RiskFactor, acwr ACWRResult) (OverreachingStatus, []string, int) {
	points := 0
	var indicators []string

	for _, f := range factors {
		switch {
		case f.Score >= RiskCriticalMin:
			points += 2
			indicators = append(indicators, f.Description)
		case f.Score >= RiskHighMin:
			points++
			indicators = append(indicators, f.Description)
		}
	}

	switch acwr.Status {
	case ACWRHighRisk:
		points += 2
		indicators = append(indicators, "workload ratio in the high-risk band")
	case ACWRCaution:
		points++
		indicators = append(indicators, "workload ratio in the caution band")
	}

	var status OverreachingStatus
	switch {
	case points >= OvertrainingPoints:
		status = Overtraining
	case points >= NonFunctionalPoints:
		status = OverreachingNonFunctional
	case points >= FunctionalPoints:
		status = OverreachingFunctional
	default:
		status = OverreachingNormal
	}
	return status, indicators, points
}

// estimateDaysInState is a heuristic only - the assessor keeps no
// history, so duration is inferred from how entrenched the indicators
// look.
func estimateDaysInState(points int) int {
	days := points * 3
	if days > 28 {
		days = 28
	}
	return days
}

// buildRecommendations keys tiered advice off the risk level and the
// specific factors that triggered it.
func buildRecommendations(level RiskLevel, factors []RiskFactor) RecommendationSet {
	set := RecommendationSet{
		Monitoring: []string{"Watch morning resting heart rate for a sustained rise"},
	}

	switch level {
	case RiskCritical:
		set.Immediate = append(set.Immediate, "Stop hard training now - take 3-5 full rest days")
		set.ShortTerm = append(set.ShortTerm, "Return with easy efforts only, at most every other day")
		set.LongTerm = append(set.LongTerm, "Rebuild weekly volume no faster than 10% per week")
	case RiskHigh:
		set.Immediate = append(set.Immediate, "Replace the next hard session with an easy run or rest")
		set.ShortTerm = append(set.ShortTerm, "Cut this week's volume by 20-30%")
		set.LongTerm = append(set.LongTerm, "Re-establish a weekly rest day before adding volume")
	case RiskModerate:
		set.ShortTerm = append(set.ShortTerm, "Hold volume flat this week; avoid back-to-back hard days")
		set.LongTerm = append(set.LongTerm, "Progress weekly load gradually, around 5-10% per week")
	default:
		set.LongTerm = append(set.LongTerm, "Current progression is sustainable - keep the easy/hard balance")
	}

	for _, f := range factors {
		if f.Score < RiskHighMin {
			continue
		}
		switch f.Name {
		case "training-load-spike":
			set.ShortTerm = append(set.ShortTerm, "Bring acute load back toward the 4-week average")
		case "performance-decline":
			set.Monitoring = append(set.Monitoring, "Track pace at a fixed easy heart rate to confirm the trend")
		case "heart-rate-anomalies":
			set.Monitoring = append(set.Monitoring, "Compare waking HR against your baseline for a week")
		case "pace-inconsistency":
			set.ShortTerm = append(set.ShortTerm, "Run comparable routes at a steady target effort")
		case "recovery-deficit":
			set.Immediate = append(set.Immediate, "Schedule a full rest day within the next two days")
		}
	}

	return set
}

// buildRecoveryPlan keys a phased return off risk level and
// overreaching status.
func buildRecoveryPlan(level RiskLevel, status OverreachingStatus) []RecoveryPhase {
	switch {
	case status == Overtraining || level == RiskCritical:
		return []RecoveryPhase{
			{Phase: "rest", DurationDays: 5, Guidance: "No running; walking and sleep are the training"},
			{Phase: "reintroduction", DurationDays: 10, Guidance: "Short easy runs every other day, HR well below threshold"},
			{Phase: "rebuild", DurationDays: 21, Guidance: "Add volume before intensity, 10% per week at most"},
		}
	case status == OverreachingNonFunctional || level == RiskHigh:
		return []RecoveryPhase{
			{Phase: "rest", DurationDays: 3, Guidance: "Rest or cross-train only"},
			{Phase: "easy running", DurationDays: 7, Guidance: "Easy runs at reduced volume; no workouts"},
			{Phase: "rebuild", DurationDays: 14, Guidance: "Reintroduce one quality session per week"},
		}
	case status == OverreachingFunctional || level == RiskModerate:
		return []RecoveryPhase{
			{Phase: "absorb", DurationDays: 4, Guidance: "An easy block to absorb recent training"},
			{Phase: "resume", DurationDays: 7, Guidance: "Return to the normal schedule if energy is back"},
		}
	default:
		return []RecoveryPhase{
			{Phase: "maintain", DurationDays: 7, Guidance: "Keep the current easy/hard rhythm"},
		}
	}
}
