package analysis

import (
	"math"
	"testing"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// easyRuns builds n 10k runs at a relaxed effort, one per day.
func easyRuns(n int) []store.Run {
	return dailyRuns(n, 10000, 3000, floatPtr(130))
}

// hardFadingRuns builds n 10k runs ridden at near-threshold effort,
// which the fade estimator scores as heavy positive splits.
func hardFadingRuns(n int) []store.Run {
	return dailyRuns(n, 10000, 2700, floatPtr(175))
}

func TestQualifyingRuns(t *testing.T) {
	runs := []store.Run{
		makeRun(0, 3000, 900, nil),   // too short
		makeRun(1, 10000, 3000, nil), // qualifies
		makeRun(2, 30000, 9000, nil), // too long
		makeRun(3, 5000, 0, nil),     // no usable pace
	}
	got := qualifyingRuns(runs)
	if len(got) != 1 {
		t.Fatalf("len(qualifyingRuns) = %d, want 1", len(got))
	}
	if got[0].Distance != 10000 {
		t.Errorf("kept run distance = %v, want 10000", got[0].Distance)
	}
}

func TestEstimateSlowdownPct(t *testing.T) {
	phys := defaultTestPhysiology()

	tests := []struct {
		name     string
		run      store.Run
		expected float64
	}{
		{
			name: "easy 5k splits negative",
			// 1.0 + 0 + (0.519-0.70)*10 = -0.8
			run:      makeRun(0, 5000, 1800, floatPtr(120)),
			expected: -0.8,
		},
		{
			name: "hard 10k fades",
			// 1.0 + 1.25 + (0.815-0.70)*10 = 3.4
			run:      makeRun(0, 10000, 3000, floatPtr(160)),
			expected: 3.4,
		},
		{
			name:     "no HR falls back to distance term",
			run:      makeRun(0, 10000, 3000, nil),
			expected: 2.3, // 1.0 + 1.25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateSlowdownPct(tt.run, phys)
			if math.Abs(got-tt.expected) > 0.05 {
				t.Errorf("estimateSlowdownPct = %v, want %v", got, tt.expected)
			}
			if again := estimateSlowdownPct(tt.run, phys); again != got {
				t.Errorf("estimate not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestEstimateSlowdownElevation(t *testing.T) {
	phys := defaultTestPhysiology()

	flat := makeRun(0, 10000, 3000, floatPtr(150))
	hilly := flat
	hilly.TotalElevationGain = floatPtr(300)

	if got, want := estimateSlowdownPct(hilly, phys), estimateSlowdownPct(flat, phys)+1.5; math.Abs(got-want) > 0.05 {
		t.Errorf("hilly slowdown = %v, want %v", got, want)
	}
}

func TestNegativeSplitProbability(t *testing.T) {
	phys := defaultTestPhysiology()

	t.Run("too few runs returns neutral", func(t *testing.T) {
		got := NegativeSplitProbability(easyRuns(3), phys)
		if got.Probability != 0.5 || got.Confidence != 0.2 {
			t.Errorf("got %v/%v, want neutral 0.5/0.2", got.Probability, got.Confidence)
		}
		if !got.Estimated {
			t.Error("Estimated = false, want true")
		}
	})

	t.Run("easy history splits negative", func(t *testing.T) {
		// 12 easy 5k runs all estimate negative splits.
		got := NegativeSplitProbability(dailyRuns(12, 5000, 1800, floatPtr(120)), phys)
		if got.Probability != 1.0 {
			t.Errorf("Probability = %v, want 1.0", got.Probability)
		}
		if got.SampleSize != 12 {
			t.Errorf("SampleSize = %d, want 12", got.SampleSize)
		}
	})

	t.Run("hard history never splits negative", func(t *testing.T) {
		got := NegativeSplitProbability(hardFadingRuns(12), phys)
		if got.Probability != 0 {
			t.Errorf("Probability = %v, want 0", got.Probability)
		}
	})
}

func TestFatigueResistanceProfile(t *testing.T) {
	phys := defaultTestPhysiology()

	t.Run("too few runs returns neutral", func(t *testing.T) {
		got := FatigueResistanceProfile(easyRuns(5), phys)
		if got.Score != 50 || got.QualityScore != 0.2 {
			t.Errorf("got score %v quality %v, want 50/0.2", got.Score, got.QualityScore)
		}
	})

	t.Run("consistent easy runner scores high", func(t *testing.T) {
		got := FatigueResistanceProfile(easyRuns(15), phys)
		if got.Score <= 50 {
			t.Errorf("Score = %v, want above neutral for a consistent easy history", got.Score)
		}
		if !got.Estimated {
			t.Error("Estimated = false, want true")
		}
	})

	t.Run("hard fader scores below consistent runner", func(t *testing.T) {
		steady := FatigueResistanceProfile(easyRuns(15), phys)
		fader := FatigueResistanceProfile(hardFadingRuns(15), phys)
		if fader.Score >= steady.Score {
			t.Errorf("fader score %v, want below steady %v", fader.Score, steady.Score)
		}
	})
}

// Adding runs can change the blended score but must never lower the
// data-quality score.
func TestFatigueQualityScoreMonotonic(t *testing.T) {
	phys := defaultTestPhysiology()

	prev := 0.0
	for n := 8; n <= 25; n++ {
		got := FatigueResistanceProfile(easyRuns(n), phys)
		if got.QualityScore < prev {
			t.Fatalf("QualityScore dropped from %v to %v at n=%d", prev, got.QualityScore, n)
		}
		prev = got.QualityScore
	}
}

func TestDetectPacingIssues(t *testing.T) {
	phys := defaultTestPhysiology()

	t.Run("too few runs reports clean at low confidence", func(t *testing.T) {
		got := DetectPacingIssues(easyRuns(3), phys)
		if got.Grade != "A" || len(got.Issues) != 0 {
			t.Errorf("got grade %q with %d issues, want clean A", got.Grade, len(got.Issues))
		}
		if got.Confidence != 0.2 {
			t.Errorf("Confidence = %v, want 0.2", got.Confidence)
		}
	})

	t.Run("disciplined history grades A", func(t *testing.T) {
		got := DetectPacingIssues(easyRuns(15), phys)
		if got.Grade != "A" {
			t.Errorf("Grade = %q, want A: issues %+v", got.Grade, got.Issues)
		}
	})

	t.Run("chronic fader collects issues", func(t *testing.T) {
		got := DetectPacingIssues(hardFadingRuns(15), phys)
		if len(got.Issues) == 0 {
			t.Fatal("want at least one issue for a chronically fading history")
		}
		if got.Grade == "A" {
			t.Errorf("Grade = A, want worse with %d issues", len(got.Issues))
		}
		found := false
		for _, issue := range got.Issues {
			if issue.Type == IssueExcessiveEarlyPace {
				found = true
			}
		}
		if !found {
			t.Errorf("issues %+v, want %v present", got.Issues, IssueExcessiveEarlyPace)
		}
	})
}

func TestPacingGrade(t *testing.T) {
	tests := []struct {
		issues   int
		severity float64
		want     string
	}{
		{0, 0, "A"},
		{1, 1.5, "B"},
		{2, 3.5, "C"},
		{2, 5.0, "D"},
		{3, 7.0, "F"},
	}
	for _, tt := range tests {
		if got := pacingGrade(tt.issues, tt.severity); got != tt.want {
			t.Errorf("pacingGrade(%d, %v) = %q, want %q", tt.issues, tt.severity, got, tt.want)
		}
	}
}

func TestGenerateRaceStrategy(t *testing.T) {
	phys := defaultTestPhysiology()
	history := easyRuns(15)

	t.Run("five segments covering the distance", func(t *testing.T) {
		got := GenerateRaceStrategy(history, phys, Distance10K, 2700)
		if len(got.Segments) != 5 {
			t.Fatalf("len(Segments) = %d, want 5", len(got.Segments))
		}
		if got.GoalSeconds != 2700 {
			t.Errorf("GoalSeconds = %d, want 2700", got.GoalSeconds)
		}
		if got.Segments[0].StartKm != 0 {
			t.Errorf("first segment starts at %v, want 0", got.Segments[0].StartKm)
		}
		if last := got.Segments[4]; math.Abs(last.EndKm-10.0) > 0.05 {
			t.Errorf("last segment ends at %v, want 10.0", last.EndKm)
		}
		if !got.Estimated {
			t.Error("Estimated = false, want true")
		}
	})

	t.Run("opens slower than goal pace", func(t *testing.T) {
		got := GenerateRaceStrategy(history, phys, Distance10K, 2700)
		goalPace := 270.0
		if got.Segments[0].TargetPace <= goalPace {
			t.Errorf("opening pace %v, want slower than goal %v", got.Segments[0].TargetPace, goalPace)
		}
		if mid := got.Segments[2].TargetPace; math.Abs(mid-goalPace) > 0.5 {
			t.Errorf("middle pace %v, want goal %v", mid, goalPace)
		}
	})

	t.Run("derives goal from history when unset", func(t *testing.T) {
		// Median 10k in 3000s Riegel-scales to itself.
		got := GenerateRaceStrategy(history, phys, Distance10K, 0)
		if got.GoalSeconds != 3000 {
			t.Errorf("GoalSeconds = %d, want 3000 from history", got.GoalSeconds)
		}
	})

	t.Run("no history and no target yields empty plan", func(t *testing.T) {
		got := GenerateRaceStrategy(nil, phys, Distance10K, 0)
		if got.GoalSeconds != 0 || len(got.Segments) != 0 {
			t.Errorf("got goal %d with %d segments, want empty plan", got.GoalSeconds, len(got.Segments))
		}
	})
}
