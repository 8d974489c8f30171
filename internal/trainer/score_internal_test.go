package trainer

import (
	"math"
	"testing"
)

func TestCalcSessionScorePerfectSession(t *testing.T) {
	entry := Entry{ID: 1, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 100, Reps: "10,10,10"}

	score := CalcSessionScore(entry, nil, GoalHypertrophy, ExerciseTypeCompound)

	if score.RepQuality != 1.0 {
		t.Errorf("rep quality = %v, want 1.0", score.RepQuality)
	}
	if score.VolumeScore != 1.0 || score.IntensityScore != 1.0 {
		t.Errorf("alone in the window both normalizations must be 1.0, got volume=%v intensity=%v",
			score.VolumeScore, score.IntensityScore)
	}
	if score.SetsBonus != 0.02 {
		t.Errorf("sets bonus = %v, want 0.02 for 3 sets", score.SetsBonus)
	}
	if score.FatiguePenalty != 0 {
		t.Errorf("fatigue penalty = %v, want 0 for even reps", score.FatiguePenalty)
	}
	// 0.45 + 0.25 + 0.30 + 0.02 overshoots and clamps to 1.
	if score.Score != 1.0 {
		t.Errorf("score = %v, want 1.0", score.Score)
	}
}

func TestCalcSessionScoreEmptyReps(t *testing.T) {
	entry := Entry{ID: 1, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 100, Reps: "x"}

	if got := CalcSessionScore(entry, nil, GoalHypertrophy, ExerciseTypeCompound); got != (SessionScore{}) {
		t.Errorf("unparseable reps must score all-zero, got %+v", got)
	}
}

func TestCalcSessionScoreBounded(t *testing.T) {
	history := []Entry{
		{ID: 1, Date: "2024-01-01", ExerciseName: "Squat", Weight: 200, Reps: "5,5,5"},
		{ID: 2, Date: "2024-01-08", ExerciseName: "Squat", Weight: 0, Reps: "30,1"},
	}
	entries := []Entry{
		{ID: 3, Date: "2024-01-15", ExerciseName: "Squat", Weight: 60, Reps: "20,3,1"},
		{ID: 4, Date: "2024-01-22", ExerciseName: "Squat", Weight: 0, Reps: "1"},
	}

	for _, entry := range entries {
		for _, goal := range AllGoals() {
			score := CalcSessionScore(entry, history, goal, ExerciseTypeIsolation)
			if score.Score < 0 || score.Score > 1 {
				t.Errorf("score %v out of [0,1] for entry %d goal %s", score.Score, entry.ID, goal)
			}
		}
	}
}

func TestCalcSessionScoreNormalizesOverWindow(t *testing.T) {
	history := []Entry{
		{ID: 1, Date: "2024-01-01", ExerciseName: "Squat", Weight: 100, Reps: "10,10,10"},
	}
	entry := Entry{ID: 2, Date: "2024-01-08", ExerciseName: "Squat", Weight: 50, Reps: "10,10,10"}

	score := CalcSessionScore(entry, history, GoalHypertrophy, ExerciseTypeCompound)

	if score.IntensityScore != 0.5 {
		t.Errorf("intensity = %v, want 0.5 against the 100kg window max", score.IntensityScore)
	}
	if score.VolumeScore != 0.5 {
		t.Errorf("volume = %v, want 0.5 against the window max", score.VolumeScore)
	}
}

func TestFatiguePenaltyBuckets(t *testing.T) {
	testCases := []struct {
		name string
		reps []int
		want float64
	}{
		{"single set", []int{10}, 0},
		{"even reps", []int{10, 10, 10}, 0},
		{"severe drop-off", []int{12, 6, 3}, 0.15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fatiguePenaltyFor(tc.reps); got != tc.want {
				t.Errorf("fatiguePenaltyFor(%v) = %v, want %v", tc.reps, got, tc.want)
			}
		})
	}
}

func TestCompareFirstSession(t *testing.T) {
	entry := Entry{ID: 1, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10"}

	result := Compare(entry, nil, []Entry{entry}, GoalHypertrophy, ExerciseTypeCompound)

	if result.Status != StatusFirst {
		t.Errorf("status = %s, want FIRST", result.Status)
	}
	if result.DeltaPercent != 0 {
		t.Errorf("delta percent = %v, want 0", result.DeltaPercent)
	}
	if result.Reason != "first session" {
		t.Errorf("reason = %q, want %q", result.Reason, "first session")
	}
	if result.Details.GoalName != "Hypertrophy" {
		t.Errorf("goal name = %q, want Hypertrophy", result.Details.GoalName)
	}
	if result.Details.TargetRange != "8–12" {
		t.Errorf("target range = %q, want 8–12", result.Details.TargetRange)
	}
	if result.Details.CurrentVolume != 1800 {
		t.Errorf("current volume = %v, want 1800", result.Details.CurrentVolume)
	}
	if result.Details.PreviousSetCount != 0 {
		t.Errorf("previous fields must stay zeroed on a first session")
	}
}

func TestCompareBetterSession(t *testing.T) {
	history := []Entry{
		{ID: 1, Date: "2024-02-12", ExerciseName: "Bench Press", Weight: 50, Reps: "8,8,8"},
		{ID: 2, Date: "2024-02-19", ExerciseName: "Bench Press", Weight: 50, Reps: "8,8,8"},
		{ID: 3, Date: "2024-02-26", ExerciseName: "Bench Press", Weight: 50, Reps: "8,8,8"},
		{ID: 4, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10"},
	}
	current := history[3]
	previous := history[2]

	result := Compare(current, &previous, history, GoalHypertrophy, ExerciseTypeCompound)

	if result.Status != StatusBetter {
		t.Errorf("status = %s, want BETTER", result.Status)
	}
	if result.DeltaPercent <= 0 {
		t.Errorf("delta percent = %v, want positive", result.DeltaPercent)
	}
	if result.Reason != "volume ↑" {
		t.Errorf("reason = %q, want %q", result.Reason, "volume ↑")
	}
}

func TestCompareNoSignificantChange(t *testing.T) {
	history := []Entry{
		{ID: 1, Date: "2024-02-26", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10"},
		{ID: 2, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10"},
	}
	current := history[1]
	previous := history[0]

	result := Compare(current, &previous, history, GoalHypertrophy, ExerciseTypeCompound)

	if result.Status != StatusSame {
		t.Errorf("status = %s, want SAME", result.Status)
	}
	if result.Reason != "no significant change" {
		t.Errorf("reason = %q, want %q", result.Reason, "no significant change")
	}
	if math.Abs(result.DeltaPercent) > 0.001 {
		t.Errorf("delta percent = %v, want ~0", result.DeltaPercent)
	}
}

func TestCompareFlagsPoorRepQuality(t *testing.T) {
	history := []Entry{
		{ID: 1, Date: "2024-02-26", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10"},
		{ID: 2, Date: "2024-03-04", ExerciseName: "Bench Press", Weight: 60, Reps: "5,5,5"},
	}
	current := history[1]
	previous := history[0]

	result := Compare(current, &previous, history, GoalHypertrophy, ExerciseTypeCompound)

	if result.Status != StatusWorse {
		t.Errorf("status = %s, want WORSE", result.Status)
	}
	wantReason := "rep quality ↓, reps outside target range"
	if result.Reason != wantReason {
		t.Errorf("reason = %q, want %q", result.Reason, wantReason)
	}
}
