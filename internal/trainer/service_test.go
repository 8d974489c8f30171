package trainer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avirtanen/gymprogress/internal/sqlite"
	"github.com/avirtanen/gymprogress/internal/testhelpers"
	"github.com/avirtanen/gymprogress/internal/trainer"
	"github.com/google/go-cmp/cmp"
)

func newTestService(t *testing.T, advisor trainer.Advisor) *trainer.Service {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})

	return trainer.NewService(db, logger, advisor)
}

func Test_Settings_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	// A fresh database serves the defaults.
	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if diff := cmp.Diff(trainer.DefaultSettings(), settings); diff != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", diff)
	}

	want := trainer.Settings{
		Split:       trainer.SplitCustom,
		DaysPerWeek: 4,
		PriorityGroups: []trainer.MuscleGroup{
			trainer.MuscleGroupBack,
			trainer.MuscleGroupLegs,
		},
		CustomSplitDays: map[int][]trainer.MuscleGroup{
			0: {trainer.MuscleGroupChest, trainer.MuscleGroupTriceps},
			1: {trainer.MuscleGroupBack, trainer.MuscleGroupBiceps},
		},
		IncludeWarmup:       false,
		AutoDeload:          true,
		DeloadIntervalWeeks: 6,
		Progression:         trainer.ProgressionLinear,
	}
	if err = svc.SaveSettings(ctx, want); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	got, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Failed to reload settings: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch after round trip (-want +got):\n%s", diff)
	}
}

func Test_Goal_DefaultsToHypertrophy(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	goal, err := svc.Goal(ctx)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if goal != trainer.GoalHypertrophy {
		t.Errorf("goal = %s, want %s", goal, trainer.GoalHypertrophy)
	}

	if err = svc.SaveGoal(ctx, trainer.GoalStrength); err != nil {
		t.Fatalf("Failed to save goal: %v", err)
	}
	goal, err = svc.Goal(ctx)
	if err != nil {
		t.Fatalf("Failed to reload goal: %v", err)
	}
	if goal != trainer.GoalStrength {
		t.Errorf("goal = %s, want %s", goal, trainer.GoalStrength)
	}
}

func Test_Exercise_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	created, err := svc.CreateExercise(ctx, trainer.Exercise{
		Name:        "Safety Bar Squat",
		MuscleGroup: trainer.MuscleGroupLegs,
		Type:        trainer.ExerciseTypeCompound,
	})
	if err != nil {
		t.Fatalf("Failed to create exercise: %v", err)
	}
	if created.ID == 0 {
		t.Error("created exercise has no ID")
	}

	err = svc.UpdateExercise(ctx, "Safety Bar Squat", func(ex *trainer.Exercise) (bool, error) {
		ex.Type = trainer.ExerciseTypeIsolation
		return true, nil
	})
	if err != nil {
		t.Fatalf("Failed to update exercise: %v", err)
	}

	got, err := svc.ExerciseByName(ctx, "Safety Bar Squat")
	if err != nil {
		t.Fatalf("Failed to get exercise: %v", err)
	}
	if got.Type != trainer.ExerciseTypeIsolation {
		t.Errorf("exercise type = %s, want %s", got.Type, trainer.ExerciseTypeIsolation)
	}

	if err = svc.DeleteExercise(ctx, "Safety Bar Squat"); err != nil {
		t.Fatalf("Failed to delete exercise: %v", err)
	}
	if _, err = svc.ExerciseByName(ctx, "Safety Bar Squat"); !errors.Is(err, trainer.ErrExerciseNotFound) {
		t.Errorf("expected ErrExerciseNotFound after delete, got %v", err)
	}
}

func Test_ExerciseAlternatives_MatchGroupAndType(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	// The seed catalog has several compound chest movements.
	alternatives, err := svc.ExerciseAlternatives(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("Failed to get alternatives: %v", err)
	}
	if len(alternatives) == 0 {
		t.Fatal("expected at least one alternative for Bench Press")
	}
	for _, alt := range alternatives {
		if alt.Name == "Bench Press" {
			t.Error("alternatives include the exercise itself")
		}
		if alt.MuscleGroup != trainer.MuscleGroupChest {
			t.Errorf("alternative %s targets %s, want CHEST", alt.Name, alt.MuscleGroup)
		}
		if alt.Type != trainer.ExerciseTypeCompound {
			t.Errorf("alternative %s has type %s, want COMPOUND", alt.Name, alt.Type)
		}
	}
}

func Test_Entry_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	added, err := svc.AddEntry(ctx, trainer.Entry{
		Date:         "2024-03-04",
		ExerciseName: "Squat",
		Weight:       100,
		Reps:         "5,5,5",
	})
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	got, err := svc.Entry(ctx, added.ID)
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if diff := cmp.Diff(added, got); diff != "" {
		t.Errorf("entry mismatch after add (-want +got):\n%s", diff)
	}

	if err = svc.UpdateEntry(ctx, added.ID, func(e *trainer.Entry) (bool, error) {
		e.Weight = 102.5
		e.Reps = "5,5,4"
		return true, nil
	}); err != nil {
		t.Fatalf("Failed to update entry: %v", err)
	}

	got, err = svc.Entry(ctx, added.ID)
	if err != nil {
		t.Fatalf("Failed to reload entry: %v", err)
	}
	if got.Weight != 102.5 || got.Reps != "5,5,4" {
		t.Errorf("entry after update = %+v, want weight 102.5 reps 5,5,4", got)
	}
	if got.Date != "2024-03-04" || got.ExerciseName != "Squat" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	// A declined update leaves the entry alone.
	if err = svc.UpdateEntry(ctx, added.ID, func(e *trainer.Entry) (bool, error) {
		e.Weight = 999
		return false, nil
	}); err != nil {
		t.Fatalf("Failed to run declined update: %v", err)
	}
	if got, err = svc.Entry(ctx, added.ID); err != nil || got.Weight != 102.5 {
		t.Errorf("declined update must not persist, got weight %v (err %v)", got.Weight, err)
	}

	if err = svc.UpdateEntry(ctx, 9999, func(_ *trainer.Entry) (bool, error) {
		return true, nil
	}); !errors.Is(err, trainer.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound for unknown ID, got %v", err)
	}
}

func Test_FinishWorkout_DerivesJournalEntries(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	saved, err := svc.FinishWorkout(ctx, "2024-03-04", []trainer.CompletedSet{
		{ExerciseName: "Bench Press", Type: trainer.SetWarmup, Weight: 40, Reps: 10},
		{ExerciseName: "Bench Press", Type: trainer.SetWorking, Weight: 80, Reps: 10},
		{ExerciseName: "Bench Press", Type: trainer.SetWorking, Weight: 80, Reps: 9},
		{ExerciseName: "Bench Press", Type: trainer.SetWorking, Weight: 80, Reps: 8},
		{ExerciseName: "Barbell Row", Type: trainer.SetWorking, Weight: 60, Reps: 12},
	})
	if err != nil {
		t.Fatalf("Failed to finish workout: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved %d entries, want 2", len(saved))
	}

	entries, err := svc.EntriesFor(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d Bench Press entries, want 1", len(entries))
	}
	got := entries[0]
	if got.Date != "2024-03-04" || got.Weight != 80 || got.Reps != "10,9,8" {
		t.Errorf("derived entry = %+v, want date 2024-03-04 weight 80 reps 10,9,8", got)
	}
}

func Test_Progress_FirstAndImprovedSession(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	if _, err := svc.AddEntry(ctx, trainer.Entry{
		Date: "2024-01-01", ExerciseName: "Bench Press", Weight: 50, Reps: "8,8,8",
	}); err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	report, err := svc.Progress(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("Failed to get progress: %v", err)
	}
	if report.Comparison.Status != trainer.StatusFirst {
		t.Errorf("status = %s, want %s", report.Comparison.Status, trainer.StatusFirst)
	}
	if report.Comparison.Reason != "first session" {
		t.Errorf("reason = %q, want %q", report.Comparison.Reason, "first session")
	}

	if _, err = svc.AddEntry(ctx, trainer.Entry{
		Date: "2024-01-08", ExerciseName: "Bench Press", Weight: 60, Reps: "10,10,10",
	}); err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}

	report, err = svc.Progress(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("Failed to get progress: %v", err)
	}
	if report.Comparison.Status != trainer.StatusBetter {
		t.Errorf("status = %s, want %s", report.Comparison.Status, trainer.StatusBetter)
	}
	if report.Current.Weight != 60 {
		t.Errorf("current weight = %v, want 60", report.Current.Weight)
	}
	if len(report.History) != 2 {
		t.Errorf("history has %d entries, want 2", len(report.History))
	}
}

func Test_Progress_UnknownExercise(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, nil)

	if _, err := svc.Progress(t.Context(), "No Such Exercise"); !errors.Is(err, trainer.ErrExerciseNotFound) {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}
}

func Test_Recommendation_UsesSeedCatalog(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	svc := newTestService(t, nil)

	rec, err := svc.Recommendation(ctx)
	if err != nil {
		t.Fatalf("Failed to generate recommendation: %v", err)
	}
	if rec.DayLabel != "Full Body" {
		t.Errorf("day label = %q, want %q", rec.DayLabel, "Full Body")
	}
	if len(rec.Exercises) == 0 {
		t.Fatal("recommendation has no exercises")
	}
	if len(rec.MissingGroups) != 0 {
		t.Errorf("seed catalog leaves groups uncovered: %v", rec.MissingGroups)
	}
}

type stubAdvisor struct {
	advice string
	err    error
}

func (s stubAdvisor) Advise(_ context.Context, _ trainer.AdviceRequest) (string, error) {
	return s.advice, s.err
}

func Test_Advice_DegradesGracefully(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("no advisor configured", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, nil)
		if got := svc.Advice(ctx); got != "AI coach is not configured." {
			t.Errorf("advice = %q", got)
		}
	})

	t.Run("advisor succeeds", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, stubAdvisor{advice: "Keep rest strict today."})
		if got := svc.Advice(ctx); got != "Keep rest strict today." {
			t.Errorf("advice = %q", got)
		}
	})

	t.Run("advisor fails", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, stubAdvisor{err: errors.New("upstream timeout")})
		if got := svc.Advice(ctx); got != "Could not get advice: upstream timeout" {
			t.Errorf("advice = %q", got)
		}
	})
}
