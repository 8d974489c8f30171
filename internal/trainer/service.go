package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avirtanen/gymprogress/internal/sqlite"
)

// Advisor produces coaching commentary for a generated plan. Implementations
// live outside this package because the engine itself never does I/O.
type Advisor interface {
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}

// AdviceRequest is everything an Advisor needs to comment on the next workout.
type AdviceRequest struct {
	Recommendation Recommendation
	Goal           Goal
	Settings       Settings
	RecentEntries  []Entry
}

// ProgressReport is the score breakdown for the latest session of an exercise.
type ProgressReport struct {
	Exercise   Exercise
	Current    Entry
	Score      SessionScore
	Comparison ComparisonResult
	History    []Entry
}

// Service handles the business logic for training management.
type Service struct {
	repo    *repository
	logger  *slog.Logger
	advisor Advisor
}

// NewService creates a new trainer service. The advisor may be nil when no
// AI coach is configured.
func NewService(db *sqlite.Database, logger *slog.Logger, advisor Advisor) *Service {
	return &Service{
		repo:    newRepository(db, logger),
		logger:  logger,
		advisor: advisor,
	}
}

// Settings retrieves the trainer settings.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	settings, err := s.repo.settings.GetSettings(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists the trainer settings.
func (s *Service) SaveSettings(ctx context.Context, settings Settings) error {
	if err := s.repo.settings.SetSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Goal retrieves the training goal.
func (s *Service) Goal(ctx context.Context) (Goal, error) {
	goal, err := s.repo.settings.GetGoal(ctx)
	if err != nil {
		return GoalHypertrophy, fmt.Errorf("get goal: %w", err)
	}
	return goal, nil
}

// SaveGoal persists the training goal.
func (s *Service) SaveGoal(ctx context.Context, goal Goal) error {
	if err := s.repo.settings.SetGoal(ctx, goal); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// Exercises returns the exercise catalog in stored order.
func (s *Service) Exercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// ExerciseByName retrieves a single catalog exercise.
func (s *Service) ExerciseByName(ctx context.Context, name string) (Exercise, error) {
	exercise, err := s.repo.exercises.GetByName(ctx, name)
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise %s: %w", name, err)
	}
	return exercise, nil
}

// CreateExercise adds a new exercise to the catalog.
func (s *Service) CreateExercise(ctx context.Context, exercise Exercise) (Exercise, error) {
	created, err := s.repo.exercises.Create(ctx, exercise)
	if err != nil {
		return exercise, fmt.Errorf("create exercise: %w", err)
	}
	return created, nil
}

// UpdateExercise applies updateFn to the named exercise.
func (s *Service) UpdateExercise(ctx context.Context, name string, updateFn func(ex *Exercise) (bool, error)) error {
	if err := s.repo.exercises.Update(ctx, name, updateFn); err != nil {
		return fmt.Errorf("update exercise %s: %w", name, err)
	}
	return nil
}

// DeleteExercise removes an exercise from the catalog. Its journal entries
// stay behind because they reference the exercise by name.
func (s *Service) DeleteExercise(ctx context.Context, name string) error {
	if err := s.repo.exercises.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete exercise %s: %w", name, err)
	}
	return nil
}

// ExerciseAlternatives lists catalog exercises interchangeable with the
// named one.
func (s *Service) ExerciseAlternatives(ctx context.Context, name string) ([]Exercise, error) {
	exercise, err := s.repo.exercises.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get exercise %s: %w", name, err)
	}
	all, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return Alternatives(exercise, all), nil
}

// Entries returns the whole journal, newest first.
func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// EntriesFor returns the journal for one exercise, newest first.
func (s *Service) EntriesFor(ctx context.Context, exerciseName string) ([]Entry, error) {
	entries, err := s.repo.entries.ListByExercise(ctx, exerciseName)
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", exerciseName, err)
	}
	return entries, nil
}

// AddEntry appends a journal entry. An empty date means today.
func (s *Service) AddEntry(ctx context.Context, entry Entry) (Entry, error) {
	if entry.Date == "" {
		entry.Date = time.Now().Format(dateLayout)
	}
	inserted, err := s.repo.entries.Insert(ctx, entry)
	if err != nil {
		return entry, fmt.Errorf("add entry: %w", err)
	}
	return inserted, nil
}

// Entry retrieves a single journal entry by ID.
func (s *Service) Entry(ctx context.Context, id int64) (Entry, error) {
	entry, err := s.repo.entries.Get(ctx, id)
	if err != nil {
		return Entry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return entry, nil
}

// UpdateEntry applies updateFn to a journal entry and persists the result
// when the function reports a change.
func (s *Service) UpdateEntry(ctx context.Context, id int64, updateFn func(e *Entry) (bool, error)) error {
	entry, err := s.repo.entries.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry for update: %w", err)
	}

	updated, err := updateFn(&entry)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return nil
	}

	if err = s.repo.entries.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry %d: %w", id, err)
	}
	return nil
}

// DeleteEntry removes a journal entry.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.repo.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

// Recommendation generates the plan for the next training day from the
// current settings, goal, catalog, and journal.
func (s *Service) Recommendation(ctx context.Context) (Recommendation, error) {
	settings, err := s.repo.settings.GetSettings(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get settings: %w", err)
	}
	goal, err := s.repo.settings.GetGoal(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("get goal: %w", err)
	}
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("list exercises: %w", err)
	}
	history, err := s.repo.entries.List(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("list entries: %w", err)
	}
	return GenerateRecommendation(settings, goal, exercises, history), nil
}

// FinishWorkout folds the logged sets of a completed workout into journal
// entries and persists them. An empty date means today.
func (s *Service) FinishWorkout(ctx context.Context, date string, sets []CompletedSet) ([]Entry, error) {
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	derived := DeriveEntries(date, sets)
	saved := make([]Entry, 0, len(derived))
	for _, entry := range derived {
		inserted, err := s.repo.entries.Insert(ctx, entry)
		if err != nil {
			return saved, fmt.Errorf("insert derived entry for %s: %w", entry.ExerciseName, err)
		}
		saved = append(saved, inserted)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "finished workout",
		slog.String("date", date),
		slog.Int("entries", len(saved)))
	return saved, nil
}

// Progress computes the score breakdown for the latest session of an exercise.
func (s *Service) Progress(ctx context.Context, exerciseName string) (ProgressReport, error) {
	exercise, err := s.repo.exercises.GetByName(ctx, exerciseName)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("get exercise %s: %w", exerciseName, err)
	}
	history, err := s.repo.entries.ListByExercise(ctx, exerciseName)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("list entries for %s: %w", exerciseName, err)
	}
	if len(history) == 0 {
		return ProgressReport{}, fmt.Errorf("%w: no entries for %s", ErrEntryNotFound, exerciseName)
	}
	goal, err := s.repo.settings.GetGoal(ctx)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("get goal: %w", err)
	}

	current := history[0]
	var previous *Entry
	if len(history) > 1 {
		previous = &history[1]
	}

	return ProgressReport{
		Exercise:   exercise,
		Current:    current,
		Score:      CalcSessionScore(current, history, goal, exercise.Type),
		Comparison: Compare(current, previous, history, goal, exercise.Type),
		History:    history,
	}, nil
}

// Advice asks the AI coach to comment on the current recommendation. All
// failures degrade to a readable message because advice is never critical.
func (s *Service) Advice(ctx context.Context) string {
	if s.advisor == nil {
		return "AI coach is not configured."
	}

	recommendation, err := s.Recommendation(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to generate recommendation for advice",
			slog.Any("error", err))
		return fmt.Sprintf("Could not get advice: %v", err)
	}
	settings, err := s.repo.settings.GetSettings(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load settings for advice", slog.Any("error", err))
		return fmt.Sprintf("Could not get advice: %v", err)
	}
	goal, err := s.repo.settings.GetGoal(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load goal for advice", slog.Any("error", err))
		return fmt.Sprintf("Could not get advice: %v", err)
	}
	history, err := s.repo.entries.List(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load history for advice", slog.Any("error", err))
		return fmt.Sprintf("Could not get advice: %v", err)
	}
	if len(history) > normalizationWindow {
		history = history[:normalizationWindow]
	}

	advice, err := s.advisor.Advise(ctx, AdviceRequest{
		Recommendation: recommendation,
		Goal:           goal,
		Settings:       settings,
		RecentEntries:  history,
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "advisor failed", slog.Any("error", err))
		return fmt.Sprintf("Could not get advice: %v", err)
	}
	return advice
}
