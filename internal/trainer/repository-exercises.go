package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrExerciseNotFound marks lookups of exercises that are not in the catalog.
var ErrExerciseNotFound = errors.New("exercise not found")

// sqliteExerciseRepository stores the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

// List returns the whole catalog in stored order.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, muscle_group, exercise_type
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			exercise    Exercise
			muscleGroup string
			typeName    string
		)
		if err = rows.Scan(&exercise.ID, &exercise.Name, &muscleGroup, &typeName); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		// Unknown stored groups are preserved so that the UI can surface them.
		exercise.MuscleGroup, _ = ParseMuscleGroup(muscleGroup)
		exercise.Type = ParseExerciseType(typeName)
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// GetByName retrieves a single exercise by its unique name.
func (r *sqliteExerciseRepository) GetByName(ctx context.Context, name string) (Exercise, error) {
	var (
		exercise    Exercise
		muscleGroup string
		typeName    string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, muscle_group, exercise_type
		FROM exercises
		WHERE name = ?`, name).Scan(
		&exercise.ID,
		&exercise.Name,
		&muscleGroup,
		&typeName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, name)
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}
	exercise.MuscleGroup, _ = ParseMuscleGroup(muscleGroup)
	exercise.Type = ParseExerciseType(typeName)
	return exercise, nil
}

// Create adds a new exercise to the catalog.
func (r *sqliteExerciseRepository) Create(ctx context.Context, ex Exercise) (Exercise, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name, muscle_group, exercise_type)
		VALUES (?, ?, ?)`,
		ex.Name, string(ex.MuscleGroup), string(ex.Type))
	if err != nil {
		return ex, fmt.Errorf("insert exercise: %w", err)
	}
	if ex.ID, err = result.LastInsertId(); err != nil {
		return ex, fmt.Errorf("get last insert ID: %w", err)
	}
	return ex, nil
}

// Update applies updateFn to the named exercise and persists the result when
// the function reports a change.
func (r *sqliteExerciseRepository) Update(
	ctx context.Context,
	name string,
	updateFn func(ex *Exercise) (bool, error),
) error {
	exercise, err := r.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get exercise for update: %w", err)
	}

	updated, err := updateFn(&exercise)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return nil
	}

	if _, err = r.db.ReadWrite.ExecContext(ctx, `
		UPDATE exercises
		SET name = ?, muscle_group = ?, exercise_type = ?
		WHERE id = ?`,
		exercise.Name, string(exercise.MuscleGroup), string(exercise.Type), exercise.ID); err != nil {
		return fmt.Errorf("save updated exercise: %w", err)
	}
	return nil
}

// Delete removes an exercise from the catalog. Journal entries referencing
// it by name stay behind.
func (r *sqliteExerciseRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM exercises
		WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}
