package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrEntryNotFound marks lookups of journal entries that do not exist.
var ErrEntryNotFound = errors.New("entry not found")

// sqliteEntryRepository stores the workout journal.
type sqliteEntryRepository struct {
	baseRepository
}

// List returns every journal entry, newest date first.
func (r *sqliteEntryRepository) List(ctx context.Context) ([]Entry, error) {
	return r.query(ctx, `
		SELECT id, date, exercise_name, weight_kg, reps
		FROM workout_entries
		ORDER BY date DESC, id DESC`)
}

// ListByExercise returns the journal for one exercise, newest date first.
func (r *sqliteEntryRepository) ListByExercise(ctx context.Context, exerciseName string) ([]Entry, error) {
	return r.query(ctx, `
		SELECT id, date, exercise_name, weight_kg, reps
		FROM workout_entries
		WHERE exercise_name = ?
		ORDER BY date DESC, id DESC`, exerciseName)
}

// Get retrieves a single entry by ID.
func (r *sqliteEntryRepository) Get(ctx context.Context, id int64) (Entry, error) {
	var entry Entry
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, date, exercise_name, weight_kg, reps
		FROM workout_entries
		WHERE id = ?`, id).Scan(
		&entry.ID,
		&entry.Date,
		&entry.ExerciseName,
		&entry.Weight,
		&entry.Reps,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("query entry: %w", err)
	}
	return entry, nil
}

// Insert appends a new entry to the journal and returns it with its ID.
func (r *sqliteEntryRepository) Insert(ctx context.Context, entry Entry) (Entry, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_entries (date, exercise_name, weight_kg, reps)
		VALUES (?, ?, ?, ?)`,
		entry.Date, entry.ExerciseName, entry.Weight, entry.Reps)
	if err != nil {
		return entry, fmt.Errorf("insert entry: %w", err)
	}
	if entry.ID, err = result.LastInsertId(); err != nil {
		return entry, fmt.Errorf("get last insert ID: %w", err)
	}
	return entry, nil
}

// Update overwrites an existing entry.
func (r *sqliteEntryRepository) Update(ctx context.Context, entry Entry) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_entries
		SET date = ?, exercise_name = ?, weight_kg = ?, reps = ?
		WHERE id = ?`,
		entry.Date, entry.ExerciseName, entry.Weight, entry.Reps, entry.ID); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete removes an entry from the journal.
func (r *sqliteEntryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM workout_entries
		WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (r *sqliteEntryRepository) query(ctx context.Context, query string, args ...any) (_ []Entry, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err = rows.Scan(&entry.ID, &entry.Date, &entry.ExerciseName, &entry.Weight, &entry.Reps); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return entries, nil
}
