package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avirtanen/gymprogress/internal/trainer"
)

// Session keys for the journal page.
const (
	sessionKeyJournalExercise = "journalExercise"
	sessionKeyFlash           = "flash"
)

type journalTemplateData struct {
	BaseTemplateData
	Flash            string
	Entries          []trainer.Entry
	Exercises        []trainer.Exercise
	SelectedExercise string
}

// journalGET shows the workout journal, optionally filtered to one exercise.
// The filter sticks in the session until it is cleared.
func (app *application) journalGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	selected := app.sessionManager.GetString(ctx, sessionKeyJournalExercise)
	if r.URL.Query().Has("exercise") {
		selected = r.URL.Query().Get("exercise")
		app.sessionManager.Put(ctx, sessionKeyJournalExercise, selected)
	}

	var (
		entries []trainer.Entry
		err     error
	)
	if selected == "" {
		entries, err = app.trainerService.Entries(ctx)
	} else {
		entries, err = app.trainerService.EntriesFor(ctx, selected)
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	exercises, err := app.trainerService.Exercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := journalTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Flash:            app.sessionManager.PopString(ctx, sessionKeyFlash),
		Entries:          entries,
		Exercises:        exercises,
		SelectedExercise: selected,
	}

	app.render(w, r, http.StatusOK, "journal", data)
}

// entryCreatePOST adds a journal entry from the add-entry form.
func (app *application) entryCreatePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	exerciseName := strings.TrimSpace(r.PostForm.Get("exercise"))
	if exerciseName == "" {
		http.Error(w, "exercise name is required", http.StatusUnprocessableEntity)
		return
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("weight")), 64)
	if err != nil {
		http.Error(w, "invalid weight", http.StatusUnprocessableEntity)
		return
	}

	entry := trainer.Entry{
		Date:         strings.TrimSpace(r.PostForm.Get("date")),
		ExerciseName: exerciseName,
		Weight:       weight,
		Reps:         strings.TrimSpace(r.PostForm.Get("reps")),
	}
	if _, err = app.trainerService.AddEntry(r.Context(), entry); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, "Entry added.")
	redirect(w, r, "/")
}

type entryEditTemplateData struct {
	BaseTemplateData
	Entry     trainer.Entry
	Exercises []trainer.Exercise
}

// entryEditGET shows the edit form for a journal entry.
func (app *application) entryEditGET(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	entry, err := app.trainerService.Entry(ctx, id)
	if err != nil {
		if errors.Is(err, trainer.ErrEntryNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	exercises, err := app.trainerService.Exercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := entryEditTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Entry:            entry,
		Exercises:        exercises,
	}

	app.render(w, r, http.StatusOK, "entry-edit", data)
}

// entryUpdatePOST updates a journal entry from the edit form. Fields absent
// from the form keep their current value.
func (app *application) entryUpdatePOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	form := r.PostForm

	var weight float64
	if form.Has("weight") {
		var err error
		if weight, err = strconv.ParseFloat(strings.TrimSpace(form.Get("weight")), 64); err != nil {
			http.Error(w, "invalid weight", http.StatusUnprocessableEntity)
			return
		}
	}
	if form.Has("exercise") && strings.TrimSpace(form.Get("exercise")) == "" {
		http.Error(w, "exercise name is required", http.StatusUnprocessableEntity)
		return
	}

	err := app.trainerService.UpdateEntry(r.Context(), id, func(e *trainer.Entry) (bool, error) {
		if date := strings.TrimSpace(form.Get("date")); form.Has("date") && date != "" {
			e.Date = date
		}
		if form.Has("exercise") {
			e.ExerciseName = strings.TrimSpace(form.Get("exercise"))
		}
		if form.Has("weight") {
			e.Weight = weight
		}
		if form.Has("reps") {
			e.Reps = strings.TrimSpace(form.Get("reps"))
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, trainer.ErrEntryNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, "Entry updated.")
	redirect(w, r, "/")
}

// entryDeletePOST removes a journal entry.
func (app *application) entryDeletePOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := app.trainerService.DeleteEntry(r.Context(), id); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, "Entry deleted.")
	redirect(w, r, "/")
}
