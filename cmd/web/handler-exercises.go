package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avirtanen/gymprogress/internal/trainer"
)

type exercisesTemplateData struct {
	BaseTemplateData
	Flash        string
	Exercises    []trainer.Exercise
	MuscleGroups []trainer.MuscleGroup
}

type alternativesTemplateData struct {
	BaseTemplateData
	Exercise     trainer.Exercise
	Alternatives []trainer.Exercise
}

// exercisesGET shows the exercise catalog with the add-exercise form.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exercises, err := app.trainerService.Exercises(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := exercisesTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Flash:            app.sessionManager.PopString(ctx, sessionKeyFlash),
		Exercises:        exercises,
		MuscleGroups:     trainer.AllMuscleGroups(),
	}

	app.render(w, r, http.StatusOK, "exercises", data)
}

// exerciseCreatePOST adds a new exercise to the catalog.
func (app *application) exerciseCreatePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	if name == "" {
		http.Error(w, "exercise name is required", http.StatusUnprocessableEntity)
		return
	}
	muscleGroup, ok := trainer.ParseMuscleGroup(r.PostForm.Get("muscle_group"))
	if !ok {
		http.Error(w, "unknown muscle group", http.StatusUnprocessableEntity)
		return
	}

	exercise := trainer.Exercise{
		Name:        name,
		MuscleGroup: muscleGroup,
		Type:        trainer.ParseExerciseType(r.PostForm.Get("exercise_type")),
	}
	if _, err := app.trainerService.CreateExercise(r.Context(), exercise); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, fmt.Sprintf("Exercise %s added.", name))
	redirect(w, r, "/exercises")
}

type exerciseEditTemplateData struct {
	BaseTemplateData
	Exercise     trainer.Exercise
	MuscleGroups []trainer.MuscleGroup
}

// exerciseEditGET shows the edit form for a catalog exercise.
func (app *application) exerciseEditGET(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	exercise, err := app.trainerService.ExerciseByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, trainer.ErrExerciseNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := exerciseEditTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Exercise:         exercise,
		MuscleGroups:     trainer.AllMuscleGroups(),
	}

	app.render(w, r, http.StatusOK, "exercise-edit", data)
}

// exerciseUpdatePOST renames or reclassifies a catalog exercise. Fields
// absent from the form keep their current value.
func (app *application) exerciseUpdatePOST(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	form := r.PostForm

	newName := strings.TrimSpace(form.Get("name"))
	if form.Has("name") && newName == "" {
		http.Error(w, "exercise name is required", http.StatusUnprocessableEntity)
		return
	}
	var muscleGroup trainer.MuscleGroup
	if form.Has("muscle_group") {
		var ok bool
		if muscleGroup, ok = trainer.ParseMuscleGroup(form.Get("muscle_group")); !ok {
			http.Error(w, "unknown muscle group", http.StatusUnprocessableEntity)
			return
		}
	}

	err := app.trainerService.UpdateExercise(r.Context(), name, func(ex *trainer.Exercise) (bool, error) {
		if form.Has("name") {
			ex.Name = newName
		}
		if form.Has("muscle_group") {
			ex.MuscleGroup = muscleGroup
		}
		if form.Has("exercise_type") {
			ex.Type = trainer.ParseExerciseType(form.Get("exercise_type"))
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, trainer.ErrExerciseNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, fmt.Sprintf("Exercise %s updated.", name))
	redirect(w, r, "/exercises")
}

// exerciseDeletePOST removes an exercise from the catalog. Journal entries
// referencing it stay behind.
func (app *application) exerciseDeletePOST(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := app.trainerService.DeleteExercise(r.Context(), name); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash, fmt.Sprintf("Exercise %s deleted.", name))
	redirect(w, r, "/exercises")
}

// exerciseAlternativesGET lists catalog exercises interchangeable with the
// named one (same muscle group and type).
func (app *application) exerciseAlternativesGET(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx := r.Context()

	exercise, err := app.trainerService.ExerciseByName(ctx, name)
	if err != nil {
		if errors.Is(err, trainer.ErrExerciseNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	alternatives, err := app.trainerService.ExerciseAlternatives(ctx, name)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := alternativesTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Exercise:         exercise,
		Alternatives:     alternatives,
	}

	app.render(w, r, http.StatusOK, "alternatives", data)
}
