package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avirtanen/gymprogress/internal/trainer"
)

type trainerTemplateData struct {
	BaseTemplateData
	Flash          string
	Recommendation trainer.Recommendation
}

// trainerGET shows the generated plan for the next training day together with
// the finish-workout form.
func (app *application) trainerGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recommendation, err := app.trainerService.Recommendation(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := trainerTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Flash:            app.sessionManager.PopString(ctx, sessionKeyFlash),
		Recommendation:   recommendation,
	}

	app.render(w, r, http.StatusOK, "trainer", data)
}

// trainerFinishPOST folds the logged sets into journal entries. The form posts
// one row per set through the repeated set_* fields.
func (app *application) trainerFinishPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	sets, err := parseCompletedSets(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	saved, err := app.trainerService.FinishWorkout(r.Context(), strings.TrimSpace(r.PostForm.Get("date")), sets)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), sessionKeyFlash,
		fmt.Sprintf("Workout saved: %d journal entries.", len(saved)))
	redirect(w, r, "/")
}

// parseCompletedSets reads the parallel set_* form slices. Rows with an empty
// exercise name are skipped so that untouched form rows do not end up in the
// journal.
func parseCompletedSets(form map[string][]string) ([]trainer.CompletedSet, error) {
	var (
		names   = form["set_exercise"]
		types   = form["set_type"]
		weights = form["set_weight"]
		reps    = form["set_reps"]
	)

	var sets []trainer.CompletedSet
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || i >= len(weights) || i >= len(reps) {
			continue
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(weights[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight on set %d", i+1)
		}
		repCount, err := strconv.Atoi(strings.TrimSpace(reps[i]))
		if err != nil {
			return nil, fmt.Errorf("invalid reps on set %d", i+1)
		}

		setType := trainer.SetWorking
		if i < len(types) && types[i] == string(trainer.SetWarmup) {
			setType = trainer.SetWarmup
		}

		sets = append(sets, trainer.CompletedSet{
			ExerciseName: name,
			Type:         setType,
			Weight:       weight,
			Reps:         repCount,
		})
	}
	return sets, nil
}
