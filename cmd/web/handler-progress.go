package main

import (
	"errors"
	"net/http"

	"github.com/avirtanen/gymprogress/internal/trainer"
)

type progressTemplateData struct {
	BaseTemplateData
	Report trainer.ProgressReport
}

// progressGET shows the score breakdown for the latest session of an exercise
// and the comparison against the previous one.
func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	exerciseName := r.PathValue("exercise")

	report, err := app.trainerService.Progress(r.Context(), exerciseName)
	if err != nil {
		if errors.Is(err, trainer.ErrExerciseNotFound) || errors.Is(err, trainer.ErrEntryNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := progressTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Report:           report,
	}

	app.render(w, r, http.StatusOK, "progress", data)
}
