package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/avirtanen/gymprogress/internal/trainer"
)

type settingsTemplateData struct {
	BaseTemplateData
	Flash             string
	Settings          trainer.Settings
	Goal              trainer.Goal
	Goals             []trainer.Goal
	SplitTypes        []trainer.SplitType
	PriorityGroupsRaw string
	CustomSplitRaw    string
}

// settingsGET shows the trainer settings and training goal form.
func (app *application) settingsGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := app.trainerService.Settings(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	goal, err := app.trainerService.Goal(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := settingsTemplateData{
		BaseTemplateData:  newBaseTemplateData(r),
		Flash:             app.sessionManager.PopString(ctx, sessionKeyFlash),
		Settings:          settings,
		Goal:              goal,
		Goals:             trainer.AllGoals(),
		SplitTypes:        trainer.AllSplitTypes(),
		PriorityGroupsRaw: trainer.SerializeMuscleGroupList(settings.PriorityGroups),
		CustomSplitRaw:    trainer.SerializeCustomSplitDays(settings.CustomSplitDays),
	}

	app.render(w, r, http.StatusOK, "settings", data)
}

// settingsPOST saves the trainer settings and the training goal. Fields absent
// from the form keep their current value, except checkboxes, which browsers
// omit when unchecked.
func (app *application) settingsPOST(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	settings, err := app.trainerService.Settings(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	applySettingsForm(&settings, r.PostForm)

	if err = app.trainerService.SaveSettings(ctx, settings); err != nil {
		app.serverError(w, r, err)
		return
	}

	if r.PostForm.Has("goal") {
		if err = app.trainerService.SaveGoal(ctx, trainer.ParseGoal(r.PostForm.Get("goal"))); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	app.sessionManager.Put(ctx, sessionKeyFlash, "Settings saved.")
	redirect(w, r, "/settings")
}

// The engine plans for 2 to 6 training days per week.
const (
	minDaysPerWeek = 2
	maxDaysPerWeek = 6
)

func applySettingsForm(settings *trainer.Settings, form url.Values) {
	if form.Has("split") {
		settings.Split = trainer.ParseSplitType(form.Get("split"))
	}
	if form.Has("days_per_week") {
		if days, err := strconv.Atoi(strings.TrimSpace(form.Get("days_per_week"))); err == nil {
			settings.DaysPerWeek = min(max(days, minDaysPerWeek), maxDaysPerWeek)
		}
	}
	if form.Has("priority_groups") {
		settings.PriorityGroups = trainer.ParseMuscleGroupList(form.Get("priority_groups"))
	}
	if form.Has("custom_split_days") {
		settings.CustomSplitDays = trainer.ParseCustomSplitDays(form.Get("custom_split_days"))
	}
	if form.Has("deload_interval_weeks") {
		if weeks, err := strconv.Atoi(strings.TrimSpace(form.Get("deload_interval_weeks"))); err == nil {
			settings.DeloadIntervalWeeks = max(weeks, 1)
		}
	}
	if form.Has("progression") {
		settings.Progression = trainer.ParseProgressionType(form.Get("progression"))
	}
	settings.IncludeWarmup = checkboxChecked(form.Get("include_warmup"))
	settings.AutoDeload = checkboxChecked(form.Get("auto_deload"))
}

func checkboxChecked(value string) bool {
	return value == "on" || value == "true" || value == "1"
}
