package main

import (
	"net/http"
)

type adviceTemplateData struct {
	BaseTemplateData
	Advice string
}

// trainerAdvicePOST asks the AI coach for commentary on the current plan. The
// service degrades failures to a readable message, so this always renders.
func (app *application) trainerAdvicePOST(w http.ResponseWriter, r *http.Request) {
	data := adviceTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Advice:           app.trainerService.Advice(r.Context()),
	}

	app.render(w, r, http.StatusOK, "advice", data)
}
