package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(next))
		}
		page = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.csrfProtect(
				app.logAndTraceRequest(secureHeaders(app.commonContext(next)))))))
		}
	)

	mux.Handle("GET /{$}", page(http.HandlerFunc(app.journalGET)))
	mux.Handle("POST /entries", page(http.HandlerFunc(app.entryCreatePOST)))
	mux.Handle("GET /entries/{id}/edit", page(http.HandlerFunc(app.entryEditGET)))
	mux.Handle("POST /entries/{id}", page(http.HandlerFunc(app.entryUpdatePOST)))
	mux.Handle("POST /entries/{id}/delete", page(http.HandlerFunc(app.entryDeletePOST)))

	mux.Handle("GET /progress/{exercise}", page(http.HandlerFunc(app.progressGET)))

	mux.Handle("GET /trainer", page(http.HandlerFunc(app.trainerGET)))
	mux.Handle("POST /trainer/finish", page(http.HandlerFunc(app.trainerFinishPOST)))
	mux.Handle("POST /trainer/advice", page(http.HandlerFunc(app.trainerAdvicePOST)))

	mux.Handle("GET /exercises", page(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("POST /exercises", page(http.HandlerFunc(app.exerciseCreatePOST)))
	mux.Handle("GET /exercises/{name}/edit", page(http.HandlerFunc(app.exerciseEditGET)))
	mux.Handle("POST /exercises/{name}", page(http.HandlerFunc(app.exerciseUpdatePOST)))
	mux.Handle("POST /exercises/{name}/delete", page(http.HandlerFunc(app.exerciseDeletePOST)))
	mux.Handle("GET /exercises/{name}/alternatives", page(http.HandlerFunc(app.exerciseAlternativesGET)))

	mux.Handle("GET /settings", page(http.HandlerFunc(app.settingsGET)))
	mux.Handle("POST /settings", page(http.HandlerFunc(app.settingsPOST)))

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	mux.Handle("/", page(http.HandlerFunc(app.notFound)))

	return mux
}
