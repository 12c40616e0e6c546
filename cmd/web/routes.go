package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("GET /api/meta", app.meta)

	session := alice.New(app.sessionManager.LoadAndSave)

	mux.Handle("GET /api/preferences", session.ThenFunc(app.showPreferences))

	mux.Handle("POST /api/onboarding/intent", session.ThenFunc(app.toggleIntent))
	mux.Handle("PUT /api/onboarding/intents", session.ThenFunc(app.setIntents))
	mux.Handle("DELETE /api/onboarding/intents", session.ThenFunc(app.clearIntents))
	mux.Handle("POST /api/onboarding/persona", session.ThenFunc(app.setPersona))
	mux.Handle("POST /api/onboarding/country", session.ThenFunc(app.toggleCountry))
	mux.Handle("PUT /api/onboarding/countries", session.ThenFunc(app.setCountries))
	mux.Handle("POST /api/onboarding/next", session.ThenFunc(app.nextStep))
	mux.Handle("POST /api/onboarding/prev", session.ThenFunc(app.prevStep))
	mux.Handle("POST /api/onboarding/complete", session.ThenFunc(app.completeOnboarding))
	mux.Handle("POST /api/onboarding/reset", session.ThenFunc(app.resetOnboarding))

	mux.Handle("POST /api/ask", session.ThenFunc(app.ask))
	mux.Handle("GET /api/ask/history", session.ThenFunc(app.askHistory))

	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders, noSurf)

	return standard.Then(mux)
}
