package main

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/SAHU-01/VisaVerse/internal/preferences"
)

// preferencesResponse is the session's preference snapshot as served to
// clients. The derived asset-class mirror and the current step's proceed
// predicate ride along so clients need no duplicate logic.
type preferencesResponse struct {
	preferences.State
	DefaultAssetClassAny []preferences.AssetClass `json:"default_asset_class_any"`
	CanProceed           bool                     `json:"can_proceed"`
}

func newPreferencesResponse(state preferences.State) preferencesResponse {
	return preferencesResponse{
		State:                state,
		DefaultAssetClassAny: state.DefaultAssetClassAny(),
		CanProceed:           state.CanProceed(state.OnboardingStep),
	}
}

func (app *application) showPreferences(w http.ResponseWriter, r *http.Request) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	state, err := app.store.Get(r.Context(), sid)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newPreferencesResponse(state))
}

// mutatePreferences applies one mutation to the session's state and
// responds with the resulting snapshot.
func (app *application) mutatePreferences(w http.ResponseWriter, r *http.Request, mutate func(*preferences.State)) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	state, err := app.store.Update(r.Context(), sid, mutate)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newPreferencesResponse(state))
}

func (app *application) toggleIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Intent preferences.AssetClass `json:"intent"`
	}
	if err := app.readJSON(r, &body); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !slices.Contains(preferences.AssetClasses, body.Intent) {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown intent %q", body.Intent))
		return
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.ToggleIntent(body.Intent)
	})
}

func (app *application) setIntents(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Intents []preferences.AssetClass `json:"intents"`
	}
	if err := app.readJSON(r, &body); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	for _, intent := range body.Intents {
		if !slices.Contains(preferences.AssetClasses, intent) {
			app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown intent %q", intent))
			return
		}
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.SetIntents(body.Intents)
	})
}

func (app *application) clearIntents(w http.ResponseWriter, r *http.Request) {
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.ClearIntents()
	})
}

func (app *application) setPersona(w http.ResponseWriter, r *http.Request) {
	var patch preferences.PersonaPatch
	if err := app.readJSON(r, &patch); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if patch.InvestorType != "" && !slices.Contains(preferences.InvestorTypes, patch.InvestorType) {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown investor type %q", patch.InvestorType))
		return
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.SetPersona(patch)
	})
}

func (app *application) toggleCountry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Country string `json:"country"`
	}
	if err := app.readJSON(r, &body); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if body.Country == "" {
		app.clientError(w, r, http.StatusBadRequest, "country is required")
		return
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.ToggleCountry(body.Country)
	})
}

func (app *application) setCountries(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Countries []string `json:"countries"`
	}
	if err := app.readJSON(r, &body); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.SetCountries(body.Countries)
	})
}

func (app *application) nextStep(w http.ResponseWriter, r *http.Request) {
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.NextStep()
	})
}

func (app *application) prevStep(w http.ResponseWriter, r *http.Request) {
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.PrevStep()
	})
}

func (app *application) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	state, err := app.store.Get(r.Context(), sid)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	// The state machine itself does not validate completion; gating every
	// step's minimum selection is this layer's job.
	for step := preferences.FirstStep; step <= preferences.LastStep; step++ {
		if !state.CanProceed(step) {
			app.clientError(w, r, http.StatusConflict, fmt.Sprintf("onboarding step %d is incomplete", step))
			return
		}
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.CompleteOnboarding()
	})
}

func (app *application) resetOnboarding(w http.ResponseWriter, r *http.Request) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if err = app.history.Clear(r.Context(), sid); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.mutatePreferences(w, r, func(s *preferences.State) {
		s.Reset()
	})
}
