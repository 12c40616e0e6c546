package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/kb"
)

type askRequest struct {
	Question  string       `json:"question"`
	Overrides kb.Overrides `json:"overrides"`
}

// ask normalizes the question into a knowledge-base query using the
// session's preference snapshot and returns the answer with its evidence.
//
// The question surface is gated on completed onboarding. A transport
// failure towards the knowledge base is not an error here: the client
// converts it into a degraded answer.
func (app *application) ask(w http.ResponseWriter, r *http.Request) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var req askRequest
	if err = app.readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		app.clientError(w, r, http.StatusBadRequest, "question is required")
		return
	}

	state, err := app.store.Get(r.Context(), sid)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !state.OnboardingComplete {
		app.clientError(w, r, http.StatusConflict, "onboarding is not complete")
		return
	}

	query := kb.BuildQuery(state, question, req.Overrides)
	result := app.kbClient.Ask(r.Context(), query)

	if err = app.history.Append(r.Context(), sid, question, result.Answer.Summary); err != nil {
		// The answer is already in hand; losing a transcript row should not
		// fail the question.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "could not append to history",
			errors.SlogError(err), slog.String("session_id", sid))
	}

	app.writeJSON(w, r, http.StatusOK, result)
}

func (app *application) askHistory(w http.ResponseWriter, r *http.Request) {
	sid, err := app.sessionID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	entries, err := app.history.List(r.Context(), sid)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, entries)
}
