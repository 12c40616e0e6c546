package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/random"
)

const sessionIDKey = "sid"

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(message, "method", method, "uri", uri, "status", status)
	http.Error(w, message, status)
}

// sessionID returns the stable identifier for the current session, minting
// one on first use. The identifier keys the persisted preference state and
// the answer transcript.
func (app *application) sessionID(r *http.Request) (string, error) {
	ctx := r.Context()
	sid := app.sessionManager.GetString(ctx, sessionIDKey)
	if sid != "" {
		return sid, nil
	}
	sid, err := random.Letters(32) //nolint:mnd // long enough to never collide.
	if err != nil {
		return "", errors.Wrap(err, "generate session id")
	}
	app.sessionManager.Put(ctx, sessionIDKey, sid)
	return sid, nil
}

// readJSON decodes the request body into dst, rejecting unknown fields so
// typos in client payloads fail loudly.
func (app *application) readJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already written; all we can do is log.
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write response", errors.SlogError(err))
	}
}
