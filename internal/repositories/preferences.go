package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/preferences"
	"github.com/SAHU-01/VisaVerse/internal/sqlite"
)

// PreferenceRepository persists one preference state per session so that
// onboarding answers survive restarts. It implements
// [preferences.Repository].
type PreferenceRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewPreferenceRepository(dbs *sqlite.Database, logger *slog.Logger) *PreferenceRepository {
	return &PreferenceRepository{
		dbs:    dbs,
		logger: logger.With("source", "PreferenceRepository"),
	}
}

// preferenceRow is the flattened database representation of a preference
// state. The ordered selections travel as JSON arrays.
type preferenceRow struct {
	SessionID          string `db:"session_id"`
	PreferredIntents   string `db:"preferred_intents"`
	Citizenship        string `db:"citizenship"`
	Residency          string `db:"residency"`
	InvestorType       string `db:"investor_type"`
	DefaultCountries   string `db:"default_countries"`
	OnboardingStep     int    `db:"onboarding_step"`
	OnboardingComplete bool   `db:"onboarding_complete"`
}

func (r *PreferenceRepository) Load(ctx context.Context, sessionID string) (preferences.State, error) {
	var (
		row   preferenceRow
		state preferences.State
	)

	stmt := `SELECT session_id, preferred_intents, citizenship, residency, investor_type,
       default_countries, onboarding_step, onboarding_complete
FROM preference_states
WHERE session_id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &row, stmt, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state, preferences.ErrNotFound
		}
		return state, errors.Wrap(err, "read preference state")
	}

	if err := json.Unmarshal([]byte(row.PreferredIntents), &state.PreferredIntents); err != nil {
		return state, errors.Wrap(err, "unmarshal preferred intents", slog.String("session_id", sessionID))
	}
	if err := json.Unmarshal([]byte(row.DefaultCountries), &state.DefaultCountries); err != nil {
		return state, errors.Wrap(err, "unmarshal default countries", slog.String("session_id", sessionID))
	}
	state.Persona = preferences.Persona{
		Citizenship:  row.Citizenship,
		Residency:    row.Residency,
		InvestorType: preferences.InvestorType(row.InvestorType),
	}
	state.OnboardingStep = row.OnboardingStep
	state.OnboardingComplete = row.OnboardingComplete

	return state, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, sessionID string, state preferences.State) error {
	intents, err := json.Marshal(state.PreferredIntents)
	if err != nil {
		return errors.Wrap(err, "marshal preferred intents")
	}
	countries, err := json.Marshal(state.DefaultCountries)
	if err != nil {
		return errors.Wrap(err, "marshal default countries")
	}

	stmt := `INSERT INTO preference_states (session_id, preferred_intents, citizenship, residency, investor_type,
                               default_countries, onboarding_step, onboarding_complete, updated_at)
VALUES (:session_id, :preferred_intents, :citizenship, :residency, :investor_type,
        :default_countries, :onboarding_step, :onboarding_complete, datetime('now'))
ON CONFLICT (session_id) DO UPDATE SET preferred_intents   = excluded.preferred_intents,
                                       citizenship         = excluded.citizenship,
                                       residency           = excluded.residency,
                                       investor_type       = excluded.investor_type,
                                       default_countries   = excluded.default_countries,
                                       onboarding_step     = excluded.onboarding_step,
                                       onboarding_complete = excluded.onboarding_complete,
                                       updated_at          = excluded.updated_at`
	row := preferenceRow{
		SessionID:          sessionID,
		PreferredIntents:   string(intents),
		Citizenship:        state.Persona.Citizenship,
		Residency:          state.Persona.Residency,
		InvestorType:       string(state.Persona.InvestorType),
		DefaultCountries:   string(countries),
		OnboardingStep:     state.OnboardingStep,
		OnboardingComplete: state.OnboardingComplete,
	}
	if _, err = r.dbs.ReadWrite.NamedExecContext(ctx, stmt, row); err != nil {
		return errors.Wrap(err, "upsert preference state", slog.String("session_id", sessionID))
	}
	return nil
}

// Delete removes a session's saved state. Loading it afterwards yields
// [preferences.ErrNotFound], i.e. the initial state.
func (r *PreferenceRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.dbs.ReadWrite.ExecContext(ctx,
		`DELETE FROM preference_states WHERE session_id = ?`, sessionID); err != nil {
		return errors.Wrap(err, "delete preference state", slog.String("session_id", sessionID))
	}
	return nil
}
