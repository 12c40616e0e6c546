package repositories

import (
	"context"
	"log/slog"

	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/models"
	"github.com/SAHU-01/VisaVerse/internal/sqlite"
)

// HistoryRepository stores the transcript of answered questions per session.
type HistoryRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewHistoryRepository(dbs *sqlite.Database, logger *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		dbs:    dbs,
		logger: logger.With("source", "HistoryRepository"),
	}
}

// Append records an answered question at the end of the session's transcript.
func (r *HistoryRepository) Append(ctx context.Context, sessionID, question, summary string) error {
	stmt := `INSERT INTO answers (session_id, "order", question, summary)
SELECT ?, COALESCE(MAX("order") + 1, 0), ?, ?
FROM answers
WHERE session_id = ?`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, sessionID, question, summary, sessionID); err != nil {
		return errors.Wrap(err, "insert answer", slog.String("session_id", sessionID))
	}
	return nil
}

// List returns the session's transcript in submission order.
func (r *HistoryRepository) List(ctx context.Context, sessionID string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	stmt := `SELECT id, "order", question, summary
FROM answers
WHERE session_id = ?
ORDER BY "order"`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &entries, stmt, sessionID); err != nil {
		return nil, errors.Wrap(err, "query answers", slog.String("session_id", sessionID))
	}
	return entries, nil
}

// Clear drops the session's transcript, e.g. when onboarding is reset.
func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.dbs.ReadWrite.ExecContext(ctx,
		`DELETE FROM answers WHERE session_id = ?`, sessionID); err != nil {
		return errors.Wrap(err, "delete answers", slog.String("session_id", sessionID))
	}
	return nil
}
