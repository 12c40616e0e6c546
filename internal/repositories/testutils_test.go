package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/SAHU-01/VisaVerse/internal/sqlite"
	"github.com/SAHU-01/VisaVerse/internal/testhelpers"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
