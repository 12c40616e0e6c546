package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAHU-01/VisaVerse/internal/e2etest"
	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/stretchr/testify/require"
)

// testLookupEnv configures the server for tests: a dynamically allocated
// port, an in-memory database, no pprof and the given knowledge-base stub.
func testLookupEnv(kbURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "VISAVERSE_ADDR":
			return "localhost:0", true
		case "VISAVERSE_SQLITE_URL":
			return ":memory:", true
		case "VISAVERSE_PPROF_PORT":
			return "", true
		case "VISAVERSE_KB_URL":
			return kbURL, true
		default:
			return "", false
		}
	}
}

// startTestServer starts an in-process server backed by the given
// knowledge-base endpoint and returns it ready for requests.
func startTestServer(t *testing.T, kbURL string) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv(kbURL), run)
	require.NoError(t, err)
	return srv
}

// startStubKB starts a knowledge-base collaborator stub. It records the
// last received query and serves the given result.
func startStubKB(t *testing.T, result kb.AnswerResult) (string, *kb.Query) {
	t.Helper()
	var lastQuery kb.Query
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastQuery))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(result))
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &lastQuery
}

// completeOnboarding walks the client through a minimal valid wizard run.
func completeOnboarding(t *testing.T, client *e2etest.Client) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, client.DoJSON(ctx, http.MethodPost, "/api/onboarding/intent",
		map[string]string{"intent": "real_estate"}, nil))
	require.NoError(t, client.DoJSON(ctx, http.MethodPost, "/api/onboarding/persona",
		map[string]string{"citizenship": "India", "residency": "Singapore", "investor_type": "nri"}, nil))
	require.NoError(t, client.DoJSON(ctx, http.MethodPost, "/api/onboarding/country",
		map[string]string{"country": "United States"}, nil))
	require.NoError(t, client.DoJSON(ctx, http.MethodPost, "/api/onboarding/complete", nil, nil))
}
