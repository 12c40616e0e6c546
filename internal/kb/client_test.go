package kb_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/SAHU-01/VisaVerse/internal/preferences"
	"github.com/SAHU-01/VisaVerse/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestClient_Ask(t *testing.T) {
	t.Parallel()

	want := kb.AnswerResult{
		Answer: kb.Answer{
			Summary: "NRIs may purchase residential property without prior approval.",
			Sections: []kb.AnswerSection{
				{Title: "Eligibility", Bullets: []string{"Residential and commercial property allowed", "Farmland excluded"}},
			},
			Limitations: "Not legal advice.",
			Citations:   []string{"fema-1999-s6"},
		},
		Evidence: []kb.Evidence{
			{
				ChunkID: "fema-1999-s6",
				Score:   0.91,
				Text:    "A person resident outside India may acquire immovable property in India...",
				Meta: kb.EvidenceMeta{
					URL:        "https://example.gov.in/fema",
					Title:      "FEMA 1999 Section 6",
					SourceType: "statute",
					AssetClass: []string{"real_estate"},
					TrustRank:  1,
					Country:    "India",
				},
			},
		},
	}

	var received kb.Query
	collaborator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"), "requests must carry a correlation id")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(want))
	}))
	defer collaborator.Close()

	client := kb.NewClient(collaborator.URL, testhelpers.NewLogger(io.Discard))
	state := preferences.NewState()
	state.SetPersona(preferences.PersonaPatch{Citizenship: "India", Residency: "India"})
	query := kb.BuildQuery(state, "Can an NRI buy farmland?", kb.Overrides{})

	result := client.Ask(context.Background(), query)
	require.Equal(t, want, result)
	require.Equal(t, query, received, "payload must arrive at the collaborator unchanged")
}

func TestClient_AskTransportFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint func(t *testing.T) string
	}{
		{
			name: "non-success status",
			endpoint: func(t *testing.T) string {
				t.Helper()
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					http.Error(w, "upstream exploded", http.StatusBadGateway)
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
		{
			name: "malformed response body",
			endpoint: func(t *testing.T) string {
				t.Helper()
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte("not json"))
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
		{
			name: "refused connection",
			endpoint: func(t *testing.T) string {
				t.Helper()
				srv := httptest.NewServer(http.NewServeMux())
				srv.Close()
				return srv.URL
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := kb.NewClient(tt.endpoint(t), testhelpers.NewLogger(io.Discard))
			query := kb.BuildQuery(preferences.NewState(), "question", kb.Overrides{})

			result := client.Ask(context.Background(), query)

			require.Equal(t, kb.DegradedResult(), result)
			require.Empty(t, result.Answer.Sections)
			require.Empty(t, result.Answer.Citations)
			require.Empty(t, result.Evidence)
			require.NotEmpty(t, result.Answer.Summary)
		})
	}
}
