package kb_test

import (
	"testing"

	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/SAHU-01/VisaVerse/internal/preferences"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_AssetClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		intents   []preferences.AssetClass
		overrides kb.Overrides
		want      []string
	}{
		{
			name:    "empty selection still carries the mandatory set",
			intents: nil,
			want:    []string{"tax", "compliance"},
		},
		{
			name: "mandatory first, duplicate tax collapsed to first occurrence",
			intents: []preferences.AssetClass{
				preferences.AssetClassRealEstate,
				preferences.AssetClassTax,
			},
			want: []string{"tax", "compliance", "real_estate"},
		},
		{
			name: "user order preserved after the mandatory set",
			intents: []preferences.AssetClass{
				preferences.AssetClassStartups,
				preferences.AssetClassCrypto,
				preferences.AssetClassInvesting,
			},
			want: []string{"tax", "compliance", "startups", "crypto", "investing"},
		},
		{
			name:      "explicit override replaces the stored selection",
			intents:   []preferences.AssetClass{preferences.AssetClassCrypto},
			overrides: kb.Overrides{AssetClassAny: []string{"real_estate", "compliance"}},
			want:      []string{"tax", "compliance", "real_estate"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := preferences.NewState()
			state.SetIntents(tt.intents)
			query := kb.BuildQuery(state, "question", tt.overrides)
			require.Equal(t, tt.want, query.AssetClassAny)
			require.Contains(t, query.AssetClassAny, "tax")
			require.Contains(t, query.AssetClassAny, "compliance")
		})
	}
}

func TestBuildQuery_Countries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		persona   preferences.PersonaPatch
		countries []string
		want      []string
	}{
		{
			name: "nothing set falls back to the fixed list in order",
			want: []string{"United States", "India"},
		},
		{
			name:      "residency deduplicated against citizenship, citizenship first",
			persona:   preferences.PersonaPatch{Citizenship: "India", Residency: "India"},
			countries: []string{"United States"},
			want:      []string{"India", "United States"},
		},
		{
			name:      "citizenship, residency, then selected countries",
			persona:   preferences.PersonaPatch{Citizenship: "Japan", Residency: "Singapore"},
			countries: []string{"Singapore", "Germany", "Japan", "France"},
			want:      []string{"Japan", "Singapore", "Germany", "France"},
		},
		{
			name:      "countries alone skip the fallback",
			countries: []string{"Netherlands"},
			want:      []string{"Netherlands"},
		},
		{
			name:    "citizenship alone skips the fallback",
			persona: preferences.PersonaPatch{Citizenship: "Canada"},
			want:    []string{"Canada"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := preferences.NewState()
			state.SetPersona(tt.persona)
			state.SetCountries(tt.countries)
			query := kb.BuildQuery(state, "question", kb.Overrides{})
			require.Equal(t, tt.want, query.Countries)
			require.NotEmpty(t, query.Countries)
		})
	}
}

func TestBuildQuery_PersonaDefaulting(t *testing.T) {
	t.Parallel()

	query := kb.BuildQuery(preferences.NewState(), "question", kb.Overrides{})
	require.Equal(t, kb.QueryPersona{
		Citizenship:  "India",
		Residency:    "India",
		InvestorType: "individual",
	}, query.Persona)

	state := preferences.NewState()
	state.SetPersona(preferences.PersonaPatch{
		Citizenship:  "United States",
		InvestorType: preferences.InvestorTypeLLP,
	})
	query = kb.BuildQuery(state, "question", kb.Overrides{})
	require.Equal(t, kb.QueryPersona{
		Citizenship:  "United States",
		Residency:    "India",
		InvestorType: "llp",
	}, query.Persona)
}

func TestBuildQuery_FixedFields(t *testing.T) {
	t.Parallel()

	// Source types cannot be overridden, output and strict citations are
	// never configurable.
	query := kb.BuildQuery(preferences.NewState(), "question", kb.Overrides{
		SourceTypeAny: []string{"blog", "forum"},
	})
	require.Equal(t, []string{"tax_authority", "regulator", "statute"}, query.SourceTypeAny)
	require.Equal(t, "json", query.Output)
	require.True(t, query.StrictCitations)
}

func TestBuildQuery_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	state := preferences.NewState()

	query := kb.BuildQuery(state, "Can an NRI buy farmland?", kb.Overrides{})
	require.Equal(t, "global_invest_v1", query.KBID)
	require.Equal(t, "cross_border_real_estate", query.Intent)
	require.Equal(t, 5, query.TrustRankLTE)
	require.Equal(t, 10, query.Limit)
	require.Equal(t, "Can an NRI buy farmland?", query.Question)

	query = kb.BuildQuery(state, "  spaced question \n", kb.Overrides{
		KBID:         "eu_invest_v2",
		Intent:       "relocation",
		TrustRankLTE: 3,
		Limit:        25,
	})
	require.Equal(t, "eu_invest_v2", query.KBID)
	require.Equal(t, "relocation", query.Intent)
	require.Equal(t, 3, query.TrustRankLTE)
	require.Equal(t, 25, query.Limit)
	// The question passes through verbatim, no trimming at this layer.
	require.Equal(t, "  spaced question \n", query.Question)
}

func TestBuildQuery_Deterministic(t *testing.T) {
	t.Parallel()

	state := preferences.NewState()
	state.SetIntents([]preferences.AssetClass{preferences.AssetClassRealEstate})
	state.SetPersona(preferences.PersonaPatch{Citizenship: "India", Residency: "Singapore"})
	state.SetCountries([]string{"United States"})

	first := kb.BuildQuery(state, "question", kb.Overrides{})
	second := kb.BuildQuery(state, "question", kb.Overrides{})
	require.Equal(t, first, second)

	// Building a query must not mutate the snapshot.
	require.Equal(t, []preferences.AssetClass{preferences.AssetClassRealEstate}, state.PreferredIntents)
	require.Equal(t, []string{"United States"}, state.DefaultCountries)
}
