package kb

import (
	"slices"

	"github.com/SAHU-01/VisaVerse/internal/preferences"
)

// Fixed defaults applied when the caller supplies no override.
const (
	DefaultKBID         = "global_invest_v1"
	DefaultIntent       = "cross_border_real_estate"
	DefaultTrustRankLTE = 5
	DefaultLimit        = 10

	defaultCountry      = "India"
	defaultInvestorType = string(preferences.InvestorTypeIndividual)
)

// Every query carries at least these asset classes and exactly these
// source types, regardless of user selections.
var (
	mandatoryAssetClasses = []string{"tax", "compliance"}
	fixedSourceTypes      = []string{"tax_authority", "regulator", "statute"}
	fallbackCountries     = []string{"United States", "India"}
)

// Overrides are optional caller-supplied values that take precedence over
// the preference snapshot. Zero values mean "use the default". Source types
// are not overridable; a supplied value is ignored.
type Overrides struct {
	KBID          string   `json:"kb_id"`
	Intent        string   `json:"intent"`
	TrustRankLTE  int      `json:"trust_rank_lte"`
	Limit         int      `json:"limit"`
	AssetClassAny []string `json:"asset_class_any"`
	Countries     []string `json:"countries"`
	SourceTypeAny []string `json:"source_type_any"`
}

// BuildQuery merges a preference snapshot, the verbatim question text and
// optional overrides into the exact payload sent to the knowledge base.
//
// It is a pure transform: no validation, no side effects, identical inputs
// produce identical payloads. A missing question is the caller's contract
// violation and passes through untouched.
func BuildQuery(state preferences.State, question string, overrides Overrides) Query {
	userAssetClasses := overrides.AssetClassAny
	if userAssetClasses == nil {
		for _, class := range state.DefaultAssetClassAny() {
			userAssetClasses = append(userAssetClasses, string(class))
		}
	}

	userCountries := overrides.Countries
	if userCountries == nil {
		userCountries = state.DefaultCountries
	}

	return Query{
		KBID:            stringOrDefault(overrides.KBID, DefaultKBID),
		Persona:         defaultedPersona(state.Persona),
		Intent:          stringOrDefault(overrides.Intent, DefaultIntent),
		Question:        question,
		Countries:       mergeCountries(state.Persona, userCountries),
		AssetClassAny:   mergeAssetClasses(userAssetClasses),
		SourceTypeAny:   slices.Clone(fixedSourceTypes),
		TrustRankLTE:    intOrDefault(overrides.TrustRankLTE, DefaultTrustRankLTE),
		Limit:           intOrDefault(overrides.Limit, DefaultLimit),
		Output:          "json",
		StrictCitations: true,
	}
}

// mergeAssetClasses unions the mandatory set with the user's selection:
// mandatory values first, then user values, first occurrence wins.
func mergeAssetClasses(userClasses []string) []string {
	merged := slices.Clone(mandatoryAssetClasses)
	for _, class := range userClasses {
		merged = appendUnique(merged, class)
	}
	return merged
}

// mergeCountries concatenates citizenship, residency and the user's
// selection in that priority order, skipping duplicates as encountered.
// When nothing was ever set, the fixed fallback list is substituted.
func mergeCountries(persona preferences.Persona, userCountries []string) []string {
	var merged []string
	if persona.Citizenship != "" {
		merged = append(merged, persona.Citizenship)
	}
	if persona.Residency != "" {
		merged = appendUnique(merged, persona.Residency)
	}
	for _, country := range userCountries {
		merged = appendUnique(merged, country)
	}
	if len(merged) == 0 {
		return slices.Clone(fallbackCountries)
	}
	return merged
}

func defaultedPersona(persona preferences.Persona) QueryPersona {
	return QueryPersona{
		Citizenship:  stringOrDefault(persona.Citizenship, defaultCountry),
		Residency:    stringOrDefault(persona.Residency, defaultCountry),
		InvestorType: stringOrDefault(string(persona.InvestorType), defaultInvestorType),
	}
}

func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}
	return append(list, value)
}

func stringOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intOrDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
