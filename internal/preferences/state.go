package preferences

import "slices"

// AssetClass is a domain-of-interest tag the user may select any number of.
type AssetClass string

const (
	AssetClassRealEstate AssetClass = "real_estate"
	AssetClassInvesting  AssetClass = "investing"
	AssetClassCrypto     AssetClass = "crypto"
	AssetClassStartups   AssetClass = "startups"
	AssetClassTax        AssetClass = "tax"
)

// AssetClasses lists the selectable asset classes in presentation order.
var AssetClasses = []AssetClass{
	AssetClassRealEstate,
	AssetClassInvesting,
	AssetClassCrypto,
	AssetClassStartups,
	AssetClassTax,
}

// InvestorType categorises the user. Exactly one is active at a time.
type InvestorType string

const (
	InvestorTypeIndividual InvestorType = "individual"
	InvestorTypeCompany    InvestorType = "company"
	InvestorTypeNRI        InvestorType = "nri"
	InvestorTypeHUF        InvestorType = "huf"
	InvestorTypeLLP        InvestorType = "llp"
	InvestorTypeFund       InvestorType = "fund"
)

// InvestorTypes lists the selectable investor types in presentation order.
var InvestorTypes = []InvestorType{
	InvestorTypeIndividual,
	InvestorTypeCompany,
	InvestorTypeNRI,
	InvestorTypeHUF,
	InvestorTypeLLP,
	InvestorTypeFund,
}

// Countries is the fixed list presented by country selectors. The state
// machine itself does not validate selections against it; that is the
// caller's responsibility.
var Countries = []string{
	"India",
	"United States",
	"Canada",
	"United Kingdom",
	"Singapore",
	"Switzerland",
	"Australia",
	"Germany",
	"UAE",
	"Hong Kong",
	"Japan",
	"France",
	"Netherlands",
	"New Zealand",
}

// Persona describes who is asking. Empty citizenship or residency means unset.
type Persona struct {
	Citizenship  string       `json:"citizenship"`
	Residency    string       `json:"residency"`
	InvestorType InvestorType `json:"investor_type"`
}

// PersonaPatch is a partial persona update. Zero-valued fields are left unchanged.
type PersonaPatch struct {
	Citizenship  string       `json:"citizenship"`
	Residency    string       `json:"residency"`
	InvestorType InvestorType `json:"investor_type"`
}

// Onboarding wizard bounds. Steps are interests, residency, citizenship,
// investor type and countries, in that order.
const (
	FirstStep = 1
	LastStep  = 5
)

// State holds one session's onboarding answers and progress.
//
// The mirror field default_asset_class_any of the stored preferences is not
// kept as a separate field; it is derived with [State.DefaultAssetClassAny]
// so the two can never drift apart.
type State struct {
	PreferredIntents   []AssetClass `json:"preferred_intents"`
	Persona            Persona      `json:"persona"`
	DefaultCountries   []string     `json:"default_countries"`
	OnboardingStep     int          `json:"onboarding_step"`
	OnboardingComplete bool         `json:"onboarding_complete"`
}

// NewState returns the initial state: no selections, default persona,
// wizard at the first step.
func NewState() State {
	return State{
		PreferredIntents: nil,
		Persona: Persona{
			Citizenship:  "",
			Residency:    "",
			InvestorType: InvestorTypeIndividual,
		},
		DefaultCountries:   nil,
		OnboardingStep:     FirstStep,
		OnboardingComplete: false,
	}
}

// DefaultAssetClassAny mirrors the preferred intents. It always equals
// PreferredIntents in elements and order.
func (s State) DefaultAssetClassAny() []AssetClass {
	return slices.Clone(s.PreferredIntents)
}

// ToggleIntent removes the intent when present, otherwise appends it at the
// end. Toggling twice restores the prior selection, though a removed intent
// re-added later ends up at the end rather than its original position.
func (s *State) ToggleIntent(intent AssetClass) {
	if i := slices.Index(s.PreferredIntents, intent); i >= 0 {
		s.PreferredIntents = slices.Delete(s.PreferredIntents, i, i+1)
		return
	}
	s.PreferredIntents = append(s.PreferredIntents, intent)
}

// SetIntents replaces the selection wholesale. The caller is responsible for
// de-duplication.
func (s *State) SetIntents(intents []AssetClass) {
	s.PreferredIntents = slices.Clone(intents)
}

// ClearIntents empties the selection.
func (s *State) ClearIntents() {
	s.PreferredIntents = nil
}

// SetPersona shallow-merges the provided fields into the persona. Fields
// left zero in the patch are unchanged. No country-list validation happens
// here.
func (s *State) SetPersona(patch PersonaPatch) {
	if patch.Citizenship != "" {
		s.Persona.Citizenship = patch.Citizenship
	}
	if patch.Residency != "" {
		s.Persona.Residency = patch.Residency
	}
	if patch.InvestorType != "" {
		s.Persona.InvestorType = patch.InvestorType
	}
}

// ToggleCountry removes the country when present, otherwise appends it at the end.
func (s *State) ToggleCountry(country string) {
	if i := slices.Index(s.DefaultCountries, country); i >= 0 {
		s.DefaultCountries = slices.Delete(s.DefaultCountries, i, i+1)
		return
	}
	s.DefaultCountries = append(s.DefaultCountries, country)
}

// SetCountries replaces the selection wholesale.
func (s *State) SetCountries(countries []string) {
	s.DefaultCountries = slices.Clone(countries)
}

// NextStep advances the wizard, clamped at the last step.
func (s *State) NextStep() {
	if s.OnboardingStep < LastStep {
		s.OnboardingStep++
	}
}

// PrevStep rewinds the wizard, clamped at the first step.
func (s *State) PrevStep() {
	if s.OnboardingStep > FirstStep {
		s.OnboardingStep--
	}
}

// CompleteOnboarding opens the question-asking surface. It does not check
// that every step has a valid selection; callers gate on [State.CanProceed].
func (s *State) CompleteOnboarding() {
	s.OnboardingComplete = true
}

// Reset restores the full initial state, including step and completion flag.
func (s *State) Reset() {
	*s = NewState()
}

// CanProceed reports whether the given wizard step satisfies its
// minimum-selection requirement. Unknown steps never proceed.
func (s State) CanProceed(step int) bool {
	switch step {
	case 1:
		return len(s.PreferredIntents) > 0
	case 2:
		return s.Persona.Residency != ""
	case 3:
		return s.Persona.Citizenship != ""
	case 4:
		return s.Persona.InvestorType != ""
	case 5:
		return len(s.DefaultCountries) > 0
	default:
		return false
	}
}

// Clone returns a deep copy so that callers can hold a snapshot without
// observing later mutations.
func (s State) Clone() State {
	s.PreferredIntents = slices.Clone(s.PreferredIntents)
	s.DefaultCountries = slices.Clone(s.DefaultCountries)
	return s
}
