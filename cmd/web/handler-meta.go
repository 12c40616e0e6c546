package main

import (
	"net/http"

	"github.com/SAHU-01/VisaVerse/internal/preferences"
)

type metaResponse struct {
	AssetClasses  []preferences.AssetClass   `json:"asset_classes"`
	InvestorTypes []preferences.InvestorType `json:"investor_types"`
	Countries     []string                   `json:"countries"`
}

// meta serves the fixed selector lists so clients render the same choices
// the preference layer expects.
func (app *application) meta(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, metaResponse{
		AssetClasses:  preferences.AssetClasses,
		InvestorTypes: preferences.InvestorTypes,
		Countries:     preferences.Countries,
	})
}
