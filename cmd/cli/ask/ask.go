package ask

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/SAHU-01/VisaVerse/internal/preferences"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "ask",
	Title: "Knowledge base",
}

const defaultKBURL = "https://crossborder-compliance-kb-backend.onrender.com/kb/answer"

func init() {
	Ask.Flags().String("citizenship", "", "citizenship country")
	Ask.Flags().String("residency", "", "residency country")
	Ask.Flags().String("investor-type", string(preferences.InvestorTypeIndividual), "investor type")
	Ask.Flags().StringSlice("countries", nil, "countries of interest")
	Ask.Flags().StringSlice("interests", nil, "asset classes of interest")
	Ask.Flags().String("kb-url", defaultKBURL, "knowledge base endpoint")
}

var Ask = &cobra.Command{
	Use:     "ask [question]",
	GroupID: "ask",
	Short:   "Ask a question",
	Long:    "Sends one question to the knowledge base with the persona given via flags and prints the answer as JSON",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			citizenship, _  = cmd.Flags().GetString("citizenship")
			residency, _    = cmd.Flags().GetString("residency")
			investorType, _ = cmd.Flags().GetString("investor-type")
			countries, _    = cmd.Flags().GetStringSlice("countries")
			interests, _    = cmd.Flags().GetStringSlice("interests")
			kbURL, _        = cmd.Flags().GetString("kb-url")
		)

		state := preferences.NewState()
		state.SetPersona(preferences.PersonaPatch{
			Citizenship:  citizenship,
			Residency:    residency,
			InvestorType: preferences.InvestorType(investorType),
		})
		state.SetCountries(countries)
		for _, interest := range interests {
			state.ToggleIntent(preferences.AssetClass(interest))
		}

		question := strings.Join(args, " ")
		query := kb.BuildQuery(state, question, kb.Overrides{})

		// The degraded-answer conversion logs the underlying failure; that
		// noise belongs on stderr, the answer on stdout.
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		result := kb.NewClient(kbURL, logger).Ask(context.Background(), query)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
			return
		}
	},
}
