package main

import (
	"fmt"
	"os"

	"github.com/SAHU-01/VisaVerse/cmd/cli/ask"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// Dotenv config is optional for the CLI; flags cover everything.
	_ = godotenv.Load()
	rootCmd.AddGroup(ask.Group)
	rootCmd.AddCommand(ask.Ask)
}

var rootCmd = &cobra.Command{
	Use:  "visaverse-cli",
	Long: `Command line utilities for VisaVerse https://github.com/SAHU-01/VisaVerse`,
	Run: func(cmd *cobra.Command, args []string) {
		// Do Stuff Here
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
