package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Personal job application tracker",
	Long: `jobtrack tracks job applications across boards: scores listings against
your preferences, keeps application statuses, and builds a daily digest of
the top matches.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mcpCmd)

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(applicationCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
